// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

// Environment values accepted for app.environment. Development unlocks
// fallbacks that must never run in production: the OTP code echoed back
// when no mail server is configured, and the fake Google identity used
// when no client ID is configured.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

var (
	environment       = pflag.String("environment", "", "Overrides app.environment")
	validLogLevels    = []string{"debug", "info", "warn", "error", "fatal"}
	validEnvironments = []string{EnvProduction, EnvDevelopment}
	validDBDrivers    = []string{"sqlite", "postgres"}
)

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")
	v.BindEnv("app.environment", "app_environment")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.domain", "host_domain")
	v.BindEnv("host.cors_origins", "host_cors_origins")
	v.BindEnv("host.ssl.enabled", "host_ssl_enabled")

	v.BindEnv("db.driver", "db_driver")
	v.BindEnv("db.dsn", "db_dsn")

	v.BindEnv("jwt.secret", "jwt_secret")

	v.BindEnv("mail.host", "mail_host")
	v.BindEnv("mail.port", "mail_port")
	v.BindEnv("mail.sender", "mail_sender")
	v.BindEnv("mail.password", "mail_password")

	v.BindEnv("google.client_id", "google_client_id")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.environment", EnvProduction)

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.domain", "localhost")
	v.SetDefault("host.cors_origins", []string{"http://localhost:5173"})
	v.SetDefault("host.ssl.enabled", false)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "database.db")

	v.SetDefault("mail.port", 587)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); ok {
			return errors.New("config.toml file is missing")
		}

		return fmt.Errorf("failed to read config file, %w", err)
	}

	if *environment != "" {
		v.Set("app.environment", *environment)
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if !slices.Contains(validEnvironments, v.GetString("app.environment")) {
		return errors.New("app.environment must be either production or development")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDBDrivers, v.GetString("db.driver")) {
		return errors.New("invalid database driver provided")
	}

	if v.GetString("db.dsn") == "" {
		return errors.New("db.dsn can't be empty")
	}

	if v.GetString("jwt.secret") == "" {
		fmt.Println("WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	production := v.GetString("app.environment") == EnvProduction

	if v.GetString("mail.sender") == "" {
		if production {
			return errors.New("mail.sender must be configured in production")
		}

		zap.L().Warn("No mail server configured, OTP codes will be returned in API responses")
	} else {
		if v.GetString("mail.host") == "" {
			return errors.New("mail.host can't be empty")
		}
		if v.GetString("mail.password") == "" {
			return errors.New("mail.password can't be empty")
		}
	}

	if v.GetString("google.client_id") == "" {
		if production {
			return errors.New("google.client_id must be configured in production")
		}

		zap.L().Warn("No Google client ID configured, Google sign-in will return a fake identity")
	}

	return nil
}
