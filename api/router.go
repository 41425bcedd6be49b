// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"prepmate/interview-api/config"
	"prepmate/interview-api/db"
	"prepmate/interview-api/middleware"
	"prepmate/interview-api/security"
	"prepmate/interview-api/service"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB     *gorm.DB
	Router *gin.Engine
	Auth   *service.Auth
}

func NewRouter() (*API, error) {
	a := &API{}

	conn, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = conn

	makeLogger()

	development := viper.GetString("app.environment") == config.EnvDevelopment

	a.Auth = &service.Auth{
		Store: service.NewIdentityStore(conn),
		Otp: &service.OtpService{
			DB:          conn,
			Mailer:      service.NewSMTPMailer(),
			DevFallback: development,
		},
		Argon:             security.New(),
		Google:            service.NewTokeninfoVerifier(viper.GetString("google.client_id")),
		DevGoogleFallback: development && viper.GetString("google.client_id") == "",
	}

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors_origins"),
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	jwt := middleware.NewJWTMiddleware(conn)

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// GET /api/validate		-> Validates a JWT token
		main.GET("/validate", jwt, a.Validate)
	}

	auth := main.Group("/auth")
	{
		// POST /api/auth/login		-> Checks credentials and mails a passcode
		auth.POST("/login", a.AuthLogin)

		// POST /api/auth/register	-> Creates an account and mails a passcode
		auth.POST("/register", a.AuthRegister)

		// POST /api/auth/verify-otp	-> Consumes the passcode and starts a session
		auth.POST("/verify-otp", a.AuthVerifyOtp)

		// POST /api/auth/google	-> Verifies a Google credential and starts a session
		auth.POST("/google", a.AuthGoogle)
	}

	users := main.Group("/users", jwt)
	{
		// GET /api/users		-> Returns the profile of the logged in user
		users.GET("", cachePerUser(30), a.UserFetch)

		// PATCH /api/users		-> Updates the profile of the logged in user
		users.PATCH("", a.UserUpdate)
	}

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

// cachePerUser keys cached responses on the URI plus the authenticated
// user so two users never see each other's payloads.
func cachePerUser(sec int) gin.HandlerFunc {
	return cache.Cache(store, time.Second*time.Duration(sec),
		cache.WithCacheStrategyByRequest(func(c *gin.Context) (bool, cache.Strategy) {
			return true, cache.Strategy{
				CacheKey: c.Request.RequestURI + "|" + c.GetString("userID"),
			}
		}),
	)
}
