package service

import (
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Mailer delivers a passcode to an email address. The OTP service only
// depends on this interface, tests swap in a recording fake.
type Mailer interface {
	Send(email, code string) error
}

// SMTPMailer sends passcode mails through the SMTP server from the
// mail.* config section.
type SMTPMailer struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

// NewSMTPMailer builds a mailer from viper config. The returned mailer
// reports ErrMailerNotConfigured on Send when no sender is set, which the
// OTP service downgrades to a delivery warning.
func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{
		Host:     viper.GetString("mail.host"),
		Port:     viper.GetInt("mail.port"),
		Sender:   viper.GetString("mail.sender"),
		Password: viper.GetString("mail.password"),
	}
}

func (m *SMTPMailer) Send(email, code string) error {
	if m.Sender == "" {
		return ErrMailerNotConfigured
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.Sender)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Your interview login code")
	msg.SetBody("text/plain", fmt.Sprintf("Your authentication code is: %v. It will expire in 5 minutes.", code))

	d := gomail.NewDialer(m.Host, m.Port, m.Sender, m.Password)

	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send passcode mail, %w", err)
	}

	return nil
}
