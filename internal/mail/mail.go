// Package mail delivers transactional email over SMTP.
package mail

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// Dialer is the part of gomail.Dialer the mailer uses.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPMailer struct {
	from   string
	dialer Dialer
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	port := cfg.Port
	if port == 0 {
		port = 587
	}
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &SMTPMailer{from: from, dialer: gomail.NewDialer(cfg.Host, port, cfg.User, cfg.Pass)}
}

func newSMTPMailerWithDialer(from string, d Dialer) *SMTPMailer {
	return &SMTPMailer{from: from, dialer: d}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// LogMailer records messages in the log instead of sending them. Used when
// no SMTP host is configured.
type LogMailer struct {
	Logger *log.Logger
}

func (m LogMailer) Send(to, subject, _ string) error {
	logger := m.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("mail skipped to=%s subject=%q", to, subject)
	return nil
}
