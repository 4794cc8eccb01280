// Package notify delivers verification codes to users.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// CodeSender delivers a verification code to an identity. CanDeliver reports
// whether this sender has a channel for the identity; when no sender can
// deliver, the caller falls back to returning the code inline (demo mode).
type CodeSender interface {
	CanDeliver(identity string) bool
	SendCode(ctx context.Context, identity, code string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
}

// EmailSender sends codes over SMTP. Only email-shaped identities are
// deliverable.
type EmailSender struct {
	cfg SMTPConfig
}

func NewEmailSender(cfg SMTPConfig) *EmailSender {
	return &EmailSender{cfg: cfg}
}

func (s *EmailSender) CanDeliver(identity string) bool {
	if s.cfg.Host == "" || s.cfg.User == "" || s.cfg.Password == "" {
		return false
	}
	return strings.Contains(identity, "@")
}

func (s *EmailSender) SendCode(ctx context.Context, identity, code string) error {
	body := fmt.Sprintf(`<html>
  <body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>Код авторизации</h2>
    <p>Ваш код для входа:</p>
    <h1 style="color: #0088cc; letter-spacing: 5px;">%s</h1>
    <p>Если вы не запрашивали этот код, проигнорируйте это письмо.</p>
  </body>
</html>`, code)

	msg := strings.Join([]string{
		"From: " + s.cfg.User,
		"To: " + identity,
		"Subject: Telechat - Код авторизации",
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	return smtp.SendMail(addr, auth, s.cfg.User, []string{identity}, []byte(msg))
}
