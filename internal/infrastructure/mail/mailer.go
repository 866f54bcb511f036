// Package mail delivers password-reset codes. Delivery is a replaceable
// collaborator of the core: the SMTP mailer is used when an SMTP host is
// configured, and the log mailer otherwise (development, tests).
package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

// SMTPMailer sends reset codes over SMTP with PLAIN auth.
type SMTPMailer struct {
	addr     string // host:port
	from     string
	password string
	host     string
}

func NewSMTPMailer(host string, port int, from, password string) *SMTPMailer {
	return &SMTPMailer{
		addr:     fmt.Sprintf("%s:%d", host, port),
		from:     from,
		password: password,
		host:     host,
	}
}

// SendResetCode mails the code to the given address.
func (m *SMTPMailer) SendResetCode(ctx context.Context, email, code string) error {
	msg := []byte("To: " + email + "\r\n" +
		"Subject: Flockr Password Reset Code\r\n" +
		"\r\n" +
		"Your reset code is: " + code + "\r\n")

	auth := smtp.PlainAuth("", m.from, m.password, m.host)
	if err := smtp.SendMail(m.addr, auth, m.from, []string{email}, msg); err != nil {
		return fmt.Errorf("send reset code: %w", err)
	}
	return nil
}

// LogMailer writes reset codes to the log instead of delivering them.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendResetCode(ctx context.Context, email, code string) error {
	m.log.Info().Str("email", email).Str("reset_code", code).Msg("reset code issued (log delivery)")
	return nil
}
