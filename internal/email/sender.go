package email

import (
	"context"
	"fmt"
	"net"
	"time"

	"care_portal_backend/platform/config"
	"care_portal_backend/platform/logger"

	gomail "github.com/wneessen/go-mail"
)

// Sender delivers generated messages. Content generation stays pure; this is
// the only place that touches a transport.
type Sender interface {
	Send(ctx context.Context, toEmail string, msg Message) error
}

// NewSender picks an implementation from configuration: a real SMTP sender
// when email is enabled and configured, otherwise a logging no-op.
func NewSender(cfg config.EmailConfig, log *logger.Logger) Sender {
	if !cfg.GetEmailEnabled() || cfg.GetSMTPHost() == "" {
		return &logSender{log: log}
	}
	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
	}
}

// SMTPSender delivers messages over a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

func (s *SMTPSender) Send(ctx context.Context, toEmail string, m Message) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, m.Body)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// logSender logs instead of sending; used when email is disabled.
type logSender struct {
	log *logger.Logger
}

func (s *logSender) Send(_ context.Context, toEmail string, m Message) error {
	if s.log != nil {
		s.log.Info("email sending disabled, dropping message",
			"to", toEmail,
			"subject", m.Subject,
		)
	}
	return nil
}
