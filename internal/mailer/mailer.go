package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leadboxhq/leadbox-backend/internal/config"
	"github.com/wneessen/go-mail"
)

// Mailer sends plain-text mail. Callers treat delivery as best-effort;
// they log failures and never surface them to end users.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer delivers through an external SMTP relay.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

func NewSMTP(cfg *config.Config) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUser),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build SMTP client: %w", err)
	}

	return &SMTPMailer{client: client, from: cfg.MailFrom}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	return m.client.DialAndSendWithContext(ctx, msg)
}

// LogMailer is used when no SMTP relay is configured; it only logs the
// message so local development still shows what would have been sent.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, _ string) error {
	slog.Info("mail delivery skipped, no SMTP relay configured", "to", to, "subject", subject)
	return nil
}

// FromConfig picks the SMTP mailer when a relay host is configured and
// falls back to the log-only mailer otherwise.
func FromConfig(cfg *config.Config) (Mailer, error) {
	if cfg.SMTPHost == "" {
		return LogMailer{}, nil
	}
	return NewSMTP(cfg)
}
