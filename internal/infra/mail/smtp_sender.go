// Package mail delivers outbound email through SMTP, through the Pub/Sub
// mail queue, or only into the log when running locally.
package mail

import (
	"context"
	"log/slog"

	"contacts/config"
	"contacts/internal/domain/service"

	"github.com/pkg/errors"
	gomail "github.com/wneessen/go-mail"
)

// smtpSender sends each message over a fresh SMTP connection.
type smtpSender struct {
	cfg    *config.MailConfig
	logger *slog.Logger
}

// NewSMTPSender returns a MailSender backed by the configured SMTP relay.
func NewSMTPSender(cfg *config.MailConfig, logger *slog.Logger) (service.MailSender, error) {
	if cfg == nil || cfg.Host == "" {
		return nil, errors.New("mail host is required for smtp transport")
	}
	if cfg.From == "" {
		return nil, errors.New("mail from address is required for smtp transport")
	}

	return &smtpSender{cfg: cfg, logger: logger}, nil
}

func (s *smtpSender) Send(ctx context.Context, msg *service.MailMessage) error {
	m, err := buildMessage(s.cfg.From, msg)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return errors.Wrap(err, "failed to create smtp client")
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return errors.Wrap(err, "failed to send mail")
	}

	s.logger.InfoContext(ctx, "Mail sent",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)

	return nil
}

func (s *smtpSender) clientOptions() []gomail.Option {
	var opts []gomail.Option
	if s.cfg.Timeout > 0 {
		opts = append(opts, gomail.WithTimeout(s.cfg.Timeout))
	}
	if s.cfg.Port > 0 {
		opts = append(opts, gomail.WithPort(s.cfg.Port))
	}
	if s.cfg.SSL {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.Username),
			gomail.WithPassword(s.cfg.Password),
		)
	}

	return opts
}

// buildMessage turns a domain message into an HTML email.
func buildMessage(from string, msg *service.MailMessage) (*gomail.Msg, error) {
	if msg == nil || msg.To == "" {
		return nil, errors.New("mail recipient is required")
	}

	m := gomail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, errors.Wrap(err, "invalid from address")
	}
	if err := m.To(msg.To); err != nil {
		return nil, errors.Wrap(err, "invalid recipient address")
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTML)

	return m, nil
}
