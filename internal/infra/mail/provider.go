package mail

import (
	"log/slog"

	"contacts/config"
	"contacts/internal/domain/constants"
	"contacts/internal/domain/service"
	"contacts/internal/infra/pubsub"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// SenderParams holds dependencies for the MailSender, injected by Fx
type SenderParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Publisher service.EventPublisher `optional:"true"`
}

// NewMailSender picks the transport named by mail.transport.
func NewMailSender(params SenderParams) (service.MailSender, error) {
	cfg := params.Config.Mail
	transport := constants.MailTransportLog
	if cfg != nil && cfg.Transport != "" {
		transport = cfg.Transport
	}

	switch transport {
	case constants.MailTransportSMTP:
		params.Logger.Info("Using SMTP mail transport", slog.String("host", cfg.Host))

		return NewSMTPSender(cfg, params.Logger)
	case constants.MailTransportPubSub:
		if params.Publisher == nil {
			return nil, errors.New("pubsub mail transport requires an event publisher")
		}
		if !pubsub.IsConfigured(params.Config) {
			return nil, errors.New("pubsub mail transport requires pubsub.provider to be set")
		}
		params.Logger.Info("Using Pub/Sub mail transport")

		return NewQueueSender(params.Publisher, params.Logger), nil
	case constants.MailTransportLog:
		params.Logger.Warn("Using log mail transport; emails are not delivered")

		return NewLogSender(params.Logger), nil
	default:
		return nil, errors.Errorf("unknown mail transport: %s", transport)
	}
}

// NewWorkerSender returns the sender the mail worker delivers queued events
// with. Queued mail must leave through SMTP, so the pubsub transport maps to
// the SMTP sender here.
func NewWorkerSender(params SenderParams) (service.MailSender, error) {
	cfg := params.Config.Mail
	if cfg == nil || cfg.Transport == "" || cfg.Transport == constants.MailTransportLog {
		params.Logger.Warn("Mail worker using log transport; emails are not delivered")

		return NewLogSender(params.Logger), nil
	}

	return NewSMTPSender(cfg, params.Logger)
}
