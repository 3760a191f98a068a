package mail

import (
	"context"
	"log/slog"

	"contacts/internal/domain/service"
)

// logSender writes outbound mail to the log instead of sending it.
type logSender struct {
	logger *slog.Logger
}

// NewLogSender returns a MailSender for local development.
func NewLogSender(logger *slog.Logger) service.MailSender {
	return &logSender{logger: logger}
}

func (s *logSender) Send(ctx context.Context, msg *service.MailMessage) error {
	s.logger.InfoContext(ctx, "Mail not sent, log transport active",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("html", msg.HTML),
	)

	return nil
}
