package mail

import (
	"context"
	"log/slog"

	deliverycontext "contacts/internal/delivery/context"
	"contacts/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// queueSender hands messages to the mail worker through the event publisher.
// A successful publish counts as delivered from the caller's point of view.
type queueSender struct {
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewQueueSender returns a MailSender that publishes MailEvents.
func NewQueueSender(publisher service.EventPublisher, logger *slog.Logger) service.MailSender {
	return &queueSender{publisher: publisher, logger: logger}
}

func (s *queueSender) Send(ctx context.Context, msg *service.MailMessage) error {
	if msg == nil || msg.To == "" {
		return errors.New("mail recipient is required")
	}

	event := &service.MailEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		MessageID: uuid.NewString(),
		Mail:      msg,
	}

	if err := s.publisher.PublishMailEvent(ctx, event); err != nil {
		return errors.Wrap(err, "failed to queue mail")
	}

	s.logger.InfoContext(ctx, "Mail queued",
		slog.String("message_id", event.MessageID),
		slog.String("to", msg.To),
	)

	return nil
}
