// Package pubsub publishes queued mail events to Google Cloud Pub/Sub or,
// in development, straight to the mail worker's push endpoint.
package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"

	"contacts/internal/domain/service"

	"github.com/pkg/errors"
)

// Attribute keys set on every published message.
const (
	AttrMessageID = "message_id"
	AttrRequestID = "request_id"
	AttrEventType = "event_type"

	eventTypeMail = "mail"
)

// PushMessage is the envelope Pub/Sub posts to push subscribers.
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"` // base64 encoded
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// encodeMailEvent serializes the event and builds its message attributes.
func encodeMailEvent(event *service.MailEvent) ([]byte, map[string]string, error) {
	if event == nil || event.Mail == nil {
		return nil, nil, errors.New("mail event is empty")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	attributes := map[string]string{
		AttrMessageID: event.MessageID,
		AttrEventType: eventTypeMail,
	}
	if event.RequestID != "" {
		attributes[AttrRequestID] = event.RequestID
	}

	return data, attributes, nil
}

// noopPublisher drops events. Used when Pub/Sub is not configured.
type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) PublishMailEvent(ctx context.Context, event *service.MailEvent) error {
	p.logger.DebugContext(ctx, "[NoopPubSub] Event publishing disabled, skipping",
		slog.String("message_id", event.MessageID),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}
