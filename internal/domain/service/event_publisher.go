package service

import (
	"context"
)

// MailEvent is a queued email handed to the mail worker.
type MailEvent struct {
	RequestID string       `json:"request_id,omitempty"` // For distributed tracing
	MessageID string       `json:"message_id"`
	Mail      *MailMessage `json:"mail"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishMailEvent queues an email for asynchronous delivery
	PublishMailEvent(ctx context.Context, event *MailEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
