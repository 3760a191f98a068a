package service

import "context"

// MailMessage is a single outbound email. From is filled in by the sender.
type MailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// MailSender delivers an email or reports why it could not.
type MailSender interface {
	Send(ctx context.Context, msg *MailMessage) error
}
