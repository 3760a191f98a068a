package mail

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"contacts/config"
	deliverycontext "contacts/internal/delivery/context"
	"contacts/internal/domain/service"
	mockSvc "contacts/internal/mocks/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildMessage(t *testing.T) {
	m, err := buildMessage("noreply@example.com", &service.MailMessage{
		To:      "ann@example.com",
		Subject: "Verify email",
		HTML:    "<p>hello</p>",
	})
	require.NoError(t, err)

	rcpts, err := m.GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"ann@example.com"}, rcpts)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Subject: Verify email")
	assert.Contains(t, buf.String(), "<p>hello</p>")
	assert.Contains(t, buf.String(), "text/html")
}

func TestBuildMessage_Rejects(t *testing.T) {
	_, err := buildMessage("noreply@example.com", nil)
	assert.Error(t, err)

	_, err = buildMessage("noreply@example.com", &service.MailMessage{})
	assert.Error(t, err)

	_, err = buildMessage("not an address", &service.MailMessage{To: "ann@example.com"})
	assert.Error(t, err)

	_, err = buildMessage("noreply@example.com", &service.MailMessage{To: "broken@@"})
	assert.Error(t, err)
}

func TestNewSMTPSender_RequiresHostAndFrom(t *testing.T) {
	_, err := NewSMTPSender(nil, newDiscardLogger())
	assert.Error(t, err)

	_, err = NewSMTPSender(&config.MailConfig{Host: "smtp.example.com"}, newDiscardLogger())
	assert.Error(t, err)

	sender, err := NewSMTPSender(&config.MailConfig{Host: "smtp.example.com", From: "noreply@example.com"}, newDiscardLogger())
	require.NoError(t, err)
	assert.NotNil(t, sender)
}

func TestSMTPSender_ClientOptions(t *testing.T) {
	plain := &smtpSender{cfg: &config.MailConfig{Host: "h"}}
	assert.Len(t, plain.clientOptions(), 1)

	full := &smtpSender{cfg: &config.MailConfig{
		Host:     "h",
		Port:     465,
		SSL:      true,
		Timeout:  5,
		Username: "u",
		Password: "p",
	}}
	assert.Len(t, full.clientOptions(), 6)
}

func TestQueueSender_PublishesEvent(t *testing.T) {
	publisher := mockSvc.NewMockEventPublisher(t)
	sender := NewQueueSender(publisher, newDiscardLogger())
	ctx := deliverycontext.WithRequestID(context.Background(), "req-1")
	msg := &service.MailMessage{To: "ann@example.com", Subject: "s", HTML: "h"}

	publisher.EXPECT().
		PublishMailEvent(ctx, mock.MatchedBy(func(e *service.MailEvent) bool {
			return e.RequestID == "req-1" && e.MessageID != "" && e.Mail == msg
		})).
		Return(nil)

	require.NoError(t, sender.Send(ctx, msg))
}

func TestQueueSender_PublishFailure(t *testing.T) {
	publisher := mockSvc.NewMockEventPublisher(t)
	sender := NewQueueSender(publisher, newDiscardLogger())

	publisher.EXPECT().PublishMailEvent(mock.Anything, mock.Anything).Return(errors.New("topic gone"))

	err := sender.Send(context.Background(), &service.MailMessage{To: "ann@example.com"})
	assert.ErrorContains(t, err, "failed to queue mail")
}

func TestQueueSender_RequiresRecipient(t *testing.T) {
	sender := NewQueueSender(mockSvc.NewMockEventPublisher(t), newDiscardLogger())

	assert.Error(t, sender.Send(context.Background(), &service.MailMessage{}))
}

func TestNewMailSender(t *testing.T) {
	tests := []struct {
		name      string
		mail      *config.MailConfig
		pubsub    *config.PubSubConfig
		publisher bool
		wantType  any
		wantErr   bool
	}{
		{name: "default is log", mail: nil, wantType: &logSender{}},
		{name: "log", mail: &config.MailConfig{Transport: "log"}, wantType: &logSender{}},
		{name: "smtp", mail: &config.MailConfig{Transport: "smtp", Host: "h", From: "a@b.co"}, wantType: &smtpSender{}},
		{name: "smtp without host", mail: &config.MailConfig{Transport: "smtp"}, wantErr: true},
		{
			name:      "pubsub",
			mail:      &config.MailConfig{Transport: "pubsub"},
			pubsub:    &config.PubSubConfig{Provider: "local", LocalEndpoint: "http://localhost:8081/push"},
			publisher: true,
			wantType:  &queueSender{},
		},
		{
			name:    "pubsub without publisher",
			mail:    &config.MailConfig{Transport: "pubsub"},
			pubsub:  &config.PubSubConfig{Provider: "local"},
			wantErr: true,
		},
		{name: "pubsub without pubsub section", mail: &config.MailConfig{Transport: "pubsub"}, publisher: true, wantErr: true},
		{
			name:      "pubsub without provider",
			mail:      &config.MailConfig{Transport: "pubsub"},
			pubsub:    &config.PubSubConfig{},
			publisher: true,
			wantErr:   true,
		},
		{name: "unknown", mail: &config.MailConfig{Transport: "pigeon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := SenderParams{
				Config: &config.Config{Mail: tt.mail, PubSub: tt.pubsub},
				Logger: newDiscardLogger(),
			}
			if tt.publisher {
				params.Publisher = mockSvc.NewMockEventPublisher(t)
			}

			sender, err := NewMailSender(params)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, sender)
		})
	}
}

func TestNewWorkerSender(t *testing.T) {
	tests := []struct {
		name     string
		mail     *config.MailConfig
		wantType any
		wantErr  bool
	}{
		{name: "unconfigured logs", mail: nil, wantType: &logSender{}},
		{name: "log", mail: &config.MailConfig{Transport: "log"}, wantType: &logSender{}},
		{name: "pubsub delivers over smtp", mail: &config.MailConfig{Transport: "pubsub", Host: "h", From: "a@b.co"}, wantType: &smtpSender{}},
		{name: "smtp", mail: &config.MailConfig{Transport: "smtp", Host: "h", From: "a@b.co"}, wantType: &smtpSender{}},
		{name: "pubsub without host", mail: &config.MailConfig{Transport: "pubsub"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender, err := NewWorkerSender(SenderParams{
				Config: &config.Config{Mail: tt.mail},
				Logger: newDiscardLogger(),
			})
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, sender)
		})
	}
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	sender := NewLogSender(slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, sender.Send(context.Background(), &service.MailMessage{To: "ann@example.com", Subject: "Verify email"}))
	assert.Contains(t, buf.String(), "ann@example.com")
}
