package pubsub

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"contacts/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestNewEventPublisher(t *testing.T) {
	tests := []struct {
		name     string
		pubsub   *config.PubSubConfig
		wantType any
		wantErr  bool
	}{
		{name: "unconfigured drops events", pubsub: nil, wantType: &noopPublisher{}},
		{name: "empty provider drops events", pubsub: &config.PubSubConfig{}, wantType: &noopPublisher{}},
		{
			name:     "local",
			pubsub:   &config.PubSubConfig{Provider: "local", LocalEndpoint: "http://localhost:8081/push"},
			wantType: &localHTTPPublisher{},
		},
		{name: "local without endpoint", pubsub: &config.PubSubConfig{Provider: "local"}, wantErr: true},
		{name: "google without project", pubsub: &config.PubSubConfig{Provider: "google", TopicID: "t"}, wantErr: true},
		{name: "unknown", pubsub: &config.PubSubConfig{Provider: "kafka"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := fxtest.NewLifecycle(t)
			publisher, err := NewEventPublisher(PublisherParams{
				Lc:     lc,
				Ctx:    context.Background(),
				Config: &config.Config{PubSub: tt.pubsub},
				Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
			})
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, publisher)
		})
	}
}

func TestIsConfigured(t *testing.T) {
	assert.False(t, IsConfigured(nil))
	assert.False(t, IsConfigured(&config.Config{}))
	assert.False(t, IsConfigured(&config.Config{PubSub: &config.PubSubConfig{}}))
	assert.True(t, IsConfigured(&config.Config{PubSub: &config.PubSubConfig{Provider: "google"}}))
}
