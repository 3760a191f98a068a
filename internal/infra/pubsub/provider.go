package pubsub

import (
	"context"
	"log/slog"

	"contacts/config"
	"contacts/internal/domain/constants"
	"contacts/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// PublisherParams holds dependencies for the mail event publisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher creates the publisher named by pubsub.provider. Without a
// provider the publisher drops events; the mail sender refuses to queue on it.
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	cfg := params.Config.PubSub
	logger := params.Logger

	if !IsConfigured(params.Config) {
		logger.Info("PubSub not configured, mail events will not be queued")

		return &noopPublisher{logger: logger}, nil
	}

	var publisher service.EventPublisher
	var err error

	switch cfg.Provider {
	case constants.PubSubProviderLocal:
		if cfg.LocalEndpoint == "" {
			return nil, errors.New("local endpoint is required for local provider")
		}
		logger.Info("Using local HTTP publisher for Pub/Sub",
			slog.String("endpoint", cfg.LocalEndpoint),
		)

		publisher = NewLocalHTTPPublisher(cfg.LocalEndpoint, logger)

	case constants.PubSubProviderGoogle:
		if cfg.ProjectID == "" {
			return nil, errors.New("project ID is required for google provider")
		}
		if cfg.TopicID == "" {
			return nil, errors.New("topic ID is required for google provider")
		}
		logger.Info("Using Google Pub/Sub publisher",
			slog.String("project_id", cfg.ProjectID),
			slog.String("topic_id", cfg.TopicID),
		)

		publisher, err = NewGooglePubSubPublisher(params.Ctx, cfg.ProjectID, cfg.TopicID, logger)
		if err != nil {
			return nil, err
		}

	default:
		return nil, errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}

	// Register lifecycle hook to close publisher on shutdown
	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing mail event publisher", slog.String("provider", cfg.Provider))

			return publisher.Close()
		},
	})

	return publisher, nil
}

// IsConfigured reports whether a real Pub/Sub provider is selected.
func IsConfigured(cfg *config.Config) bool {
	return cfg != nil && cfg.PubSub != nil && cfg.PubSub.Provider != ""
}
