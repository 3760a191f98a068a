package main

import (
	"context"
	"log/slog"
	"os"

	"contacts/config"
	"contacts/internal/delivery"
	"contacts/internal/delivery/api"
	"contacts/internal/delivery/api/middleware"
	"contacts/internal/delivery/api/router/handler"
	"contacts/internal/infra/auth"
	logs "contacts/internal/infra/log"
	"contacts/internal/infra/mail"
	"contacts/internal/infra/persistence"
	"contacts/internal/infra/pubsub"
	"contacts/internal/infra/qrcode"
	"contacts/internal/infra/storage"
	"contacts/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			persistence.NewRepositories,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			auth.NewCodeGenerator,
			auth.NewGravatarResolver,
			pubsub.NewEventPublisher,
			mail.NewMailSender,
			storage.NewAvatarStorage,
			qrcode.NewQRCodeService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewVerificationService,
			impl.NewAuthService,
			impl.NewContactService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewContactHandler,
			handler.NewAvatarHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
