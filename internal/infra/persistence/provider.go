// Package persistence selects the repository backend configured under store.driver.
package persistence

import (
	"log/slog"

	"contacts/config"
	"contacts/internal/domain/constants"
	"contacts/internal/domain/repository"
	"contacts/internal/infra/persistence/memory"
	"contacts/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params defines the dependencies needed to build the repositories.
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

// Repositories is the set of repositories shared by every use case.
type Repositories struct {
	fx.Out

	UserRepo    repository.UserRepository
	ContactRepo repository.ContactRepository
	TxManager   repository.TransactionManager
}

// NewRepositories builds the repositories for the configured store driver.
func NewRepositories(params Params) (Repositories, error) {
	switch params.Config.Store.Driver {
	case constants.StoreDriverMemory:
		params.Logger.Warn("Using in-memory store; data is lost on restart")
		store := memory.NewStore()

		return Repositories{
			UserRepo:    store.UserRepo(),
			ContactRepo: store.ContactRepo(),
			TxManager:   memory.NewTransactionManager(store),
		}, nil
	case constants.StoreDriverPostgres, "":
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return Repositories{}, err
		}

		return Repositories{
			UserRepo:    postgres.NewUserRepository(db),
			ContactRepo: postgres.NewContactRepository(db),
			TxManager:   postgres.NewTransactionManager(db),
		}, nil
	default:
		return Repositories{}, errors.Errorf("unknown store driver: %s", params.Config.Store.Driver)
	}
}
