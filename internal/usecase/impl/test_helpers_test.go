package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"contacts/config"
	"contacts/internal/domain/repository"
	mockRepo "contacts/internal/mocks/repository"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{BaseURL: "http://localhost:3000/"},
		Mail: &config.MailConfig{
			Transport: "log",
			Timeout:   time.Second,
		},
	}
}

// expectTransaction makes txManager run the callback against a factory that
// hands out the given repositories.
func expectTransaction(
	t *testing.T,
	txManager *mockRepo.MockTransactionManager,
	userRepo repository.UserRepository,
	contactRepo repository.ContactRepository,
) {
	t.Helper()

	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().UserRepo().Return(userRepo).Maybe()
			factory.EXPECT().ContactRepo().Return(contactRepo).Maybe()

			return fn(factory)
		})
}
