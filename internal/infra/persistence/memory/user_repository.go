package memory

import (
	"context"
	"time"

	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type userRepository struct {
	store *Store
	undo  *undoLog
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findFirst(ctx, func(u *entity.User) bool {
		return u.Email == email
	})
}

func (r *userRepository) FindByVerificationToken(ctx context.Context, code string) (*entity.User, error) {
	if code == "" {
		return nil, repository.ErrUserNotFound
	}

	return r.findFirst(ctx, func(u *entity.User) bool {
		return !u.Verify && u.VerificationToken == code
	})
}

func (r *userRepository) findFirst(ctx context.Context, match func(*entity.User) bool) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if match(&user) {
			return &user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.emailTaken(user.Email, uuid.Nil) {
		return errors.Wrap(domainerrors.ErrEmailInUse, "email already exists")
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.Subscription = entity.SubscriptionOrDefault(user.Subscription.String())

	r.undo.recordUser(r.store, user.ID)
	r.store.users[user.ID] = *user

	return nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return errors.Wrap(domainerrors.ErrEmailInUse, "email already exists")
	}

	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now().UTC()
	r.undo.recordUser(r.store, user.ID)
	r.store.users[user.ID] = *user

	return nil
}

// emailTaken must be called with the write lock held.
func (r *userRepository) emailTaken(email string, except uuid.UUID) bool {
	for id, u := range r.store.users {
		if id != except && u.Email == email {
			return true
		}
	}

	return false
}
