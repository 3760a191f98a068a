// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	"contacts/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.findOne(ctx, "find user by id", "id = ?", id)
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, "find user by email", "email = ?", email)
}

// FindByVerificationToken retrieves the unverified user holding the code.
func (repo *userRepository) FindByVerificationToken(ctx context.Context, code string) (*entity.User, error) {
	if code == "" {
		return nil, repository.ErrUserNotFound
	}

	return repo.findOne(ctx, "find user by verification token", "verification_token = ? AND verify = ?", code, false)
}

func (repo *userRepository) findOne(ctx context.Context, op string, query string, args ...any) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).Where(query, args...).Take(&userM).Error
	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to "+op)
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toUserDomain(&userM), nil
}

// Create persists a new user. The ID is assigned here when the caller left it empty.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return errors.Wrap(domainerrors.ErrEmailInUse, "email already exists")
		}
		if isNotNullConstraintViolation(err) || isCheckConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("invalid user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update overwrites every mutable column of the user.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Select("email", "password", "subscription", "avatar_url", "verification_token", "verify", "token", "updated_at").
		Updates(userM)
	if err := result.Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.Wrap(domainerrors.ErrEmailInUse, "email already exists")
		}
		if isNotNullConstraintViolation(err) || isCheckConstraintViolation(err) {
			return domainerrors.ErrUserUpdateFailed.WrapMessage("invalid user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:                data.ID,
		Email:             data.Email,
		PasswordHash:      data.Password,
		Subscription:      entity.SubscriptionOrDefault(data.Subscription),
		AvatarURL:         data.AvatarURL,
		VerificationToken: data.VerificationToken,
		Verify:            data.Verify,
		Token:             data.Token,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:                data.ID,
		Email:             data.Email,
		Password:          data.PasswordHash,
		Subscription:      entity.SubscriptionOrDefault(data.Subscription.String()).String(),
		AvatarURL:         data.AvatarURL,
		VerificationToken: data.VerificationToken,
		Verify:            data.Verify,
		Token:             data.Token,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}
