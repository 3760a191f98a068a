// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"io"

	"contacts/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Email        string
	Password     string
	Subscription string // Optional; empty means starter.
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// UserView is the public projection of a user. It never carries the
// password hash, session token or verification code.
type UserView struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
}

// NewUserView projects a user entity.
func NewUserView(user *entity.User) *UserView {
	return &UserView{
		Email:        user.Email,
		Subscription: entity.SubscriptionOrDefault(user.Subscription.String()).String(),
	}
}

// LoginOutput returns the issued session token and the user's public view.
type LoginOutput struct {
	Token string    `json:"token"`
	User  *UserView `json:"user"`
}

// AuthUsecase covers the account lifecycle: registration, email verification,
// sessions and identity resolution for protected routes.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*UserView, error)
	VerifyEmail(ctx context.Context, code string) error
	ResendVerification(ctx context.Context, email string) error
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	Logout(ctx context.Context, user *entity.User) error
	Current(ctx context.Context, user *entity.User) (*UserView, error)

	// Authenticate resolves a presented bearer token to its user. The token
	// must verify and must equal the session token stored on the user.
	Authenticate(ctx context.Context, token string) (*entity.User, error)

	// UpdateAvatar stores the uploaded image and returns the new avatar URL.
	UpdateAvatar(ctx context.Context, user *entity.User, image io.Reader) (string, error)
}
