package usecase

import (
	"context"

	"contacts/internal/domain/entity"
)

// VerificationUsecase owns verification codes and the verification email.
type VerificationUsecase interface {
	// GenerateCode returns a fresh opaque verification code.
	GenerateCode() (string, error)

	// SendVerification mails a link embedding code to email.
	// Failures are reported as domainerrors.ErrEmailDeliveryFailed.
	SendVerification(ctx context.Context, email, code string) error

	// MarkVerified flips the user to verified and consumes the code.
	MarkVerified(ctx context.Context, user *entity.User) error
}
