package usecase

import (
	"context"

	"contacts/internal/domain/entity"

	"github.com/google/uuid"
)

// ContactInput defines the data required to create a contact.
type ContactInput struct {
	Name     string
	Email    string
	Phone    string
	Favorite bool
}

// ContactUsecase manages a user's contacts. Every method takes the owner id
// and never touches contacts belonging to anyone else.
type ContactUsecase interface {
	List(ctx context.Context, ownerID uuid.UUID, filter entity.ContactFilter) ([]*entity.Contact, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*entity.Contact, error)
	Create(ctx context.Context, ownerID uuid.UUID, input *ContactInput) (*entity.Contact, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, patch *entity.ContactPatch) (*entity.Contact, error)
	UpdateFavorite(ctx context.Context, ownerID, id uuid.UUID, favorite *bool) (*entity.Contact, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (*entity.Contact, error)

	// QRCode renders the contact as a vCard QR code PNG.
	QRCode(ctx context.Context, ownerID, id uuid.UUID) ([]byte, error)
}
