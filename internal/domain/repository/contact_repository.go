package repository

import (
	"context"
	"errors"

	"contacts/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrContactNotFound is returned when no contact with the id exists for the given owner.
// A contact owned by someone else is reported the same way.
var ErrContactNotFound = errors.New("contact not found")

// ContactRepository persists contacts. Every method is scoped to an owner so a
// caller can never observe or touch another tenant's rows.
type ContactRepository interface {
	// ListByOwner returns the owner's contacts ordered by creation time.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filter entity.ContactFilter) ([]*entity.Contact, error)

	// FindByID returns the contact only if it belongs to ownerID.
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*entity.Contact, error)

	// Create persists a new contact. OwnerID must already be set.
	Create(ctx context.Context, contact *entity.Contact) error

	// Update applies patch to the owner's contact and returns the updated row.
	Update(ctx context.Context, ownerID, id uuid.UUID, patch *entity.ContactPatch) (*entity.Contact, error)

	// Delete removes the owner's contact and returns it as it was before deletion.
	Delete(ctx context.Context, ownerID, id uuid.UUID) (*entity.Contact, error)
}
