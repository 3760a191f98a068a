package impl

import (
	"context"
	"log/slog"

	deliverycontext "contacts/internal/delivery/context"
	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	"contacts/internal/domain/service"
	"contacts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// contactService implements the ContactUsecase interface.
type contactService struct {
	contactRepo repository.ContactRepository
	qrcode      service.QRCodeService
	logger      *slog.Logger
}

// ContactServiceParams holds dependencies for ContactService, injected by Fx.
type ContactServiceParams struct {
	fx.In

	ContactRepo repository.ContactRepository
	QRCode      service.QRCodeService
	Logger      *slog.Logger
}

// NewContactService is the constructor for contactService.
func NewContactService(params ContactServiceParams) usecase.ContactUsecase {
	return &contactService{
		contactRepo: params.ContactRepo,
		qrcode:      params.QRCode,
		logger:      params.Logger,
	}
}

func (srv *contactService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns the owner's contacts.
func (srv *contactService) List(ctx context.Context, ownerID uuid.UUID, filter entity.ContactFilter) ([]*entity.Contact, error) {
	contacts, err := srv.contactRepo.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list contacts")
	}

	return contacts, nil
}

// Get returns one of the owner's contacts.
func (srv *contactService) Get(ctx context.Context, ownerID, id uuid.UUID) (*entity.Contact, error) {
	contact, err := srv.contactRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, mapContactError(err, "failed to get contact")
	}

	return contact, nil
}

// Create adds a contact owned by ownerID.
func (srv *contactService) Create(ctx context.Context, ownerID uuid.UUID, input *usecase.ContactInput) (*entity.Contact, error) {
	contact := &entity.Contact{
		OwnerID:  ownerID,
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Favorite: input.Favorite,
	}

	if err := srv.contactRepo.Create(ctx, contact); err != nil {
		return nil, errors.Wrap(err, "failed to create contact")
	}

	srv.log(ctx).Info("Contact created", slog.String("contactID", contact.ID.String()))

	return contact, nil
}

// Update applies a partial update. An empty patch is rejected.
func (srv *contactService) Update(ctx context.Context, ownerID, id uuid.UUID, patch *entity.ContactPatch) (*entity.Contact, error) {
	if patch.IsEmpty() {
		return nil, errors.WithStack(domainerrors.ErrEmptyUpdate)
	}

	contact, err := srv.contactRepo.Update(ctx, ownerID, id, patch)
	if err != nil {
		return nil, mapContactError(err, "failed to update contact")
	}

	return contact, nil
}

// UpdateFavorite sets the favorite flag. A missing value is rejected.
func (srv *contactService) UpdateFavorite(ctx context.Context, ownerID, id uuid.UUID, favorite *bool) (*entity.Contact, error) {
	if favorite == nil {
		return nil, errors.WithStack(domainerrors.ErrMissingFavorite)
	}

	contact, err := srv.contactRepo.Update(ctx, ownerID, id, &entity.ContactPatch{Favorite: favorite})
	if err != nil {
		return nil, mapContactError(err, "failed to update favorite")
	}

	return contact, nil
}

// Delete removes the contact and returns it.
func (srv *contactService) Delete(ctx context.Context, ownerID, id uuid.UUID) (*entity.Contact, error) {
	contact, err := srv.contactRepo.Delete(ctx, ownerID, id)
	if err != nil {
		return nil, mapContactError(err, "failed to delete contact")
	}

	srv.log(ctx).Info("Contact deleted", slog.String("contactID", id.String()))

	return contact, nil
}

// QRCode renders the owner's contact as a vCard QR code.
func (srv *contactService) QRCode(ctx context.Context, ownerID, id uuid.UUID) ([]byte, error) {
	contact, err := srv.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrcode.ContactCard(contact)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInternalError, "failed to render QR code: "+err.Error())
	}

	return png, nil
}

// mapContactError hides whether a missing contact exists for another owner.
func mapContactError(err error, msg string) error {
	if errors.Is(err, repository.ErrContactNotFound) {
		return errors.Wrap(domainerrors.ErrContactNotFound, msg)
	}

	return errors.Wrap(err, msg)
}
