package impl

import (
	"context"
	"testing"
	"time"

	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	mockRepo "contacts/internal/mocks/repository"
	mockSvc "contacts/internal/mocks/service"
	"contacts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type contactServiceFixtures struct {
	service     usecase.ContactUsecase
	contactRepo *mockRepo.MockContactRepository
	qrcode      *mockSvc.MockQRCodeService
}

func createTestContactService(t *testing.T) contactServiceFixtures {
	fx := contactServiceFixtures{
		contactRepo: mockRepo.NewMockContactRepository(t),
		qrcode:      mockSvc.NewMockQRCodeService(t),
	}

	fx.service = NewContactService(ContactServiceParams{
		ContactRepo: fx.contactRepo,
		QRCode:      fx.qrcode,
		Logger:      newDiscardLogger(),
	})

	return fx
}

func sampleContact(owner uuid.UUID) *entity.Contact {
	now := time.Now()

	return &entity.Contact{
		ID:        uuid.New(),
		OwnerID:   owner,
		Name:      "Allen Raymond",
		Email:     "nulla.ante@vestibul.co.uk",
		Phone:     "(992) 914-3792",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestContactService_List(t *testing.T) {
	fx := createTestContactService(t)
	ctx := context.Background()
	owner := uuid.New()
	favorite := true
	filter := entity.ContactFilter{Favorite: &favorite, Page: 2, Limit: 5}
	want := []*entity.Contact{sampleContact(owner)}

	fx.contactRepo.EXPECT().ListByOwner(ctx, owner, filter).Return(want, nil)

	got, err := fx.service.List(ctx, owner, filter)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestContactService_List_Error(t *testing.T) {
	fx := createTestContactService(t)
	ctx := context.Background()
	owner := uuid.New()

	fx.contactRepo.EXPECT().ListByOwner(ctx, owner, entity.ContactFilter{}).Return(nil, errors.New("db down"))

	got, err := fx.service.List(ctx, owner, entity.ContactFilter{})
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "failed to list contacts")
}

func TestContactService_Get_ForeignOwnerIsNotFound(t *testing.T) {
	fx := createTestContactService(t)
	ctx := context.Background()
	owner, id := uuid.New(), uuid.New()

	fx.contactRepo.EXPECT().FindByID(ctx, owner, id).Return(nil, repository.ErrContactNotFound)

	got, err := fx.service.Get(ctx, owner, id)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, domainerrors.ErrContactNotFound))
}

func TestContactService_Create_ForcesOwner(t *testing.T) {
	fx := createTestContactService(t)
	ctx := context.Background()
	owner := uuid.New()
	input := &usecase.ContactInput{Name: "Kennedy Lane", Email: "mattis.cras@nonenimMauris.net", Phone: "(542) 451-7038"}

	fx.contactRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(c *entity.Contact) bool {
			return c.OwnerID == owner && c.Name == input.Name && !c.Favorite
		})).
		Run(func(_ context.Context, c *entity.Contact) { c.ID = uuid.New() }).
		Return(nil)

	got, err := fx.service.Create(ctx, owner, input)
	require.NoError(t, err)
	assert.Equal(t, owner, got.OwnerID)
	assert.NotEqual(t, uuid.Nil, got.ID)
}

func TestContactService_Update(t *testing.T) {
	t.Run("empty patch", func(t *testing.T) {
		fx := createTestContactService(t)

		_, err := fx.service.Update(context.Background(), uuid.New(), uuid.New(), &entity.ContactPatch{})
		assert.True(t, errors.Is(err, domainerrors.ErrEmptyUpdate))
	})

	t.Run("applies patch", func(t *testing.T) {
		fx := createTestContactService(t)
		ctx := context.Background()
		owner := uuid.New()
		updated := sampleContact(owner)
		name := "Renamed"
		patch := &entity.ContactPatch{Name: &name}
		updated.Name = name

		fx.contactRepo.EXPECT().Update(ctx, owner, updated.ID, patch).Return(updated, nil)

		got, err := fx.service.Update(ctx, owner, updated.ID, patch)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
	})

	t.Run("missing contact", func(t *testing.T) {
		fx := createTestContactService(t)
		ctx := context.Background()
		owner, id := uuid.New(), uuid.New()
		phone := "555"
		patch := &entity.ContactPatch{Phone: &phone}

		fx.contactRepo.EXPECT().Update(ctx, owner, id, patch).Return(nil, repository.ErrContactNotFound)

		_, err := fx.service.Update(ctx, owner, id, patch)
		assert.True(t, errors.Is(err, domainerrors.ErrContactNotFound))
	})
}

func TestContactService_UpdateFavorite(t *testing.T) {
	t.Run("missing favorite", func(t *testing.T) {
		fx := createTestContactService(t)

		_, err := fx.service.UpdateFavorite(context.Background(), uuid.New(), uuid.New(), nil)
		assert.True(t, errors.Is(err, domainerrors.ErrMissingFavorite))
	})

	t.Run("sets flag", func(t *testing.T) {
		fx := createTestContactService(t)
		ctx := context.Background()
		owner := uuid.New()
		contact := sampleContact(owner)
		contact.Favorite = true
		favorite := true

		fx.contactRepo.EXPECT().
			Update(ctx, owner, contact.ID, mock.MatchedBy(func(p *entity.ContactPatch) bool {
				return p.Favorite != nil && *p.Favorite && p.Name == nil && p.Email == nil && p.Phone == nil
			})).
			Return(contact, nil)

		got, err := fx.service.UpdateFavorite(ctx, owner, contact.ID, &favorite)
		require.NoError(t, err)
		assert.True(t, got.Favorite)
	})
}

func TestContactService_Delete(t *testing.T) {
	fx := createTestContactService(t)
	ctx := context.Background()
	owner := uuid.New()
	contact := sampleContact(owner)

	fx.contactRepo.EXPECT().Delete(ctx, owner, contact.ID).Return(contact, nil).Once()
	got, err := fx.service.Delete(ctx, owner, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, contact, got)

	fx.contactRepo.EXPECT().Delete(ctx, owner, contact.ID).Return(nil, repository.ErrContactNotFound).Once()
	_, err = fx.service.Delete(ctx, owner, contact.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrContactNotFound))
}

func TestContactService_QRCode(t *testing.T) {
	fx := createTestContactService(t)
	ctx := context.Background()
	owner := uuid.New()
	contact := sampleContact(owner)

	fx.contactRepo.EXPECT().FindByID(ctx, owner, contact.ID).Return(contact, nil)
	fx.qrcode.EXPECT().ContactCard(contact).Return([]byte("\x89PNG"), nil)

	png, err := fx.service.QRCode(ctx, owner, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png)
}

func TestContactService_QRCode_RenderFailure(t *testing.T) {
	fx := createTestContactService(t)
	ctx := context.Background()
	owner := uuid.New()
	contact := sampleContact(owner)

	fx.contactRepo.EXPECT().FindByID(ctx, owner, contact.ID).Return(contact, nil)
	fx.qrcode.EXPECT().ContactCard(contact).Return(nil, errors.New("too long"))

	_, err := fx.service.QRCode(ctx, owner, contact.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrInternalError))
}
