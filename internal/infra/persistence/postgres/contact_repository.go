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
	"gorm.io/gorm/clause"
)

// contactRepository implements repository.ContactRepository. Every statement
// filters on owner_id so rows of other users are indistinguishable from missing rows.
type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository is the constructor for contactRepository.
func NewContactRepository(db *gorm.DB) repository.ContactRepository {
	return &contactRepository{db: db}
}

// ListByOwner returns the owner's contacts, oldest first.
func (repo *contactRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter entity.ContactFilter) ([]*entity.Contact, error) {
	query := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Order("id ASC")

	if filter.Favorite != nil {
		query = query.Where("favorite = ?", *filter.Favorite)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset())
	}

	var rows []*model.ContactModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list contacts")
	}

	contacts := make([]*entity.Contact, 0, len(rows))
	for _, row := range rows {
		contacts = append(contacts, toContactDomain(row))
	}

	return contacts, nil
}

// FindByID returns the contact when it exists and belongs to ownerID.
func (repo *contactRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*entity.Contact, error) {
	var row model.ContactModel
	err := repo.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrContactNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find contact")
	}

	return toContactDomain(&row), nil
}

// Create inserts the contact, assigning an ID when missing.
func (repo *contactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}
	row := fromContactDomain(contact)

	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "contact owner does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create contact")
	}

	contact.CreatedAt = row.CreatedAt
	contact.UpdatedAt = row.UpdatedAt

	return nil
}

// Update writes only the patched columns and returns the resulting row.
func (repo *contactRepository) Update(ctx context.Context, ownerID, id uuid.UUID, patch *entity.ContactPatch) (*entity.Contact, error) {
	var row model.ContactModel
	result := repo.db.WithContext(ctx).
		Model(&row).
		Clauses(clause.Returning{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(patchColumns(patch))
	if err := result.Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to update contact")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrContactNotFound
	}

	return toContactDomain(&row), nil
}

// Delete removes the contact and returns it as it was.
func (repo *contactRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) (*entity.Contact, error) {
	var row model.ContactModel
	result := repo.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&row)
	if err := result.Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to delete contact")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrContactNotFound
	}

	return toContactDomain(&row), nil
}

// patchColumns maps the set fields of a patch to column names.
func patchColumns(patch *entity.ContactPatch) map[string]any {
	cols := make(map[string]any, 4)
	if patch == nil {
		return cols
	}
	if patch.Name != nil {
		cols["name"] = *patch.Name
	}
	if patch.Email != nil {
		cols["email"] = *patch.Email
	}
	if patch.Phone != nil {
		cols["phone"] = *patch.Phone
	}
	if patch.Favorite != nil {
		cols["favorite"] = *patch.Favorite
	}

	return cols
}

func toContactDomain(data *model.ContactModel) *entity.Contact {
	if data == nil {
		return nil
	}

	return &entity.Contact{
		ID:        data.ID,
		OwnerID:   data.OwnerID,
		Name:      data.Name,
		Email:     data.Email,
		Phone:     data.Phone,
		Favorite:  data.Favorite,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromContactDomain(data *entity.Contact) *model.ContactModel {
	if data == nil {
		return nil
	}

	return &model.ContactModel{
		ID:        data.ID,
		OwnerID:   data.OwnerID,
		Name:      data.Name,
		Email:     data.Email,
		Phone:     data.Phone,
		Favorite:  data.Favorite,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
