package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type contactRepository struct {
	store *Store
	undo  *undoLog
}

func (r *contactRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter entity.ContactFilter) ([]*entity.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*entity.Contact, 0)
	for _, c := range r.store.contacts {
		if c.OwnerID != ownerID {
			continue
		}
		if filter.Favorite != nil && c.Favorite != *filter.Favorite {
			continue
		}
		out = append(out, &c)
	}

	slices.SortFunc(out, func(a, b *entity.Contact) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}

		return cmp.Compare(r.store.seq[a.ID], r.store.seq[b.ID])
	})

	if filter.Limit <= 0 {
		return out, nil
	}

	start := min(filter.Offset(), len(out))
	end := min(start+filter.Limit, len(out))

	return out[start:end], nil
}

func (r *contactRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*entity.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.contacts[id]
	if !ok || c.OwnerID != ownerID {
		return nil, repository.ErrContactNotFound
	}

	return &c, nil
}

func (r *contactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[contact.OwnerID]; !ok {
		return errors.Wrap(domainerrors.ErrUserNotFound, "contact owner does not exist")
	}

	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}
	now := time.Now().UTC()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	r.undo.recordContact(r.store, contact.ID)
	r.store.next++
	r.store.seq[contact.ID] = r.store.next
	r.store.contacts[contact.ID] = *contact

	return nil
}

func (r *contactRepository) Update(ctx context.Context, ownerID, id uuid.UUID, patch *entity.ContactPatch) (*entity.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, ok := r.store.contacts[id]
	if !ok || c.OwnerID != ownerID {
		return nil, repository.ErrContactNotFound
	}

	patch.Apply(&c)
	c.UpdatedAt = time.Now().UTC()
	r.undo.recordContact(r.store, id)
	r.store.contacts[id] = c

	return &c, nil
}

func (r *contactRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) (*entity.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, ok := r.store.contacts[id]
	if !ok || c.OwnerID != ownerID {
		return nil, repository.ErrContactNotFound
	}

	r.undo.recordContact(r.store, id)
	delete(r.store.contacts, id)
	delete(r.store.seq, id)

	return &c, nil
}
