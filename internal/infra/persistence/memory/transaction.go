package memory

import (
	"context"

	"contacts/internal/domain/repository"
)

type transactionManager struct {
	store *Store
}

// NewTransactionManager serializes transactions over the store. A failing
// callback undoes the writes made through its repositories and nothing else.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

func (tm *transactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tm.store.txMu.Lock()
	defer tm.store.txMu.Unlock()

	undo := newUndoLog()

	committed := false
	defer func() {
		if !committed {
			tm.store.rollback(undo)
		}
	}()

	if err := fn(&txFactory{store: tm.store, undo: undo}); err != nil {
		return err
	}
	committed = true

	return nil
}
