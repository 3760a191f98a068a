// Package memory is a process-local implementation of the repositories, used
// for development and for end-to-end tests that should not need PostgreSQL.
package memory

import (
	"sync"

	"contacts/internal/domain/entity"
	"contacts/internal/domain/repository"

	"github.com/google/uuid"
)

// Store holds all users and contacts. Entities are stored by value and copied
// on every read and write so callers never share memory with the store.
type Store struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	users    map[uuid.UUID]entity.User
	contacts map[uuid.UUID]entity.Contact
	seq      map[uuid.UUID]uint64 // insertion order, breaks created_at ties
	next     uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]entity.User),
		contacts: make(map[uuid.UUID]entity.Contact),
		seq:      make(map[uuid.UUID]uint64),
	}
}

// UserRepo returns a user repository backed by the store.
func (s *Store) UserRepo() repository.UserRepository {
	return &userRepository{store: s}
}

// ContactRepo returns a contact repository backed by the store.
func (s *Store) ContactRepo() repository.ContactRepository {
	return &contactRepository{store: s}
}

// undoLog remembers the state each key had before a transaction first wrote
// it. Rolling back restores only those keys, so writes made outside the
// transaction survive.
type undoLog struct {
	users    map[uuid.UUID]userUndo
	contacts map[uuid.UUID]contactUndo
}

type userUndo struct {
	user    entity.User
	present bool
}

type contactUndo struct {
	contact entity.Contact
	seq     uint64
	present bool
}

func newUndoLog() *undoLog {
	return &undoLog{
		users:    make(map[uuid.UUID]userUndo),
		contacts: make(map[uuid.UUID]contactUndo),
	}
}

// recordUser must be called with the write lock held. A nil log is a no-op.
func (l *undoLog) recordUser(s *Store, id uuid.UUID) {
	if l == nil {
		return
	}
	if _, seen := l.users[id]; seen {
		return
	}
	user, ok := s.users[id]
	l.users[id] = userUndo{user: user, present: ok}
}

// recordContact must be called with the write lock held. A nil log is a no-op.
func (l *undoLog) recordContact(s *Store, id uuid.UUID) {
	if l == nil {
		return
	}
	if _, seen := l.contacts[id]; seen {
		return
	}
	contact, ok := s.contacts[id]
	l.contacts[id] = contactUndo{contact: contact, seq: s.seq[id], present: ok}
}

func (s *Store) rollback(l *undoLog) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, u := range l.users {
		if u.present {
			s.users[id] = u.user
		} else {
			delete(s.users, id)
		}
	}
	for id, c := range l.contacts {
		if c.present {
			s.contacts[id] = c.contact
			s.seq[id] = c.seq
		} else {
			delete(s.contacts, id)
			delete(s.seq, id)
		}
	}
}

// txFactory hands out repositories that journal their writes into undo.
type txFactory struct {
	store *Store
	undo  *undoLog
}

func (f *txFactory) UserRepo() repository.UserRepository {
	return &userRepository{store: f.store, undo: f.undo}
}

func (f *txFactory) ContactRepo() repository.ContactRepository {
	return &contactRepository{store: f.store, undo: f.undo}
}
