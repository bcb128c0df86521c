// Package memory is a process-local persistence driver. It backs the same repository ports as the
// postgres package and is selected with storage.driver: memory (local runs and tests).
package memory

import (
	"context"
	"maps"
	"sync"

	"notes/internal/domain/entity"
	"notes/internal/domain/repository"
	"notes/internal/domain/service"

	"github.com/google/uuid"
)

// Store holds all rows. Every access goes through Execute, which serializes units of work.
type Store struct {
	mu    sync.Mutex
	clock service.Clock
	state state
}

type state struct {
	users   map[uuid.UUID]entity.User
	byEmail map[string]uuid.UUID
	notes   map[uuid.UUID]entity.Note
}

func newState() state {
	return state{
		users:   make(map[uuid.UUID]entity.User),
		byEmail: make(map[string]uuid.UUID),
		notes:   make(map[uuid.UUID]entity.Note),
	}
}

// Values are stored by value so cloning the maps is a full snapshot.
func (s state) clone() state {
	return state{
		users:   maps.Clone(s.users),
		byEmail: maps.Clone(s.byEmail),
		notes:   maps.Clone(s.notes),
	}
}

// NewStore creates an empty store. Timestamps are read from clock.
func NewStore(clock service.Clock) *Store {
	return &Store{
		clock: clock,
		state: newState(),
	}
}

type transactionManager struct {
	store *Store
}

// NewTransactionManager returns the TransactionManager for store.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

// Execute runs fn while holding the store lock. If fn fails or panics every change it made is
// discarded by restoring the snapshot taken before it ran.
func (tm *transactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := tm.store
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	committed := false
	defer func() {
		if !committed {
			s.state = snapshot
		}
	}()

	if err := fn(&repositoryFactory{store: s}); err != nil {
		return err
	}
	committed = true

	return nil
}

type repositoryFactory struct {
	store *Store
}

func (f *repositoryFactory) UserRepo() repository.UserRepository {
	return &userRepository{store: f.store}
}

func (f *repositoryFactory) NoteRepo() repository.NoteRepository {
	return &noteRepository{store: f.store}
}
