package memory

import (
	"context"
	"sync"

	"github.com/ticketlane/eventwizard/internal/store"
	"github.com/ticketlane/eventwizard/internal/wizard"
)

type SessionsRepo struct {
	mu    sync.RWMutex
	items map[string]*wizard.Session
}

func NewSessionsRepo() *SessionsRepo {
	return &SessionsRepo{
		items: make(map[string]*wizard.Session),
	}
}

func (r *SessionsRepo) Create(ctx context.Context, s *wizard.Session) error {
	r.mu.Lock()
	r.items[s.ID] = s.Clone()
	r.mu.Unlock()

	return nil
}

// Get returns a deep copy so callers can mutate freely and persist with Save.
func (r *SessionsRepo) Get(ctx context.Context, id string) (*wizard.Session, error) {
	r.mu.RLock()
	s, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return nil, store.ErrNotFound
	}

	return s.Clone(), nil
}

func (r *SessionsRepo) Save(ctx context.Context, s *wizard.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[s.ID]; !ok {
		return store.ErrNotFound
	}

	r.items[s.ID] = s.Clone()

	return nil
}

func (r *SessionsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return store.ErrNotFound
	}

	delete(r.items, id)

	return nil
}
