package store

import (
	"context"
	"errors"
	"strings"

	"github.com/znapfile/edge-gateway/internal/domain"
)

// ErrNotFound reports an account lookup miss.
var ErrNotFound = errors.New("account not found")

// AccountStore defines lookup access for accounts. The gateway ships an
// in-memory implementation seeded from config; the interface keeps the
// door open for a real backend.
type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
}

type memoryStore struct {
	byEmail map[string]*domain.Account
	byID    map[string]*domain.Account
}

// NewMemoryStore returns an in-memory implementation holding the given
// accounts. Email lookups are case-insensitive.
func NewMemoryStore(accounts ...*domain.Account) AccountStore {
	s := &memoryStore{
		byEmail: make(map[string]*domain.Account, len(accounts)),
		byID:    make(map[string]*domain.Account, len(accounts)),
	}
	for _, account := range accounts {
		s.byEmail[strings.ToLower(account.Email)] = account
		s.byID[account.ID] = account
	}
	return s
}

func (s *memoryStore) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	account, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	return account, nil
}

func (s *memoryStore) GetByID(_ context.Context, id string) (*domain.Account, error) {
	account, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return account, nil
}
