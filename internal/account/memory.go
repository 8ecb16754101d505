package account

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps accounts in process memory. It backs the unit tests and
// the demo deployment mode; production uses the gorm-backed store.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]*Account
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[string]*Account)}
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if a, ok := s.accounts[id]; ok {
		return a.Clone(), nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.accounts {
		if strings.EqualFold(a.Email, email) {
			return a.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindByVerificationToken(_ context.Context, token string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.accounts {
		if token != "" && a.VerificationToken == token {
			return a.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindByResetToken(_ context.Context, token string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.accounts {
		if token != "" && a.ResetToken == token {
			return a.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) Save(_ context.Context, a *Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Mirrors the unique index on email in the gorm store.
	for id, existing := range s.accounts {
		if id != a.ID && strings.EqualFold(existing.Email, a.Email) {
			return ErrDuplicateAccount
		}
	}

	s.accounts[a.ID] = a.Clone()
	return nil
}

func (s *MemoryStore) Stats(_ context.Context, now time.Time) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats Stats
	for _, a := range s.accounts {
		stats.TotalUsers++
		if a.IsVerified {
			stats.VerifiedUsers++
		}
		if a.Locked(now) {
			stats.LockedUsers++
		}
	}
	return stats, nil
}
