// server/internal/store/memory.go
package store

import (
	"context"
	"sync"
	"time"

	"facility-accounts-api-server/internal/models"

	"github.com/google/uuid"
)

// MemoryStore keeps accounts in process memory. The whole check-and-insert
// runs under one lock so concurrent inserts cannot both claim a unique value.
type MemoryStore struct {
	mu         sync.RWMutex
	byID       map[string]*models.Account
	byUsername map[string]string
	byEmail    map[string]string
	byFacility map[string]string
}

// NewMemoryStore tạo một store rỗng.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:       make(map[string]*models.Account),
		byUsername: make(map[string]string),
		byEmail:    make(map[string]string),
		byFacility: make(map[string]string),
	}
}

func (s *MemoryStore) Insert(_ context.Context, account *models.Account) (*models.Account, error) {
	record := *account
	if record.UsernameKey == "" {
		record.UsernameKey = UsernameKey(record.Username)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[record.UsernameKey]; taken {
		return nil, &UniquenessError{Field: FieldUsername}
	}
	if _, taken := s.byEmail[record.Email]; taken {
		return nil, &UniquenessError{Field: FieldEmail}
	}
	if _, taken := s.byFacility[record.FacilityName]; taken {
		return nil, &UniquenessError{Field: FieldFacilityName}
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	// ids are never reused, even one supplied by the caller
	if _, taken := s.byID[record.ID]; taken {
		return nil, &UniquenessError{Field: "id"}
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	s.byID[record.ID] = &record
	s.byUsername[record.UsernameKey] = record.ID
	s.byEmail[record.Email] = record.ID
	s.byFacility[record.FacilityName] = record.ID

	saved := record
	return &saved, nil
}

func (s *MemoryStore) FindByUsername(_ context.Context, username string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[UsernameKey(username)]
	if !ok {
		return nil, ErrNotFound
	}
	found := *s.byID[id]
	return &found, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	found := *account
	return &found, nil
}

// Len returns the number of stored accounts.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
