package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"zamanat_backend/internals/features/users/profile/model"
)

// MemoryStore keeps profiles in a map. Used by tests and local runs without postgres.
type MemoryStore struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]model.ProfileModel
	// UserNames mirrors users.name so the name sync can be asserted.
	UserNames map[uuid.UUID]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles:  map[uuid.UUID]model.ProfileModel{},
		UserNames: map[uuid.UUID]string{},
	}
}

func (s *MemoryStore) FindByUserID(_ context.Context, userID uuid.UUID) (*model.ProfileModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return &p, nil
}

func (s *MemoryStore) Upsert(_ context.Context, userID uuid.UUID, patch ProfilePatch) (*model.ProfileModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	p, ok := s.profiles[userID]
	if !ok {
		p = model.ProfileModel{
			ProfileID:        uuid.New(),
			ProfileUserID:    userID,
			ProfileName:      s.UserNames[userID],
			ProfileCreatedAt: now,
		}
	}
	if err := ApplyPatch(&p, patch); err != nil {
		return nil, err
	}
	p.ProfileUpdatedAt = now
	s.profiles[userID] = p
	if patch.Name != nil {
		s.UserNames[userID] = p.ProfileName
	}
	return &p, nil
}
