package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"zamanat_backend/internals/features/users/user/model"
)

type MemoryStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.UserModel
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: map[uuid.UUID]model.UserModel{}}
}

// Put seeds a user, assigning an id when missing.
func (s *MemoryStore) Put(u model.UserModel) model.UserModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.SetDefaults()
	s.users[u.ID] = u
	return u
}

func (s *MemoryStore) List(_ context.Context, f ListFilter) ([]model.UserModel, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	term := strings.ToLower(strings.TrimSpace(f.Query))
	rows := []model.UserModel{}
	for _, u := range s.users {
		if term != "" && !strings.Contains(strings.ToLower(u.Name), term) && !strings.Contains(strings.ToLower(u.Email), term) {
			continue
		}
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		rows = append(rows, u)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].Email < rows[j].Email
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})

	total := int64(len(rows))
	if f.Limit > 0 {
		if f.Offset >= len(rows) {
			return []model.UserModel{}, total, nil
		}
		rows = rows[f.Offset:min(f.Offset+f.Limit, len(rows))]
	}
	return rows, total, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (*model.UserModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (s *MemoryStore) UpdateRole(_ context.Context, id uuid.UUID, role string) (*model.UserModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	u.Role = role
	s.users[id] = u
	return &u, nil
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}
