package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"zamanat_backend/internals/features/learning/assignments/model"
)

type MemoryStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]model.AssignmentModel
	last time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: map[uuid.UUID]model.AssignmentModel{}}
}

func (s *MemoryStore) Create(_ context.Context, a *model.AssignmentModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.AssignmentID == uuid.Nil {
		a.AssignmentID = uuid.New()
	}
	now := time.Now()
	if !now.After(s.last) {
		now = s.last.Add(time.Microsecond)
	}
	s.last = now
	a.AssignmentCreatedAt = now
	s.rows[a.AssignmentID] = *a
	return nil
}

func (s *MemoryStore) ListByCourse(_ context.Context, userID uuid.UUID, courseName string) ([]model.AssignmentModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	courseName = strings.TrimSpace(courseName)
	out := []model.AssignmentModel{}
	for _, a := range s.rows {
		if a.AssignmentUserID == userID && a.AssignmentCourseName == courseName {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.AssignmentStep != b.AssignmentStep {
			return a.AssignmentStep < b.AssignmentStep
		}
		if a.AssignmentType != b.AssignmentType {
			return a.AssignmentType < b.AssignmentType
		}
		return a.AssignmentCreatedAt.After(b.AssignmentCreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (*model.AssignmentModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.rows[id]
	if !ok {
		return nil, ErrAssignmentNotFound
	}
	return &a, nil
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return ErrAssignmentNotFound
	}
	delete(s.rows, id)
	return nil
}
