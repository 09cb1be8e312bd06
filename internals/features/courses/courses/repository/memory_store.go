package repository

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"zamanat_backend/internals/features/courses/courses/model"
)

// MemoryStore is a map-backed Store for tests and local runs without postgres.
type MemoryStore struct {
	mu      sync.Mutex
	courses map[uuid.UUID]model.CourseModel
	now     func() time.Time
	last    time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{courses: map[uuid.UUID]model.CourseModel{}, now: time.Now}
}

func (s *MemoryStore) List(_ context.Context, f ListFilter) ([]model.CourseModel, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tag := strings.ToLower(strings.TrimSpace(f.Tag))
	var rows []model.CourseModel
	for _, c := range s.courses {
		if f.Category != "" && c.CourseCategory != f.Category {
			continue
		}
		if tag != "" && !slices.Contains([]string(c.CourseTagLabels), tag) {
			continue
		}
		rows = append(rows, c)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CourseCreatedAt.After(rows[j].CourseCreatedAt)
	})

	total := int64(len(rows))
	if f.Limit > 0 {
		if f.Offset >= len(rows) {
			return []model.CourseModel{}, total, nil
		}
		end := min(f.Offset+f.Limit, len(rows))
		rows = rows[f.Offset:end]
	}
	return rows, total, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (*model.CourseModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courses[id]
	if !ok {
		return nil, ErrCourseNotFound
	}
	return &c, nil
}

func (s *MemoryStore) FindBySlug(_ context.Context, slug string) (*model.CourseModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.courses {
		if c.CourseSlug == slug {
			return &c, nil
		}
	}
	return nil, ErrCourseNotFound
}

func (s *MemoryStore) UniqueSlug(_ context.Context, base string, exclude uuid.UUID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	taken := func(slug string) bool {
		for id, c := range s.courses {
			if id != exclude && strings.EqualFold(c.CourseSlug, slug) {
				return true
			}
		}
		return false
	}
	slug := base
	for i := 2; taken(slug); i++ {
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	return slug, nil
}

func (s *MemoryStore) Create(_ context.Context, c *model.CourseModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.titleTaken(c.CourseTitle, uuid.Nil) {
		return ErrDuplicateTitle
	}
	if c.CourseID == uuid.Nil {
		c.CourseID = uuid.New()
	}
	now := s.now()
	if !now.After(s.last) {
		// keep creation order observable when the clock does not move
		now = s.last.Add(time.Microsecond)
	}
	s.last = now
	c.CourseCreatedAt, c.CourseUpdatedAt = now, now
	s.courses[c.CourseID] = *c
	return nil
}

func (s *MemoryStore) Save(_ context.Context, c *model.CourseModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[c.CourseID]; !ok {
		return ErrCourseNotFound
	}
	if s.titleTaken(c.CourseTitle, c.CourseID) {
		return ErrDuplicateTitle
	}
	c.CourseUpdatedAt = s.now()
	s.courses[c.CourseID] = *c
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[id]; !ok {
		return ErrCourseNotFound
	}
	delete(s.courses, id)
	return nil
}

func (s *MemoryStore) titleTaken(title string, exclude uuid.UUID) bool {
	for id, c := range s.courses {
		if id != exclude && c.CourseTitle == title {
			return true
		}
	}
	return false
}
