package repository

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"zamanat_backend/internals/features/learning/assessments/model"
)

var ErrAssessmentNotFound = errors.New("assessment not found")

type Store interface {
	Create(ctx context.Context, a *model.AssessmentModel) error
	Latest(ctx context.Context, userID uuid.UUID, courseName string) (*model.AssessmentModel, error)
}

type GormStore struct {
	DB *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Create(ctx context.Context, a *model.AssessmentModel) error {
	return s.DB.WithContext(ctx).Create(a).Error
}

func (s *GormStore) Latest(ctx context.Context, userID uuid.UUID, courseName string) (*model.AssessmentModel, error) {
	var a model.AssessmentModel
	err := s.DB.WithContext(ctx).
		Where("assessment_user_id = ? AND assessment_course_name = ?", userID, strings.TrimSpace(courseName)).
		Order("assessment_created_at DESC").
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAssessmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

type MemoryStore struct {
	mu   sync.Mutex
	rows []model.AssessmentModel
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Create(_ context.Context, a *model.AssessmentModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.AssessmentID == uuid.Nil {
		a.AssessmentID = uuid.New()
	}
	now := time.Now()
	a.AssessmentCreatedAt, a.AssessmentUpdatedAt = now, now
	s.rows = append(s.rows, *a)
	return nil
}

// Latest returns the most recently inserted match.
func (s *MemoryStore) Latest(_ context.Context, userID uuid.UUID, courseName string) (*model.AssessmentModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	courseName = strings.TrimSpace(courseName)
	for i := len(s.rows) - 1; i >= 0; i-- {
		if r := s.rows[i]; r.AssessmentUserID == userID && r.AssessmentCourseName == courseName {
			return &r, nil
		}
	}
	return nil, ErrAssessmentNotFound
}
