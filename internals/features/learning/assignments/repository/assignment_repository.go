package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"zamanat_backend/internals/features/learning/assignments/model"
)

var ErrAssignmentNotFound = errors.New("assignment not found")

type Store interface {
	Create(ctx context.Context, a *model.AssignmentModel) error
	// ListByCourse orders by step, then type, newest first within a slot.
	ListByCourse(ctx context.Context, userID uuid.UUID, courseName string) ([]model.AssignmentModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.AssignmentModel, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormStore struct {
	DB *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Create(ctx context.Context, a *model.AssignmentModel) error {
	return s.DB.WithContext(ctx).Create(a).Error
}

func (s *GormStore) ListByCourse(ctx context.Context, userID uuid.UUID, courseName string) ([]model.AssignmentModel, error) {
	var rows []model.AssignmentModel
	err := s.DB.WithContext(ctx).
		Where("assignment_user_id = ? AND assignment_course_name = ?", userID, strings.TrimSpace(courseName)).
		Order("assignment_step ASC").
		Order("assignment_type ASC").
		Order("assignment_created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (s *GormStore) FindByID(ctx context.Context, id uuid.UUID) (*model.AssignmentModel, error) {
	var a model.AssignmentModel
	err := s.DB.WithContext(ctx).Where("assignment_id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *GormStore) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("assignment_id = ?", id).Delete(&model.AssignmentModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}
