package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"zamanat_backend/internals/features/courses/courses/model"
	helper "zamanat_backend/internals/helpers"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrDuplicateTitle = errors.New("course title already exists")
)

type ListFilter struct {
	Category string
	Tag      string // matched against the lowercased tag labels
	Limit    int
	Offset   int
}

type Store interface {
	List(ctx context.Context, f ListFilter) ([]model.CourseModel, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.CourseModel, error)
	FindBySlug(ctx context.Context, slug string) (*model.CourseModel, error)
	// UniqueSlug returns base or base-N, skipping the course with id exclude.
	UniqueSlug(ctx context.Context, base string, exclude uuid.UUID) (string, error)
	Create(ctx context.Context, c *model.CourseModel) error
	Save(ctx context.Context, c *model.CourseModel) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormStore struct {
	DB *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) List(ctx context.Context, f ListFilter) ([]model.CourseModel, int64, error) {
	tx := s.DB.WithContext(ctx).Model(&model.CourseModel{})
	if f.Category != "" {
		tx = tx.Where("course_category = ?", f.Category)
	}
	if tag := strings.ToLower(strings.TrimSpace(f.Tag)); tag != "" {
		tx = tx.Where("? = ANY(course_tag_labels)", tag)
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.CourseModel
	q := tx.Order("course_created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *GormStore) FindByID(ctx context.Context, id uuid.UUID) (*model.CourseModel, error) {
	return s.first(ctx, "course_id = ?", id)
}

func (s *GormStore) FindBySlug(ctx context.Context, slug string) (*model.CourseModel, error) {
	return s.first(ctx, "course_slug = ?", strings.TrimSpace(slug))
}

func (s *GormStore) first(ctx context.Context, where string, arg any) (*model.CourseModel, error) {
	var c model.CourseModel
	err := s.DB.WithContext(ctx).Where(where, arg).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *GormStore) UniqueSlug(ctx context.Context, base string, exclude uuid.UUID) (string, error) {
	excludeID := ""
	if exclude != uuid.Nil {
		excludeID = exclude.String()
	}
	return helper.EnsureUniqueSlug(ctx, s.DB, model.CourseModel{}.TableName(), "course_slug", "course_id", base, excludeID, 120)
}

func (s *GormStore) Create(ctx context.Context, c *model.CourseModel) error {
	return mapWriteErr(s.DB.WithContext(ctx).Create(c).Error)
}

func (s *GormStore) Save(ctx context.Context, c *model.CourseModel) error {
	return mapWriteErr(s.DB.WithContext(ctx).Save(c).Error)
}

func (s *GormStore) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("course_id = ?", id).Delete(&model.CourseModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCourseNotFound
	}
	return nil
}

// slugs are made unique before writing, so a unique violation means the title
func mapWriteErr(err error) error {
	if err != nil && helper.IsUniqueViolation(err) {
		return ErrDuplicateTitle
	}
	return err
}
