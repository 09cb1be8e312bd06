package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"zamanat_backend/internals/features/courses/courses/dto"
	"zamanat_backend/internals/features/courses/courses/model"
	"zamanat_backend/internals/features/courses/courses/repository"
	helper "zamanat_backend/internals/helpers"
)

var ErrInvalidCategory = errors.New("category must be one of: " + strings.Join(model.Categories, ", "))

type CourseService struct {
	Store repository.Store
}

func NewCourseService(store repository.Store) *CourseService {
	return &CourseService{Store: store}
}

// Create fills in icon, theme, modules, tags, price and slug when the admin left them out.
func (s *CourseService) Create(ctx context.Context, req dto.CreateCourseRequest) (*model.CourseModel, error) {
	title := strings.TrimSpace(req.Title)
	category := strings.TrimSpace(req.Category)
	if !ValidCategory(category) {
		return nil, ErrInvalidCategory
	}

	course := &model.CourseModel{
		CourseTitle:            title,
		CourseShortDescription: strings.TrimSpace(req.ShortDescription),
		CourseDescription:      req.Description,
		CourseCategory:         category,
		CourseCategoryCode:     strings.TrimSpace(req.CategoryCode),
		CourseInstructor:       strings.TrimSpace(req.Instructor),
		CourseDuration:         strings.TrimSpace(req.Duration),
		CourseTheme:            req.Theme,
		CourseIcon:             strings.TrimSpace(req.Icon),
		CoursePrice:            model.DefaultPrice,
	}
	if course.CourseCategoryCode == "" {
		course.CourseCategoryCode = CategoryCode(category)
	}
	if course.CourseIcon == "" {
		course.CourseIcon = AssignIcon(title)
	}
	if course.CourseTheme == "" {
		course.CourseTheme = AssignTheme(title, category)
	}
	if req.Price != nil {
		course.CoursePrice = *req.Price
	}

	if len(req.Modules) == 0 {
		course.CourseModules = DefaultModules()
	} else {
		course.CourseModules = NumberModules(dto.ToModules(req.Modules))
	}

	// an explicit empty list keeps the course untagged
	if req.Tags == nil {
		course.CourseTags = DefaultTags(category)
	} else {
		course.CourseTags = dto.ToTags(req.Tags)
	}
	course.CourseTagLabels = TagLabels(course.CourseTags)

	slug, err := s.Store.UniqueSlug(ctx, helper.Slugify(title, 100), uuid.Nil)
	if err != nil {
		return nil, err
	}
	course.CourseSlug = slug

	if err := s.Store.Create(ctx, course); err != nil {
		return nil, err
	}
	log.Printf("[COURSE] ✅ created %q slug=%s icon=%s theme=%s", title, slug, course.CourseIcon, course.CourseTheme)
	return course, nil
}

// Update overwrites the fields present in req. A new title gets a new slug.
func (s *CourseService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCourseRequest) (*model.CourseModel, error) {
	course, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if !ValidCategory(category) {
			return nil, ErrInvalidCategory
		}
		course.CourseCategory = category
		if req.CategoryCode == nil {
			course.CourseCategoryCode = CategoryCode(category)
		}
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) != course.CourseTitle {
		course.CourseTitle = strings.TrimSpace(*req.Title)
		slug, err := s.Store.UniqueSlug(ctx, helper.Slugify(course.CourseTitle, 100), course.CourseID)
		if err != nil {
			return nil, err
		}
		course.CourseSlug = slug
	}
	setString(&course.CourseShortDescription, req.ShortDescription)
	setString(&course.CourseCategoryCode, req.CategoryCode)
	setString(&course.CourseInstructor, req.Instructor)
	setString(&course.CourseDuration, req.Duration)
	setString(&course.CourseTheme, req.Theme)
	setString(&course.CourseIcon, req.Icon)
	if req.Description != nil {
		course.CourseDescription = *req.Description
	}
	if req.Price != nil {
		course.CoursePrice = *req.Price
	}
	if req.Tags != nil {
		course.CourseTags = dto.ToTags(*req.Tags)
		course.CourseTagLabels = TagLabels(course.CourseTags)
	}
	if req.Modules != nil {
		course.CourseModules = NumberModules(dto.ToModules(*req.Modules))
	}

	if err := s.Store.Save(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
