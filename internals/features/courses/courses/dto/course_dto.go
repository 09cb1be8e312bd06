package dto

import (
	"time"

	"zamanat_backend/internals/features/courses/courses/model"
)

/* =========================================================
   REQUEST
========================================================= */

type TagRequest struct {
	Label string `json:"label" validate:"required,max=40"`
	Type  string `json:"type" validate:"omitempty,oneof=primary secondary"`
}

type ModuleRequest struct {
	ID          int    `json:"id" validate:"gte=0"`
	Title       string `json:"title" validate:"required,max=120"`
	Description string `json:"description" validate:"max=500"`
}

// Category is checked against model.Categories by the service.
type CreateCourseRequest struct {
	Title            string          `json:"title" validate:"required,max=100"`
	ShortDescription string          `json:"shortDescription" validate:"required,max=150"`
	Description      string          `json:"description" validate:"required"`
	Category         string          `json:"category" validate:"required"`
	CategoryCode     string          `json:"categoryCode" validate:"omitempty,max=20"`
	Instructor       string          `json:"instructor" validate:"required,max=100"`
	Duration         string          `json:"duration" validate:"required,max=50"`
	Tags             []TagRequest    `json:"tags" validate:"omitempty,dive"`
	Theme            string          `json:"theme" validate:"omitempty,oneof=green blue orange purple red indigo"`
	Icon             string          `json:"icon" validate:"omitempty,max=40"`
	Price            *int64          `json:"price" validate:"omitempty,gte=0"`
	Modules          []ModuleRequest `json:"modules" validate:"omitempty,dive"`
}

// UpdateCourseRequest overwrites only the fields that are present.
type UpdateCourseRequest struct {
	Title            *string          `json:"title" validate:"omitempty,min=1,max=100"`
	ShortDescription *string          `json:"shortDescription" validate:"omitempty,min=1,max=150"`
	Description      *string          `json:"description" validate:"omitempty,min=1"`
	Category         *string          `json:"category"`
	CategoryCode     *string          `json:"categoryCode" validate:"omitempty,max=20"`
	Instructor       *string          `json:"instructor" validate:"omitempty,min=1,max=100"`
	Duration         *string          `json:"duration" validate:"omitempty,min=1,max=50"`
	Tags             *[]TagRequest    `json:"tags" validate:"omitempty,dive"`
	Theme            *string          `json:"theme" validate:"omitempty,oneof=green blue orange purple red indigo"`
	Icon             *string          `json:"icon" validate:"omitempty,min=1,max=40"`
	Price            *int64           `json:"price" validate:"omitempty,gte=0"`
	Modules          *[]ModuleRequest `json:"modules" validate:"omitempty,dive"`
}

type ListCourseQuery struct {
	Category string `query:"category"`
	Tag      string `query:"tag"`
}

func ToTags(in []TagRequest) []model.CourseTag {
	out := make([]model.CourseTag, 0, len(in))
	for _, t := range in {
		typ := t.Type
		if typ == "" {
			typ = model.TagPrimary
		}
		out = append(out, model.CourseTag{Label: t.Label, Type: typ})
	}
	return out
}

func ToModules(in []ModuleRequest) []model.CourseModule {
	out := make([]model.CourseModule, 0, len(in))
	for _, m := range in {
		out = append(out, model.CourseModule{ID: m.ID, Title: m.Title, Description: m.Description})
	}
	return out
}

/* =========================================================
   RESPONSE
========================================================= */

type CourseResponse struct {
	ID               string               `json:"id"`
	Title            string               `json:"title"`
	Slug             string               `json:"slug"`
	ShortDescription string               `json:"shortDescription"`
	Description      string               `json:"description"`
	Category         string               `json:"category"`
	CategoryCode     string               `json:"categoryCode"`
	Instructor       string               `json:"instructor"`
	Duration         string               `json:"duration"`
	Tags             []model.CourseTag    `json:"tags"`
	Theme            string               `json:"theme"`
	Icon             string               `json:"icon"`
	Price            int64                `json:"price"`
	Modules          []model.CourseModule `json:"modules"`
	CreatedAt        string               `json:"createdAt"`
}

func ToCourseResponse(c *model.CourseModel) CourseResponse {
	tags := []model.CourseTag(c.CourseTags)
	if tags == nil {
		tags = []model.CourseTag{}
	}
	mods := []model.CourseModule(c.CourseModules)
	if mods == nil {
		mods = []model.CourseModule{}
	}
	return CourseResponse{
		ID:               c.CourseID.String(),
		Title:            c.CourseTitle,
		Slug:             c.CourseSlug,
		ShortDescription: c.CourseShortDescription,
		Description:      c.CourseDescription,
		Category:         c.CourseCategory,
		CategoryCode:     c.CourseCategoryCode,
		Instructor:       c.CourseInstructor,
		Duration:         c.CourseDuration,
		Tags:             tags,
		Theme:            c.CourseTheme,
		Icon:             c.CourseIcon,
		Price:            c.CoursePrice,
		Modules:          mods,
		CreatedAt:        c.CourseCreatedAt.Format(time.RFC3339),
	}
}

func ToCourseResponses(rows []model.CourseModel) []CourseResponse {
	out := make([]CourseResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToCourseResponse(&rows[i]))
	}
	return out
}
