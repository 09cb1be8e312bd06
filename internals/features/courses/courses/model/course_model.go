package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const (
	CategoryIT          = "IT"
	CategoryDataScience = "Data Science (DS)"
	CategoryCS          = "CS"
	CategoryManagement  = "Management"
	CategoryCommerce    = "Commerce"
	CategoryOther       = "Other"
)

var Categories = []string{
	CategoryIT, CategoryDataScience, CategoryCS, CategoryManagement, CategoryCommerce, CategoryOther,
}

const (
	ThemeGreen  = "green"
	ThemeBlue   = "blue"
	ThemeOrange = "orange"
	ThemePurple = "purple"
	ThemeRed    = "red"
	ThemeIndigo = "indigo"
)

var Themes = []string{ThemeGreen, ThemeBlue, ThemeOrange, ThemePurple, ThemeRed, ThemeIndigo}

const (
	TagPrimary   = "primary"
	TagSecondary = "secondary"

	DefaultIcon  = "globe"
	DefaultPrice = 199
)

type CourseTag struct {
	Label string `json:"label"`
	Type  string `json:"type"`
}

type CourseModule struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CourseModel struct {
	CourseID               uuid.UUID                          `gorm:"column:course_id;type:uuid;default:gen_random_uuid();primaryKey" json:"course_id"`
	CourseTitle            string                             `gorm:"column:course_title;size:100;uniqueIndex;not null" json:"course_title"`
	CourseSlug             string                             `gorm:"column:course_slug;size:120;uniqueIndex;not null" json:"course_slug"`
	CourseShortDescription string                             `gorm:"column:course_short_description;size:150;not null" json:"course_short_description"`
	CourseDescription      string                             `gorm:"column:course_description;type:text;not null" json:"course_description"`
	CourseCategory         string                             `gorm:"column:course_category;size:40;not null;index" json:"course_category"`
	CourseCategoryCode     string                             `gorm:"column:course_category_code;size:20;not null" json:"course_category_code"`
	CourseInstructor       string                             `gorm:"column:course_instructor;size:100;not null" json:"course_instructor"`
	CourseDuration         string                             `gorm:"column:course_duration;size:50;not null" json:"course_duration"`
	CourseTags             datatypes.JSONSlice[CourseTag]     `gorm:"column:course_tags;type:jsonb" json:"course_tags"`
	CourseTagLabels        pq.StringArray                     `gorm:"column:course_tag_labels;type:text[]" json:"-"`
	CourseTheme            string                             `gorm:"column:course_theme;size:20;not null;default:'blue'" json:"course_theme"`
	CourseIcon             string                             `gorm:"column:course_icon;size:40;not null;default:'globe'" json:"course_icon"`
	CoursePrice            int64                              `gorm:"column:course_price;not null;default:199" json:"course_price"`
	CourseModules          datatypes.JSONSlice[CourseModule]  `gorm:"column:course_modules;type:jsonb" json:"course_modules"`
	CourseCreatedAt        time.Time                          `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt        time.Time                          `gorm:"column:course_updated_at;autoUpdateTime" json:"course_updated_at"`
}

func (CourseModel) TableName() string {
	return "courses"
}

// ModuleCount is the number of modules this course ships with (0 when none are defined).
func (c CourseModel) ModuleCount() int {
	return len(c.CourseModules)
}
