package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AssessmentSection struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Status   string  `json:"status,omitempty"`
	Feedback string  `json:"feedback"`
}

type AssessmentModel struct {
	AssessmentID           uuid.UUID                                `gorm:"column:assessment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"assessment_id"`
	AssessmentUserID       uuid.UUID                                `gorm:"column:assessment_user_id;type:uuid;not null;index:idx_assessment_user_course" json:"assessment_user_id"`
	AssessmentCourseName   string                                   `gorm:"column:assessment_course_name;size:150;not null;index:idx_assessment_user_course" json:"assessment_course_name"`
	AssessmentOverallScore float64                                  `gorm:"column:assessment_overall_score;not null" json:"assessment_overall_score"`
	AssessmentSummary      string                                   `gorm:"column:assessment_summary;type:text;not null" json:"assessment_summary"`
	AssessmentSections     datatypes.JSONSlice[AssessmentSection]   `gorm:"column:assessment_sections;type:jsonb" json:"assessment_sections"`
	AssessmentAIResponse   string                                   `gorm:"column:assessment_ai_response;type:text" json:"-"`
	AssessmentCreatedAt    time.Time                                `gorm:"column:assessment_created_at;autoCreateTime" json:"assessment_created_at"`
	AssessmentUpdatedAt    time.Time                                `gorm:"column:assessment_updated_at;autoUpdateTime" json:"assessment_updated_at"`
}

func (AssessmentModel) TableName() string {
	return "assessments"
}
