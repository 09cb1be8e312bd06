package dto

import (
	"time"

	"zamanat_backend/internals/features/learning/assessments/model"
)

type AssessRequest struct {
	CourseName string `json:"courseName" validate:"required,max=150"`
}

type AssessmentResponse struct {
	ID           string                    `json:"id"`
	UserID       string                    `json:"user"`
	CourseName   string                    `json:"courseName"`
	OverallScore float64                   `json:"overallScore"`
	Summary      string                    `json:"summary"`
	Sections     []model.AssessmentSection `json:"sections"`
	CreatedAt    string                    `json:"createdAt"`
}

func ToAssessmentResponse(a *model.AssessmentModel) AssessmentResponse {
	sections := []model.AssessmentSection(a.AssessmentSections)
	if sections == nil {
		sections = []model.AssessmentSection{}
	}
	return AssessmentResponse{
		ID:           a.AssessmentID.String(),
		UserID:       a.AssessmentUserID.String(),
		CourseName:   a.AssessmentCourseName,
		OverallScore: a.AssessmentOverallScore,
		Summary:      a.AssessmentSummary,
		Sections:     sections,
		CreatedAt:    a.AssessmentCreatedAt.Format(time.RFC3339),
	}
}
