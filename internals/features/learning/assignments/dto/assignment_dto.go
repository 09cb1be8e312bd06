package dto

import (
	"time"

	"zamanat_backend/internals/features/learning/assignments/model"
)

type AssignmentResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"user"`
	CourseName   string `json:"courseName"`
	Step         int    `json:"step"`
	Type         string `json:"type"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size"`
	CreatedAt    string `json:"createdAt"`
}

func ToAssignmentResponse(a *model.AssignmentModel) AssignmentResponse {
	return AssignmentResponse{
		ID:           a.AssignmentID.String(),
		UserID:       a.AssignmentUserID.String(),
		CourseName:   a.AssignmentCourseName,
		Step:         a.AssignmentStep,
		Type:         a.AssignmentType,
		OriginalName: a.AssignmentOriginalName,
		MimeType:     a.AssignmentMimeType,
		Size:         a.AssignmentSize,
		CreatedAt:    a.AssignmentCreatedAt.Format(time.RFC3339),
	}
}

func ToAssignmentResponses(rows []model.AssignmentModel) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToAssignmentResponse(&rows[i]))
	}
	return out
}
