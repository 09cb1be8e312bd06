package model

import (
	"time"

	"github.com/google/uuid"
)

const MaxStep = 6

type AssignmentModel struct {
	AssignmentID           uuid.UUID `gorm:"column:assignment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"assignment_id"`
	AssignmentUserID       uuid.UUID `gorm:"column:assignment_user_id;type:uuid;not null;index:idx_assignment_user_course" json:"assignment_user_id"`
	AssignmentCourseName   string    `gorm:"column:assignment_course_name;size:150;not null;index:idx_assignment_user_course" json:"assignment_course_name"`
	AssignmentStep         int       `gorm:"column:assignment_step;not null" json:"assignment_step"`
	AssignmentType         string    `gorm:"column:assignment_type;size:20;not null" json:"assignment_type"`
	AssignmentOriginalName string    `gorm:"column:assignment_original_name;size:255;not null" json:"assignment_original_name"`
	AssignmentServerPath   string    `gorm:"column:assignment_server_path;type:text;not null" json:"-"`
	AssignmentMimeType     string    `gorm:"column:assignment_mime_type;size:100" json:"assignment_mime_type"`
	AssignmentSize         int64     `gorm:"column:assignment_size;not null" json:"assignment_size"`
	AssignmentCreatedAt    time.Time `gorm:"column:assignment_created_at;autoCreateTime" json:"assignment_created_at"`
}

func (AssignmentModel) TableName() string {
	return "assignments"
}
