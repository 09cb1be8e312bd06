package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	GenderMale        = "Male"
	GenderFemale      = "Female"
	GenderTransgender = "Transgender"
)

type ProfileModel struct {
	ProfileID          uuid.UUID  `gorm:"column:profile_id;type:uuid;default:gen_random_uuid();primaryKey" json:"profile_id"`
	ProfileUserID      uuid.UUID  `gorm:"column:profile_user_id;type:uuid;uniqueIndex;not null" json:"profile_user_id"`
	ProfileName        string     `gorm:"column:profile_name;size:50;not null" json:"profile_name"`
	ProfilePhoneNumber *string    `gorm:"column:profile_phone_number;size:20" json:"profile_phone_number,omitempty"`
	ProfileDateOfBirth *time.Time `gorm:"column:profile_date_of_birth;type:date" json:"profile_date_of_birth,omitempty"`
	ProfileGender      *string    `gorm:"column:profile_gender;size:20" json:"profile_gender,omitempty"`
	ProfileCreatedAt   time.Time  `gorm:"column:profile_created_at;autoCreateTime" json:"profile_created_at"`
	ProfileUpdatedAt   time.Time  `gorm:"column:profile_updated_at;autoUpdateTime" json:"profile_updated_at"`
}

func (ProfileModel) TableName() string {
	return "profiles"
}
