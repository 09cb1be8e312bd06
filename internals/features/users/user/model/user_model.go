package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel maps the users table. Secrets never leave the API (json:"-").
type UserModel struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string    `gorm:"size:50;not null" json:"name"`
	Email      string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"not null" json:"-"`
	GoogleID   *string   `gorm:"size:255;uniqueIndex" json:"google_id,omitempty"`
	Role       string    `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	IsVerified bool      `gorm:"not null;default:false" json:"is_verified"`

	VerificationCode          *string    `gorm:"size:6" json:"-"`
	VerificationCodeExpiresAt *time.Time `json:"-"`
	ResetPasswordCode         *string    `gorm:"size:6" json:"-"`
	ResetPasswordExpiresAt    *time.Time `json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) SetDefaults() {
	if u.Role == "" {
		u.Role = "user"
	}
}
