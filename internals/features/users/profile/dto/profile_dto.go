package dto

import (
	"strings"
	"time"

	"zamanat_backend/internals/features/users/profile/model"
	"zamanat_backend/internals/features/users/profile/repository"
)

/* =========================================================
   REQUEST
========================================================= */

// Every field is optional; an empty string is treated as "not sent".
type UpsertProfileRequest struct {
	Name        string `json:"name" validate:"omitempty,min=2,max=50"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,len=10,numeric"`
	DateOfBirth string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Gender      string `json:"gender" validate:"omitempty,oneof=Male Female Transgender"`
}

// Normalize trims whitespace and cuts an ISO timestamp down to its date.
func (r *UpsertProfileRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.Gender = strings.TrimSpace(r.Gender)
	r.DateOfBirth = strings.TrimSpace(r.DateOfBirth)
	if len(r.DateOfBirth) > 10 && r.DateOfBirth[10] == 'T' {
		r.DateOfBirth = r.DateOfBirth[:10]
	}
}

func (r UpsertProfileRequest) Patch() repository.ProfilePatch {
	var p repository.ProfilePatch
	if r.Name != "" {
		p.Name = &r.Name
	}
	if r.PhoneNumber != "" {
		p.PhoneNumber = &r.PhoneNumber
	}
	if r.DateOfBirth != "" {
		p.DateOfBirth = &r.DateOfBirth
	}
	if r.Gender != "" {
		p.Gender = &r.Gender
	}
	return p
}

/* =========================================================
   RESPONSE
========================================================= */

type ProfileResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user"`
	Name        string  `json:"name"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func ToProfileResponse(p *model.ProfileModel) ProfileResponse {
	resp := ProfileResponse{
		ID:          p.ProfileID.String(),
		UserID:      p.ProfileUserID.String(),
		Name:        p.ProfileName,
		PhoneNumber: p.ProfilePhoneNumber,
		Gender:      p.ProfileGender,
		CreatedAt:   p.ProfileCreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.ProfileUpdatedAt.Format(time.RFC3339),
	}
	if p.ProfileDateOfBirth != nil {
		d := p.ProfileDateOfBirth.Format(repository.DateLayout)
		resp.DateOfBirth = &d
	}
	return resp
}
