package repository

import (
	"fmt"
	"strings"
	"time"

	"zamanat_backend/internals/features/users/profile/model"
)

const DateLayout = "2006-01-02"

// ApplyPatch copies the non-nil fields of patch onto p. A new profile without a gender gets Male.
func ApplyPatch(p *model.ProfileModel, patch ProfilePatch) error {
	if patch.Name != nil {
		p.ProfileName = strings.TrimSpace(*patch.Name)
	}
	if patch.PhoneNumber != nil {
		phone := strings.TrimSpace(*patch.PhoneNumber)
		p.ProfilePhoneNumber = &phone
	}
	if patch.DateOfBirth != nil {
		dob, err := time.Parse(DateLayout, strings.TrimSpace(*patch.DateOfBirth))
		if err != nil {
			return fmt.Errorf("dateOfBirth: %w", err)
		}
		p.ProfileDateOfBirth = &dob
	}
	if patch.Gender != nil {
		g := *patch.Gender
		p.ProfileGender = &g
	}
	if p.ProfileGender == nil {
		g := model.GenderMale
		p.ProfileGender = &g
	}
	return nil
}
