package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"zamanat_backend/internals/features/users/profile/model"
	userModel "zamanat_backend/internals/features/users/user/model"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfilePatch holds the fields a client sent; nil means "leave as is".
type ProfilePatch struct {
	Name        *string
	PhoneNumber *string
	DateOfBirth *string // YYYY-MM-DD, already validated
	Gender      *string
}

type Store interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.ProfileModel, error)
	// Upsert applies patch to the user's profile (creating it when missing)
	// and copies a new name onto the user row.
	Upsert(ctx context.Context, userID uuid.UUID, patch ProfilePatch) (*model.ProfileModel, error)
}

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.ProfileModel, error) {
	var p model.ProfileModel
	err := s.DB.WithContext(ctx).Where("profile_user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) Upsert(ctx context.Context, userID uuid.UUID, patch ProfilePatch) (*model.ProfileModel, error) {
	var out model.ProfileModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.ProfileModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("profile_user_id = ?", userID).
			First(&current).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			current = model.ProfileModel{ProfileUserID: userID}
			if patch.Name == nil {
				// a new profile borrows the account name
				var u userModel.UserModel
				if err := tx.Select("name").Where("id = ?", userID).First(&u).Error; err != nil {
					return err
				}
				current.ProfileName = u.Name
			}
			if err := ApplyPatch(&current, patch); err != nil {
				return err
			}
			if err := tx.Create(&current).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := ApplyPatch(&current, patch); err != nil {
				return err
			}
			if err := tx.Save(&current).Error; err != nil {
				return err
			}
		}

		if patch.Name != nil {
			if err := tx.Model(&userModel.UserModel{}).
				Where("id = ?", userID).
				Update("name", *patch.Name).Error; err != nil {
				return err
			}
		}
		out = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
