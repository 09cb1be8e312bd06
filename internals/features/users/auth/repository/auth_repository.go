// internals/features/users/auth/repository/repository.go
package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "zamanat_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

func FindUserByID(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByEmail(db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	user.SetDefaults()
	return db.Create(user).Error
}

func SaveUser(db *gorm.DB, user *userModel.UserModel) error {
	return db.Save(user).Error
}

func UpdateUserPassword(db *gorm.DB, userID uuid.UUID, hash string) error {
	return db.Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"password":                  hash,
			"reset_password_code":       nil,
			"reset_password_expires_at": nil,
		}).Error
}

/* ====================== OTP CLEANUP ====================== */

// ClearExpiredCodes nulls verification and reset codes that expired before now.
func ClearExpiredCodes(db *gorm.DB, now time.Time) (int64, error) {
	var total int64

	res := db.Model(&userModel.UserModel{}).
		Where("verification_code_expires_at IS NOT NULL AND verification_code_expires_at < ?", now).
		Updates(map[string]any{"verification_code": nil, "verification_code_expires_at": nil})
	if res.Error != nil {
		return 0, res.Error
	}
	total += res.RowsAffected

	res = db.Model(&userModel.UserModel{}).
		Where("reset_password_expires_at IS NOT NULL AND reset_password_expires_at < ?", now).
		Updates(map[string]any{"reset_password_code": nil, "reset_password_expires_at": nil})
	if res.Error != nil {
		return total, res.Error
	}
	return total + res.RowsAffected, nil
}
