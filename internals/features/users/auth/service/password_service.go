package service

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"zamanat_backend/internals/features/notifications/email"
	"zamanat_backend/internals/features/users/auth/dto"
	authHelper "zamanat_backend/internals/features/users/auth/helper"
	authRepo "zamanat_backend/internals/features/users/auth/repository"
	helper "zamanat_backend/internals/helpers"
)

// ========================== FORGOT PASSWORD ==========================
// POST /api/auth/forgot-password
func (s *AuthService) ForgotPassword(c *fiber.Ctx) error {
	var input dto.EmailRequest
	_ = c.BodyParser(&input)
	input.Email = dto.NormalizeEmail(input.Email)
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.ValidationMessage(err))
	}

	db := s.db(c)
	user, err := authRepo.FindUserByEmail(db, input.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found with this email")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error")
	}

	code, err := authHelper.GenerateOTP()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error")
	}
	expires := s.now().Add(authHelper.OTPTTL)
	user.ResetPasswordCode = &code
	user.ResetPasswordExpiresAt = &expires
	if err := authRepo.SaveUser(db, user); err != nil {
		log.Printf("[AUTH] ❌ store reset code: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error")
	}

	s.sendCode(c.UserContext(), *user, code, email.OTPReset)
	return c.JSON(fiber.Map{"success": true, "message": "Reset code sent to email"})
}

// ========================== VERIFY RESET CODE ==========================
// POST /api/auth/verify-reset-code
func (s *AuthService) VerifyResetCode(c *fiber.Ctx) error {
	var input dto.CodeRequest
	_ = c.BodyParser(&input)
	input.Email = dto.NormalizeEmail(input.Email)
	input.Code = strings.TrimSpace(input.Code)
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid or expired reset code")
	}

	user, err := authRepo.FindUserByEmail(s.db(c), input.Email)
	if err != nil || !authHelper.CodeValid(user.ResetPasswordCode, user.ResetPasswordExpiresAt, input.Code, s.now()) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid or expired reset code")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Code verified successfully"})
}

// ========================== RESET PASSWORD ==========================
// POST /api/auth/reset-password
func (s *AuthService) ResetPassword(c *fiber.Ctx) error {
	var input dto.ResetPasswordRequest
	_ = c.BodyParser(&input)
	input.Email = dto.NormalizeEmail(input.Email)
	input.Code = strings.TrimSpace(input.Code)
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.ValidationMessage(err))
	}

	db := s.db(c)
	user, err := authRepo.FindUserByEmail(db, input.Email)
	if err != nil || !authHelper.CodeValid(user.ResetPasswordCode, user.ResetPasswordExpiresAt, input.Code, s.now()) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid or expired reset token")
	}

	hash, err := authHelper.HashPassword(input.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error")
	}
	if err := authRepo.UpdateUserPassword(db, user.ID, hash); err != nil {
		log.Printf("[AUTH] ❌ reset password: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Password reset successful. You can now login."})
}
