package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"zamanat_backend/internals/features/notifications/email"
	"zamanat_backend/internals/features/users/auth/dto"
	authHelper "zamanat_backend/internals/features/users/auth/helper"
	authRepo "zamanat_backend/internals/features/users/auth/repository"
	userModel "zamanat_backend/internals/features/users/user/model"
	helper "zamanat_backend/internals/helpers"
)

var validate = validator.New()

type AuthService struct {
	DB           *gorm.DB
	Mailer       email.Mailer
	Google       GoogleVerifier
	SecureCookie bool
	Clock        func() time.Time
}

func NewAuthService(db *gorm.DB, mailer email.Mailer, google GoogleVerifier, secureCookie bool) *AuthService {
	return &AuthService{DB: db, Mailer: mailer, Google: google, SecureCookie: secureCookie}
}

func (s *AuthService) db(c *fiber.Ctx) *gorm.DB {
	return s.DB.WithContext(c.UserContext())
}

// sendCode emails an OTP. Failures are logged, not returned.
func (s *AuthService) sendCode(ctx context.Context, user userModel.UserModel, code string, purpose email.OTPPurpose) {
	if s.Mailer == nil {
		return
	}
	msg, err := email.OTPMessage(email.Address{Name: user.Name, Email: user.Email}, code, purpose)
	if err == nil {
		err = s.Mailer.Send(ctx, msg)
	}
	if err != nil {
		log.Printf("[AUTH] ❌ %s email to %s: %v", purpose, user.Email, err)
	}
}

// ========================== REGISTER ==========================
// POST /api/auth/register
func (s *AuthService) Register(c *fiber.Ctx) error {
	var input dto.RegisterRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Email = dto.NormalizeEmail(input.Email)
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.ValidationMessage(err))
	}

	hash, err := authHelper.HashPassword(input.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error")
	}
	code, err := authHelper.GenerateOTP()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error")
	}
	expires := s.now().Add(authHelper.OTPTTL)

	db := s.db(c)
	user, err := authRepo.FindUserByEmail(db, input.Email)
	switch {
	case err == nil && user.IsVerified:
		return helper.JsonError(c, fiber.StatusBadRequest, "User already exists")
	case err == nil:
		// unverified sign-up retried: take the new details and issue a fresh code
		user.Name = input.Name
		user.Password = hash
		user.VerificationCode = &code
		user.VerificationCodeExpiresAt = &expires
		if err := authRepo.SaveUser(db, user); err != nil {
			log.Printf("[AUTH] ❌ update unverified user: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &userModel.UserModel{
			Name:                      input.Name,
			Email:                     input.Email,
			Password:                  hash,
			VerificationCode:          &code,
			VerificationCodeExpiresAt: &expires,
		}
		if err := authRepo.CreateUser(db, user); err != nil {
			if helper.IsUniqueViolation(err) {
				return helper.JsonError(c, fiber.StatusBadRequest, "User already exists")
			}
			log.Printf("[AUTH] ❌ create user: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error")
		}
	default:
		log.Printf("[AUTH] ❌ find user: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error")
	}

	s.sendCode(c.UserContext(), *user, code, email.OTPVerify)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Registration successful! Please check your email for the verification code.",
	})
}

// ========================== VERIFY EMAIL ==========================
// POST /api/auth/verify-email
func (s *AuthService) VerifyEmail(c *fiber.Ctx) error {
	var input dto.CodeRequest
	_ = c.BodyParser(&input)
	input.Email = dto.NormalizeEmail(input.Email)
	input.Code = strings.TrimSpace(input.Code)
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid or expired verification code")
	}

	db := s.db(c)
	user, err := authRepo.FindUserByEmail(db, input.Email)
	if err != nil || !authHelper.CodeValid(user.VerificationCode, user.VerificationCodeExpiresAt, input.Code, s.now()) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid or expired verification code")
	}

	user.IsVerified = true
	user.VerificationCode = nil
	user.VerificationCodeExpiresAt = nil
	if err := authRepo.SaveUser(db, user); err != nil {
		log.Printf("[AUTH] ❌ verify user: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error")
	}
	return s.sendTokenResponse(c, *user, fiber.StatusOK)
}

// ========================== RESEND VERIFICATION ==========================
// POST /api/auth/resend-verification
func (s *AuthService) ResendVerification(c *fiber.Ctx) error {
	var input dto.EmailRequest
	_ = c.BodyParser(&input)
	input.Email = dto.NormalizeEmail(input.Email)
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.ValidationMessage(err))
	}

	db := s.db(c)
	user, err := authRepo.FindUserByEmail(db, input.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error")
	}
	if user.IsVerified {
		return helper.JsonError(c, fiber.StatusBadRequest, "This account is already verified")
	}

	code, err := authHelper.GenerateOTP()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error")
	}
	expires := s.now().Add(authHelper.OTPTTL)
	user.VerificationCode = &code
	user.VerificationCodeExpiresAt = &expires
	if err := authRepo.SaveUser(db, user); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error")
	}

	s.sendCode(c.UserContext(), *user, code, email.OTPResend)
	return c.JSON(fiber.Map{"success": true, "message": "Verification code resent"})
}

// ========================== LOGIN ==========================
// POST /api/auth/login
func (s *AuthService) Login(c *fiber.Ctx) error {
	var input dto.LoginRequest
	_ = c.BodyParser(&input)
	input.Email = dto.NormalizeEmail(input.Email)
	if input.Email == "" || input.Password == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Please provide an email and password")
	}

	user, err := authRepo.FindUserByEmail(s.db(c), input.Email)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if !user.IsVerified {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please verify your email first")
	}
	if err := authHelper.CheckPasswordHash(user.Password, input.Password); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	return s.sendTokenResponse(c, *user, fiber.StatusOK)
}

// ========================== LOGIN GOOGLE ==========================
// POST /api/auth/google
func (s *AuthService) LoginGoogle(c *fiber.Ctx) error {
	var input dto.GoogleRequest
	_ = c.BodyParser(&input)

	if s.Google == nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Google authentication failed")
	}
	identity, err := s.Google.Verify(input.Token)
	if err != nil {
		log.Printf("[AUTH] google verify: %v", err)
		return helper.JsonError(c, fiber.StatusUnauthorized, "Google authentication failed")
	}

	db := s.db(c)
	mail := dto.NormalizeEmail(identity.Email)
	user, err := authRepo.FindUserByEmail(db, mail)
	if err == nil {
		changed := false
		if user.GoogleID == nil || *user.GoogleID == "" {
			user.GoogleID = &identity.GoogleID
			changed = true
		}
		// Google has verified the address
		if !user.IsVerified {
			user.IsVerified = true
			changed = true
		}
		if changed {
			if err := authRepo.SaveUser(db, user); err != nil {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Google authentication failed")
			}
		}
		return s.sendTokenResponse(c, *user, fiber.StatusOK)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Google authentication failed")
	}

	raw, err := authHelper.RandomPassword()
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Google authentication failed")
	}
	hash, err := authHelper.HashPassword(raw)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Google authentication failed")
	}
	name := strings.TrimSpace(identity.Name)
	if name == "" {
		name = strings.Split(mail, "@")[0]
	}
	newUser := userModel.UserModel{
		Name:       name,
		Email:      mail,
		Password:   hash,
		GoogleID:   &identity.GoogleID,
		IsVerified: true,
	}
	if err := authRepo.CreateUser(db, &newUser); err != nil {
		log.Printf("[AUTH] ❌ create google user: %v", err)
		return helper.JsonError(c, fiber.StatusUnauthorized, "Google authentication failed")
	}
	return s.sendTokenResponse(c, newUser, fiber.StatusCreated)
}

// ========================== LOGOUT / ME ==========================

// GET /api/auth/logout
func (s *AuthService) Logout(c *fiber.Ctx) error {
	helper.ClearTokenCookie(c)
	return c.JSON(fiber.Map{"success": true, "message": "User logged out"})
}

// GET /api/auth/me
func (s *AuthService) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	user, err := authRepo.FindUserByID(s.db(c), userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": user})
}
