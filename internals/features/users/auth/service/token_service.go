package service

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"zamanat_backend/internals/configs"
	"zamanat_backend/internals/features/users/auth/dto"
	authHelper "zamanat_backend/internals/features/users/auth/helper"
	userModel "zamanat_backend/internals/features/users/user/model"
	helper "zamanat_backend/internals/helpers"
)

// sendTokenResponse signs a session token, sets the token cookie and writes
// {success, token, user}.
func (s *AuthService) sendTokenResponse(c *fiber.Ctx, user userModel.UserModel, status int) error {
	token, err := authHelper.IssueToken(user.ID, user.Role, configs.JWTSecret, s.now())
	if err != nil {
		log.Printf("[AUTH] ❌ sign token user=%s: %v", user.ID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error")
	}

	helper.SetTokenCookie(c, token, authHelper.TokenTTL, s.SecureCookie)
	return c.Status(status).JSON(dto.TokenResponse{
		Success: true,
		Token:   token,
		User:    dto.ToUserResponse(user),
	})
}

func (s *AuthService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
