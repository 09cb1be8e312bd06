package controller

import (
	"github.com/gofiber/fiber/v2"

	"zamanat_backend/internals/features/users/auth/service"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Service: svc}
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	return ac.Service.Register(c)
}

func (ac *AuthController) VerifyEmail(c *fiber.Ctx) error {
	return ac.Service.VerifyEmail(c)
}

func (ac *AuthController) ResendVerification(c *fiber.Ctx) error {
	return ac.Service.ResendVerification(c)
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	return ac.Service.Login(c)
}

func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	return ac.Service.LoginGoogle(c)
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return ac.Service.Logout(c)
}

func (ac *AuthController) Me(c *fiber.Ctx) error {
	return ac.Service.Me(c)
}

func (ac *AuthController) ForgotPassword(c *fiber.Ctx) error {
	return ac.Service.ForgotPassword(c)
}

func (ac *AuthController) VerifyResetCode(c *fiber.Ctx) error {
	return ac.Service.VerifyResetCode(c)
}

func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	return ac.Service.ResetPassword(c)
}
