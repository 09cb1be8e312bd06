// file: internals/features/users/auth/route/auth_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"

	controller "zamanat_backend/internals/features/users/auth/controller"
	"zamanat_backend/internals/features/users/auth/service"
	rateLimiter "zamanat_backend/internals/middlewares"
)

// AuthRoutes mounts /api/auth. protect is the JWT middleware.
func AuthRoutes(api fiber.Router, svc *service.AuthService, protect fiber.Handler) {
	authController := controller.NewAuthController(svc)

	auth := api.Group("/auth")

	// 🔓 Public
	auth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	auth.Post("/verify-email", authController.VerifyEmail)
	auth.Post("/resend-verification", rateLimiter.OTPRateLimiter(), authController.ResendVerification)
	auth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	auth.Post("/google", rateLimiter.LoginRateLimiter(), authController.LoginGoogle)
	auth.Post("/forgot-password", rateLimiter.OTPRateLimiter(), authController.ForgotPassword)
	auth.Post("/verify-reset-code", authController.VerifyResetCode)
	auth.Post("/reset-password", authController.ResetPassword)

	// 🔐 Protected
	auth.Get("/logout", protect, authController.Logout)
	auth.Get("/me", protect, authController.Me)
}
