package auth

import (
	"github.com/gofiber/fiber/v2"

	"zamanat_backend/internals/constants"
	helper "zamanat_backend/internals/helpers"
)

// OnlyRoles must run after AuthMiddleware.
func OnlyRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("userRole").(string)
		if !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, notAuthorized)
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleError(role))
	}
}
