package route

import (
	"github.com/gofiber/fiber/v2"

	"zamanat_backend/internals/constants"
	"zamanat_backend/internals/features/users/user/controller"
	"zamanat_backend/internals/features/users/user/repository"
	authMiddleware "zamanat_backend/internals/middlewares/auth"
)

// UserAdminRoutes mounts /api/users for admins only.
func UserAdminRoutes(api fiber.Router, store repository.Store, protect fiber.Handler) {
	ctl := controller.NewUserController(store)

	users := api.Group("/users", protect, authMiddleware.OnlyRoles(constants.AdminOnly...))
	users.Get("/", ctl.List)
	users.Get("/:id", ctl.Get)
	users.Patch("/:id/role", ctl.UpdateRole)
	users.Delete("/:id", ctl.Delete)
}
