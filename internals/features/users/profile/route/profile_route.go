package route

import (
	"github.com/gofiber/fiber/v2"

	"zamanat_backend/internals/features/users/profile/controller"
	"zamanat_backend/internals/features/users/profile/repository"
)

// ProfileRoutes mounts /api/profile behind protect.
func ProfileRoutes(api fiber.Router, store repository.Store, protect fiber.Handler) {
	ctl := controller.NewProfileController(store)

	profile := api.Group("/profile", protect)
	profile.Get("/", ctl.GetProfile)
	profile.Post("/", ctl.UpsertProfile)
}
