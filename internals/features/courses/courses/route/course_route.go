package route

import (
	"github.com/gofiber/fiber/v2"

	"zamanat_backend/internals/constants"
	"zamanat_backend/internals/features/courses/courses/controller"
	"zamanat_backend/internals/features/courses/courses/repository"
	authMiddleware "zamanat_backend/internals/middlewares/auth"
)

// CourseRoutes mounts /api/courses. Reads are public, writes need an admin.
func CourseRoutes(api fiber.Router, store repository.Store, protect fiber.Handler) {
	ctl := controller.NewCourseController(store)
	admin := authMiddleware.OnlyRoles(constants.AdminOnly...)

	courses := api.Group("/courses")
	courses.Get("/", ctl.List)
	courses.Get("/slug/:slug", ctl.GetBySlug)
	courses.Get("/:id", ctl.Get)

	courses.Post("/", protect, admin, ctl.Create)
	courses.Put("/:id", protect, admin, ctl.Update)
	courses.Delete("/:id", protect, admin, ctl.Delete)
}
