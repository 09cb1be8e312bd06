package route

import (
	"github.com/gofiber/fiber/v2"

	"zamanat_backend/internals/features/learning/assignments/controller"
	"zamanat_backend/internals/features/learning/assignments/service"
)

// UploadRoutes mounts /api/upload behind protect.
func UploadRoutes(api fiber.Router, svc *service.UploadService, protect fiber.Handler) {
	ctl := controller.NewUploadController(svc)

	upload := api.Group("/upload", protect)
	upload.Post("/", ctl.Upload)
	upload.Get("/:courseName", ctl.List)
	upload.Delete("/:id", ctl.Delete)
}
