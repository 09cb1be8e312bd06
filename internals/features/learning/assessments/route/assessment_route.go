package route

import (
	"github.com/gofiber/fiber/v2"

	"zamanat_backend/internals/features/learning/assessments/controller"
	"zamanat_backend/internals/features/learning/assessments/service"
)

// AssessmentRoutes mounts /api/assessment behind protect.
func AssessmentRoutes(api fiber.Router, assessor *service.Assessor, protect fiber.Handler) {
	ctl := controller.NewAssessmentController(assessor)

	g := api.Group("/assessment", protect)
	g.Post("/", ctl.Assess)
	g.Get("/:courseName", ctl.Latest)
}
