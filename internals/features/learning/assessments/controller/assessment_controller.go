package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"zamanat_backend/internals/features/learning/assessments/dto"
	"zamanat_backend/internals/features/learning/assessments/repository"
	"zamanat_backend/internals/features/learning/assessments/service"
	helper "zamanat_backend/internals/helpers"
)

var validate = validator.New()

type AssessmentController struct {
	Assessor *service.Assessor
}

func NewAssessmentController(a *service.Assessor) *AssessmentController {
	return &AssessmentController{Assessor: a}
}

// POST /api/assessment {courseName}
func (ac *AssessmentController) Assess(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.AssessRequest
	_ = c.BodyParser(&req)
	req.CourseName = strings.TrimSpace(req.CourseName)
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Course name is required")
	}

	row, err := ac.Assessor.Assess(c.UserContext(), userID, req.CourseName)
	var parseErr *service.ParseError
	var upstream *service.GeminiError
	switch {
	case err == nil:
		return helper.JsonOK(c, "Assessment complete", dto.ToAssessmentResponse(row))
	case errors.Is(err, service.ErrNoAssignments):
		return helper.JsonError(c, fiber.StatusNotFound, "No submitted assignments found for this course. Please upload files first.")
	case errors.As(err, &parseErr):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "AI Assessment failed to generate valid results.",
			"raw":     parseErr.Raw,
		})
	case errors.Is(err, service.ErrGeneratorNotConfigured):
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "AI assessment is not configured")
	case errors.As(err, &upstream):
		log.Printf("[ASSESS] ❌ upstream: %v", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "AI service error")
	default:
		log.Printf("[ASSESS] ❌ user=%s: %v", userID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error during assessment")
	}
}

// GET /api/assessment/:courseName
func (ac *AssessmentController) Latest(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row, err := ac.Assessor.Latest(c.UserContext(), userID, c.Params("courseName"))
	if errors.Is(err, repository.ErrAssessmentNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "No assessment found")
	}
	if err != nil {
		log.Printf("[ASSESS] ❌ latest user=%s: %v", userID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server error")
	}
	return helper.JsonOK(c, "ok", dto.ToAssessmentResponse(row))
}
