package controller

import (
	"errors"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"zamanat_backend/internals/features/learning/assignments/dto"
	"zamanat_backend/internals/features/learning/assignments/repository"
	"zamanat_backend/internals/features/learning/assignments/service"
	helper "zamanat_backend/internals/helpers"
	"zamanat_backend/internals/helpers/storage"
)

type UploadController struct {
	Service *service.UploadService
}

func NewUploadController(svc *service.UploadService) *UploadController {
	return &UploadController{Service: svc}
}

// POST /api/upload (multipart: file, courseName, step, type)
func (uc *UploadController) Upload(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "No file uploaded")
	}
	if fh.Size > uc.Service.MaxBytes {
		return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, "File too large")
	}
	step, _ := strconv.Atoi(strings.TrimSpace(c.FormValue("step")))

	src, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unable to read uploaded file")
	}
	defer src.Close()
	data, err := io.ReadAll(io.LimitReader(src, uc.Service.MaxBytes+1))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unable to read uploaded file")
	}

	row, err := uc.Service.Upload(c.UserContext(), userID, service.UploadInput{
		CourseName: c.FormValue("courseName"),
		Step:       step,
		Type:       strings.TrimSpace(c.FormValue("type")),
		Filename:   fh.Filename,
		MimeType:   fh.Header.Get("Content-Type"),
		Data:       data,
	})
	if err != nil {
		return uc.writeErr(c, err, "Server Error during upload")
	}
	return helper.JsonCreated(c, "File uploaded successfully", dto.ToAssignmentResponse(row))
}

// GET /api/upload/:courseName
func (uc *UploadController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, err := uc.Service.List(c.UserContext(), userID, c.Params("courseName"))
	if err != nil {
		log.Printf("[UPLOAD] ❌ list user=%s: %v", userID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error fetching files")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(rows),
		"data":    dto.ToAssignmentResponses(rows),
	})
}

// DELETE /api/upload/:id
func (uc *UploadController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "File not found")
	}
	if err := uc.Service.Remove(c.UserContext(), userID, id); err != nil {
		return uc.writeErr(c, err, "Server Error deleting file")
	}
	return helper.JsonDeleted(c, "File deleted successfully", nil)
}

func (uc *UploadController) writeErr(c *fiber.Ctx, err error, fallback string) error {
	var tooLarge *service.FileTooLargeError
	switch {
	case errors.Is(err, service.ErrMissingCourse):
		return helper.JsonError(c, fiber.StatusBadRequest, "Course name and Step are required")
	case errors.Is(err, service.ErrInvalidStep):
		return helper.JsonError(c, fiber.StatusBadRequest, "Step must be between 1 and 6")
	case errors.Is(err, service.ErrInvalidType):
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid upload type")
	case errors.Is(err, service.ErrEmptyFile):
		return helper.JsonError(c, fiber.StatusBadRequest, "No file uploaded")
	case errors.As(err, &tooLarge):
		return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, "File too large")
	case errors.Is(err, repository.ErrAssignmentNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "File not found")
	case errors.Is(err, service.ErrNotOwner):
		return helper.JsonError(c, fiber.StatusUnauthorized, "Not authorized")
	case errors.Is(err, storage.ErrStorageNotConfigured):
		log.Printf("[UPLOAD] ❌ %v", err)
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "File storage is not configured")
	default:
		log.Printf("[UPLOAD] ❌ %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, fallback)
	}
}
