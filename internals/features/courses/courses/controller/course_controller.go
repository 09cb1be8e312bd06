package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"zamanat_backend/internals/features/courses/courses/dto"
	"zamanat_backend/internals/features/courses/courses/repository"
	"zamanat_backend/internals/features/courses/courses/service"
	helper "zamanat_backend/internals/helpers"
)

var validate = validator.New()

type CourseController struct {
	Store   repository.Store
	Service *service.CourseService
}

func NewCourseController(store repository.Store) *CourseController {
	return &CourseController{Store: store, Service: service.NewCourseService(store)}
}

/* =========================================================
   PUBLIC
========================================================= */

// GET /api/courses?category=&tag=&page=&per_page=
func (cc *CourseController) List(c *fiber.Ctx) error {
	var q dto.ListCourseQuery
	_ = c.QueryParser(&q)

	p := helper.ResolvePaging(c, 50, 200)
	rows, total, err := cc.Store.List(c.UserContext(), repository.ListFilter{
		Category: strings.TrimSpace(q.Category),
		Tag:      q.Tag,
		Limit:    p.Limit,
		Offset:   p.Offset,
	})
	if err != nil {
		log.Printf("[COURSE] ❌ list: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch courses")
	}
	return helper.JsonList(c, "ok", dto.ToCourseResponses(rows), helper.BuildPagination(total, p))
}

// GET /api/courses/:id
func (cc *CourseController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
	}
	course, err := cc.Store.FindByID(c.UserContext(), id)
	if err != nil {
		return cc.writeErr(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToCourseResponse(course))
}

// GET /api/courses/slug/:slug
func (cc *CourseController) GetBySlug(c *fiber.Ctx) error {
	course, err := cc.Store.FindBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return cc.writeErr(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToCourseResponse(course))
}

/* =========================================================
   ADMIN
========================================================= */

// POST /api/courses
func (cc *CourseController) Create(c *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.ValidationMessage(err))
	}

	course, err := cc.Service.Create(c.UserContext(), req)
	if err != nil {
		return cc.writeErr(c, err)
	}
	return helper.JsonCreated(c, "Course created", dto.ToCourseResponse(course))
}

// PUT /api/courses/:id
func (cc *CourseController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
	}
	var req dto.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.ValidationMessage(err))
	}

	course, err := cc.Service.Update(c.UserContext(), id, req)
	if err != nil {
		return cc.writeErr(c, err)
	}
	return helper.JsonUpdated(c, "Course updated", dto.ToCourseResponse(course))
}

// DELETE /api/courses/:id
func (cc *CourseController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
	}
	if err := cc.Store.Delete(c.UserContext(), id); err != nil {
		return cc.writeErr(c, err)
	}
	log.Printf("[COURSE] 🗑️ deleted %s", id)
	return helper.JsonDeleted(c, "Course deleted", fiber.Map{})
}

func (cc *CourseController) writeErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrCourseNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
	case errors.Is(err, repository.ErrDuplicateTitle):
		return helper.JsonError(c, fiber.StatusBadRequest, "Course with this title already exists")
	case errors.Is(err, service.ErrInvalidCategory):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		log.Printf("[COURSE] ❌ %v", err)
		return helper.WritePGError(c, err)
	}
}
