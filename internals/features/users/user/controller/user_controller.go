package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"zamanat_backend/internals/features/users/user/dto"
	"zamanat_backend/internals/features/users/user/repository"
	helper "zamanat_backend/internals/helpers"
)

var validate = validator.New()

// UserController is the admin view over registered accounts.
type UserController struct {
	Store repository.Store
}

func NewUserController(store repository.Store) *UserController {
	return &UserController{Store: store}
}

// GET /api/users?q=&role=&page=&per_page=
func (uc *UserController) List(c *fiber.Ctx) error {
	var q dto.ListUserQuery
	_ = c.QueryParser(&q)

	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := uc.Store.List(c.UserContext(), repository.ListFilter{
		Query:  q.Q,
		Role:   strings.TrimSpace(q.Role),
		Limit:  p.Limit,
		Offset: p.Offset,
	})
	if err != nil {
		log.Printf("[USERS] ❌ list: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve users")
	}
	return helper.JsonList(c, "Users fetched", dto.ToUserResponses(rows), helper.BuildPagination(total, p))
}

// GET /api/users/:id
func (uc *UserController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}
	u, err := uc.Store.FindByID(c.UserContext(), id)
	if err != nil {
		return uc.writeErr(c, err)
	}
	return helper.JsonOK(c, "User fetched", dto.ToUserResponse(*u))
}

// PATCH /api/users/:id/role
func (uc *UserController) UpdateRole(c *fiber.Ctx) error {
	id, err := targetOtherThanSelf(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Role = strings.ToLower(strings.TrimSpace(req.Role))
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.ValidationMessage(err))
	}

	u, err := uc.Store.UpdateRole(c.UserContext(), id, req.Role)
	if err != nil {
		return uc.writeErr(c, err)
	}
	log.Printf("[USERS] role user=%s -> %s", id, req.Role)
	return helper.JsonUpdated(c, "User role updated", dto.ToUserResponse(*u))
}

// DELETE /api/users/:id
func (uc *UserController) Delete(c *fiber.Ctx) error {
	id, err := targetOtherThanSelf(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := uc.Store.Delete(c.UserContext(), id); err != nil {
		return uc.writeErr(c, err)
	}
	log.Printf("[USERS] deleted user=%s", id)
	return helper.JsonDeleted(c, "User deleted", fiber.Map{"id": id})
}

// targetOtherThanSelf parses :id and refuses the caller's own account,
// so an admin cannot lock themselves out.
func targetOtherThanSelf(c *fiber.Ctx) (uuid.UUID, error) {
	callerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}
	if id == callerID {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "You cannot change your own account here")
	}
	return id, nil
}

func (uc *UserController) writeErr(c *fiber.Ctx, err error) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	log.Printf("[USERS] ❌ %v", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error")
}
