package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"zamanat_backend/internals/features/users/profile/dto"
	"zamanat_backend/internals/features/users/profile/repository"
	helper "zamanat_backend/internals/helpers"
)

var validate = validator.New()

type ProfileController struct {
	Store repository.Store
}

func NewProfileController(store repository.Store) *ProfileController {
	return &ProfileController{Store: store}
}

// GET /api/profile
func (pc *ProfileController) GetProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	profile, err := pc.Store.FindByUserID(c.UserContext(), userID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Profile not found")
	}
	if err != nil {
		log.Printf("[PROFILE] ❌ load user=%s: %v", userID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error")
	}
	return helper.JsonOK(c, "Profile fetched", dto.ToProfileResponse(profile))
}

// POST /api/profile creates the profile or updates the fields sent.
func (pc *ProfileController) UpsertProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpsertProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.ValidationMessage(err))
	}

	profile, err := pc.Store.Upsert(c.UserContext(), userID, req.Patch())
	if err != nil {
		log.Printf("[PROFILE] ❌ upsert user=%s: %v", userID, err)
		return helper.WritePGError(c, err)
	}
	log.Printf("[PROFILE] ✅ saved user=%s", userID)
	return helper.JsonOK(c, "Profile saved", dto.ToProfileResponse(profile))
}
