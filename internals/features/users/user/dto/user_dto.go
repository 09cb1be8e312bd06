package dto

import (
	"time"

	"github.com/google/uuid"

	"zamanat_backend/internals/features/users/user/model"
)

type ListUserQuery struct {
	Q    string `query:"q"`
	Role string `query:"role"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// UserResponse never carries password or one-time codes.
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"isVerified"`
	GoogleLink bool      `json:"googleLinked"`
	CreatedAt  time.Time `json:"createdAt"`
}

func ToUserResponse(u model.UserModel) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		GoogleLink: u.GoogleID != nil && *u.GoogleID != "",
		CreatedAt:  u.CreatedAt,
	}
}

func ToUserResponses(rows []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(rows))
	for _, u := range rows {
		out = append(out, ToUserResponse(u))
	}
	return out
}
