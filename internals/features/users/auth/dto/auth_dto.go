// internals/features/users/auth/dto/auth_dto.go
package dto

import (
	"github.com/google/uuid"

	profileModel "rumahquran_backend/internals/features/users/profile/model"
)

/* ===================== REQUESTS ===================== */

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

/* ===================== RESPONSES ===================== */

type UserLite struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type LoginResponse struct {
	AccessToken  string                     `json:"access_token"`
	RefreshToken string                     `json:"refresh_token"`
	User         UserLite                   `json:"user"`
	Profile      *profileModel.ProfileModel `json:"profile,omitempty"`
}

type MeResponse struct {
	User    UserLite                   `json:"user"`
	Profile *profileModel.ProfileModel `json:"profile,omitempty"`
}
