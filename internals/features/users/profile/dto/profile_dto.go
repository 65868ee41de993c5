// internals/features/users/profile/dto/profile_dto.go
package dto

import (
	"time"

	"gorm.io/datatypes"

	profileModel "rumahquran_backend/internals/features/users/profile/model"
)

/* ===================== REQUESTS ===================== */

// CreateStaffRequest dipakai MASTER untuk mendaftarkan pengurus baru:
// satu akun login + satu profil sekaligus.
type CreateStaffRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`

	Name         string          `json:"name" validate:"required,min=2,max=150"`
	UserRoles    *string         `json:"user_roles" validate:"omitempty,oneof=MASTER STAFF"`
	Position     *string         `json:"position" validate:"omitempty,max=100"`
	RumahQuranID *int64          `json:"rumah_quran_id" validate:"omitempty"`
	Birthdate    *datatypes.Date `json:"birthdate" validate:"omitempty"`
	Birthplace   *string         `json:"birthplace" validate:"omitempty,max=100"`
	Address      *string         `json:"address" validate:"omitempty"`
	PhoneNumber  *string         `json:"phone_number" validate:"omitempty,max=30"`
}

type UpdateProfileRequest struct {
	Name         *string         `json:"name" validate:"omitempty,min=2,max=150"`
	UserRoles    *string         `json:"user_roles" validate:"omitempty,oneof=MASTER STAFF"`
	Position     *string         `json:"position" validate:"omitempty,max=100"`
	IsActive     *bool           `json:"is_active" validate:"omitempty"`
	RumahQuranID *int64          `json:"rumah_quran_id" validate:"omitempty"`
	Birthdate    *datatypes.Date `json:"birthdate" validate:"omitempty"`
	Birthplace   *string         `json:"birthplace" validate:"omitempty,max=100"`
	Address      *string         `json:"address" validate:"omitempty"`
	PhoneNumber  *string         `json:"phone_number" validate:"omitempty,max=30"`
}

// ApplyToModel: hanya field yang dikirim yang ditimpa.
func (r *UpdateProfileRequest) ApplyToModel(m *profileModel.ProfileModel) {
	if r.Name != nil {
		m.Name = r.Name
	}
	if r.UserRoles != nil {
		m.UserRoles = r.UserRoles
	}
	if r.Position != nil {
		m.Position = r.Position
	}
	if r.IsActive != nil {
		m.IsActive = r.IsActive
	}
	if r.RumahQuranID != nil {
		m.RumahQuranID = r.RumahQuranID
	}
	if r.Birthdate != nil {
		m.Birthdate = r.Birthdate
	}
	if r.Birthplace != nil {
		m.Birthplace = r.Birthplace
	}
	if r.Address != nil {
		m.Address = r.Address
	}
	if r.PhoneNumber != nil {
		m.PhoneNumber = r.PhoneNumber
	}
}

/* ===================== RESPONSES ===================== */

type ProfileResponse struct {
	ID           int64           `json:"id"`
	AuthUserID   *string         `json:"auth_user_id,omitempty"`
	Name         *string         `json:"name,omitempty"`
	Email        *string         `json:"email,omitempty"`
	UserRoles    *string         `json:"user_roles,omitempty"`
	Position     *string         `json:"position,omitempty"`
	IsActive     *bool           `json:"is_active,omitempty"`
	LastLogin    *time.Time      `json:"last_login,omitempty"`
	RumahQuranID *int64          `json:"rumah_quran_id,omitempty"`
	Birthdate    *datatypes.Date `json:"birthdate,omitempty"`
	Birthplace   *string         `json:"birthplace,omitempty"`
	Address      *string         `json:"address,omitempty"`
	PhoneNumber  *string         `json:"phone_number,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
}

func NewProfileResponse(m *profileModel.ProfileModel) ProfileResponse {
	resp := ProfileResponse{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		UserRoles:    m.UserRoles,
		Position:     m.Position,
		IsActive:     m.IsActive,
		LastLogin:    m.LastLogin,
		RumahQuranID: m.RumahQuranID,
		Birthdate:    m.Birthdate,
		Birthplace:   m.Birthplace,
		Address:      m.Address,
		PhoneNumber:  m.PhoneNumber,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.AuthUserID != nil {
		s := m.AuthUserID.String()
		resp.AuthUserID = &s
	}
	return resp
}

func NewProfileResponses(rows []profileModel.ProfileModel) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(rows))
	for i := range rows {
		out = append(out, NewProfileResponse(&rows[i]))
	}
	return out
}
