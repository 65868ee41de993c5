// internals/features/rumahquran/dto/rumah_quran_dto.go
package dto

import (
	"time"

	rqModel "rumahquran_backend/internals/features/rumahquran/model"
)

/* ===================== REQUESTS ===================== */

// CreateRumahQuranRequest sengaja tidak punya field code:
// code di-generate server (RQ-NNN) dan tidak bisa dipilih klien.
type CreateRumahQuranRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=150"`
	Address  *string `json:"address" validate:"omitempty"`
	Location *string `json:"location" validate:"omitempty,max=150"`
	IsActive *bool   `json:"is_active" validate:"omitempty"`
}

func (r *CreateRumahQuranRequest) ToModel() *rqModel.RumahQuranModel {
	m := &rqModel.RumahQuranModel{
		Name:     r.Name,
		Address:  r.Address,
		Location: r.Location,
		IsActive: true,
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
	return m
}

// UpdateRumahQuranRequest: code immutable, tidak ada di sini.
type UpdateRumahQuranRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=150"`
	Address  *string `json:"address" validate:"omitempty"`
	Location *string `json:"location" validate:"omitempty,max=150"`
	IsActive *bool   `json:"is_active" validate:"omitempty"`
}

func (r *UpdateRumahQuranRequest) ApplyToModel(m *rqModel.RumahQuranModel) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Address != nil {
		m.Address = r.Address
	}
	if r.Location != nil {
		m.Location = r.Location
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
}

/* ===================== RESPONSES ===================== */

type RumahQuranResponse struct {
	ID        int64      `json:"id"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	Address   *string    `json:"address,omitempty"`
	Location  *string    `json:"location,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func NewRumahQuranResponse(m *rqModel.RumahQuranModel) RumahQuranResponse {
	return RumahQuranResponse{
		ID:        m.ID,
		Code:      m.Code,
		Name:      m.Name,
		Address:   m.Address,
		Location:  m.Location,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func NewRumahQuranResponses(rows []rqModel.RumahQuranModel) []RumahQuranResponse {
	out := make([]RumahQuranResponse, 0, len(rows))
	for i := range rows {
		out = append(out, NewRumahQuranResponse(&rows[i]))
	}
	return out
}
