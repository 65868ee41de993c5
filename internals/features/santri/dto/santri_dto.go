// internals/features/santri/dto/santri_dto.go
package dto

import (
	"time"

	"gorm.io/datatypes"

	sModel "rumahquran_backend/internals/features/santri/model"
)

/* ===================== REQUESTS ===================== */

type CreateSantriRequest struct {
	Name              string          `json:"name" validate:"required,min=2,max=150"`
	Birthdate         *datatypes.Date `json:"birthdate" validate:"omitempty"`
	Birthplace        *string         `json:"birthplace" validate:"omitempty,max=100"`
	Address           *string         `json:"address" validate:"omitempty"`
	RumahQuranID      *int64          `json:"rumah_quran_id" validate:"omitempty"`
	InstitutionOrigin *string         `json:"institution_origin" validate:"omitempty,max=150"`
	EnrollmentStatus  *string         `json:"enrollment_status" validate:"omitempty,oneof=active inactive graduated dropped"`
	EnrollmentDate    *datatypes.Date `json:"enrollment_date" validate:"omitempty"`
	GraduationStatus  *string         `json:"graduation_status" validate:"omitempty,oneof=not_graduated graduated dropped_out"`
	GraduationDate    *datatypes.Date `json:"graduation_date" validate:"omitempty"`
}

func (r *CreateSantriRequest) ToModel() *sModel.SantriModel {
	m := &sModel.SantriModel{
		Name:              r.Name,
		Birthdate:         r.Birthdate,
		Birthplace:        r.Birthplace,
		Address:           r.Address,
		RumahQuranID:      r.RumahQuranID,
		InstitutionOrigin: r.InstitutionOrigin,
		EnrollmentStatus:  "active",
		EnrollmentDate:    r.EnrollmentDate,
		GraduationStatus:  "not_graduated",
		GraduationDate:    r.GraduationDate,
	}
	if r.EnrollmentStatus != nil {
		m.EnrollmentStatus = *r.EnrollmentStatus
	}
	if r.GraduationStatus != nil {
		m.GraduationStatus = *r.GraduationStatus
	}
	return m
}

type UpdateSantriRequest struct {
	Name              *string         `json:"name" validate:"omitempty,min=2,max=150"`
	Birthdate         *datatypes.Date `json:"birthdate" validate:"omitempty"`
	Birthplace        *string         `json:"birthplace" validate:"omitempty,max=100"`
	Address           *string         `json:"address" validate:"omitempty"`
	RumahQuranID      *int64          `json:"rumah_quran_id" validate:"omitempty"`
	InstitutionOrigin *string         `json:"institution_origin" validate:"omitempty,max=150"`
	EnrollmentStatus  *string         `json:"enrollment_status" validate:"omitempty,oneof=active inactive graduated dropped"`
	EnrollmentDate    *datatypes.Date `json:"enrollment_date" validate:"omitempty"`
	GraduationStatus  *string         `json:"graduation_status" validate:"omitempty,oneof=not_graduated graduated dropped_out"`
	GraduationDate    *datatypes.Date `json:"graduation_date" validate:"omitempty"`
}

func (r *UpdateSantriRequest) ApplyToModel(m *sModel.SantriModel) {
	if r.Name != nil {
		m.Name = *r.Name
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
	if r.RumahQuranID != nil {
		m.RumahQuranID = r.RumahQuranID
	}
	if r.InstitutionOrigin != nil {
		m.InstitutionOrigin = r.InstitutionOrigin
	}
	if r.EnrollmentStatus != nil {
		m.EnrollmentStatus = *r.EnrollmentStatus
	}
	if r.EnrollmentDate != nil {
		m.EnrollmentDate = r.EnrollmentDate
	}
	if r.GraduationStatus != nil {
		m.GraduationStatus = *r.GraduationStatus
	}
	if r.GraduationDate != nil {
		m.GraduationDate = r.GraduationDate
	}
}

/* ===================== RESPONSES ===================== */

type SantriResponse struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Birthdate         *datatypes.Date `json:"birthdate,omitempty"`
	Birthplace        *string         `json:"birthplace,omitempty"`
	Address           *string         `json:"address,omitempty"`
	RumahQuranID      *int64          `json:"rumah_quran_id,omitempty"`
	InstitutionOrigin *string         `json:"institution_origin,omitempty"`
	EnrollmentStatus  string          `json:"enrollment_status"`
	EnrollmentDate    *datatypes.Date `json:"enrollment_date,omitempty"`
	GraduationStatus  string          `json:"graduation_status"`
	GraduationDate    *datatypes.Date `json:"graduation_date,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         *time.Time      `json:"updated_at,omitempty"`
}

func NewSantriResponse(m *sModel.SantriModel) SantriResponse {
	return SantriResponse{
		ID:                m.ID,
		Name:              m.Name,
		Birthdate:         m.Birthdate,
		Birthplace:        m.Birthplace,
		Address:           m.Address,
		RumahQuranID:      m.RumahQuranID,
		InstitutionOrigin: m.InstitutionOrigin,
		EnrollmentStatus:  m.EnrollmentStatus,
		EnrollmentDate:    m.EnrollmentDate,
		GraduationStatus:  m.GraduationStatus,
		GraduationDate:    m.GraduationDate,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func NewSantriResponses(rows []sModel.SantriModel) []SantriResponse {
	out := make([]SantriResponse, 0, len(rows))
	for i := range rows {
		out = append(out, NewSantriResponse(&rows[i]))
	}
	return out
}
