// internals/features/workprogram/dto/work_program_dto.go
package dto

import (
	"time"

	"gorm.io/datatypes"

	wpModel "rumahquran_backend/internals/features/workprogram/model"
)

/* ===================== REQUESTS ===================== */

// CreateWorkProgramRequest: status selalu mulai dari "submitted",
// durasi & approved_cost tidak pernah diterima dari klien.
type CreateWorkProgramRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=200"`
	Type        *string `json:"type" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty"`

	RumahQuranID *int64 `json:"rumah_quran_id" validate:"omitempty"`

	EstimatedAudienceNumber *int `json:"estimated_audience_number" validate:"omitempty,min=0"`

	SubmittedStartDate *datatypes.Date `json:"submitted_start_date" validate:"omitempty"`
	SubmittedEndDate   *datatypes.Date `json:"submitted_end_date" validate:"omitempty"`

	SubmittedCost *float64 `json:"submitted_cost" validate:"omitempty,min=0"`
}

func (r *CreateWorkProgramRequest) ToModel() *wpModel.WorkProgramModel {
	return &wpModel.WorkProgramModel{
		Name:                    r.Name,
		Type:                    r.Type,
		Description:             r.Description,
		RumahQuranID:            r.RumahQuranID,
		EstimatedAudienceNumber: r.EstimatedAudienceNumber,
		SubmittedStartDate:      r.SubmittedStartDate,
		SubmittedEndDate:        r.SubmittedEndDate,
		SubmittedCost:           r.SubmittedCost,
		SubmissionStatus:        "submitted",
	}
}

type UpdateWorkProgramRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=200"`
	Type        *string `json:"type" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty"`

	RumahQuranID *int64 `json:"rumah_quran_id" validate:"omitempty"`

	EstimatedAudienceNumber *int `json:"estimated_audience_number" validate:"omitempty,min=0"`
	ActualAudienceNumber    *int `json:"actual_audience_number" validate:"omitempty,min=0"`

	SubmittedStartDate *datatypes.Date `json:"submitted_start_date" validate:"omitempty"`
	SubmittedEndDate   *datatypes.Date `json:"submitted_end_date" validate:"omitempty"`
	ActualStartDate    *datatypes.Date `json:"actual_start_date" validate:"omitempty"`
	ActualEndDate      *datatypes.Date `json:"actual_end_date" validate:"omitempty"`

	SubmittedCost *float64 `json:"submitted_cost" validate:"omitempty,min=0"`

	// Field di bawah hanya dihormati untuk MASTER; controller yang memutuskan.
	ApprovedCost         *float64 `json:"approved_cost" validate:"omitempty,min=0"`
	SubmissionStatus     *string  `json:"submission_status" validate:"omitempty,oneof=submitted revised approved rejected completed"`
	IsVerifiedByDirector *bool    `json:"is_verified_by_director" validate:"omitempty"`
}

func (r *UpdateWorkProgramRequest) ApplyToModel(m *wpModel.WorkProgramModel) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Type != nil {
		m.Type = r.Type
	}
	if r.Description != nil {
		m.Description = r.Description
	}
	if r.RumahQuranID != nil {
		m.RumahQuranID = r.RumahQuranID
	}
	if r.EstimatedAudienceNumber != nil {
		m.EstimatedAudienceNumber = r.EstimatedAudienceNumber
	}
	if r.ActualAudienceNumber != nil {
		m.ActualAudienceNumber = r.ActualAudienceNumber
	}
	if r.SubmittedStartDate != nil {
		m.SubmittedStartDate = r.SubmittedStartDate
	}
	if r.SubmittedEndDate != nil {
		m.SubmittedEndDate = r.SubmittedEndDate
	}
	if r.ActualStartDate != nil {
		m.ActualStartDate = r.ActualStartDate
	}
	if r.ActualEndDate != nil {
		m.ActualEndDate = r.ActualEndDate
	}
	if r.SubmittedCost != nil {
		m.SubmittedCost = r.SubmittedCost
	}
	if r.ApprovedCost != nil {
		m.ApprovedCost = r.ApprovedCost
	}
	if r.SubmissionStatus != nil {
		m.SubmissionStatus = *r.SubmissionStatus
	}
	if r.IsVerifiedByDirector != nil {
		m.IsVerifiedByDirector = *r.IsVerifiedByDirector
	}
}

/* ===================== RESPONSES ===================== */

type WorkProgramResponse struct {
	ID           int64  `json:"id"`
	SubmittedBy  *int64 `json:"submitted_by,omitempty"`
	RumahQuranID *int64 `json:"rumah_quran_id,omitempty"`

	Name        string  `json:"name"`
	Type        *string `json:"type,omitempty"`
	Description *string `json:"description,omitempty"`

	EstimatedAudienceNumber *int `json:"estimated_audience_number,omitempty"`
	ActualAudienceNumber    *int `json:"actual_audience_number,omitempty"`

	SubmittedStartDate *datatypes.Date `json:"submitted_start_date,omitempty"`
	SubmittedEndDate   *datatypes.Date `json:"submitted_end_date,omitempty"`
	ActualStartDate    *datatypes.Date `json:"actual_start_date,omitempty"`
	ActualEndDate      *datatypes.Date `json:"actual_end_date,omitempty"`

	SubmittedDuration *int `json:"submitted_duration,omitempty"`
	ActualDuration    *int `json:"actual_duration,omitempty"`

	SubmittedCost *float64 `json:"submitted_cost,omitempty"`
	// Anggaran disetujui hanya tampil untuk MASTER
	ApprovedCost *float64 `json:"approved_cost,omitempty"`

	SubmissionStatus     string `json:"submission_status"`
	IsVerifiedByDirector bool   `json:"is_verified_by_director"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// NewWorkProgramResponse membentuk response; includeApproved=false
// (non-MASTER) menutup approved_cost.
func NewWorkProgramResponse(m *wpModel.WorkProgramModel, includeApproved bool) WorkProgramResponse {
	resp := WorkProgramResponse{
		ID:                      m.ID,
		SubmittedBy:             m.SubmittedBy,
		RumahQuranID:            m.RumahQuranID,
		Name:                    m.Name,
		Type:                    m.Type,
		Description:             m.Description,
		EstimatedAudienceNumber: m.EstimatedAudienceNumber,
		ActualAudienceNumber:    m.ActualAudienceNumber,
		SubmittedStartDate:      m.SubmittedStartDate,
		SubmittedEndDate:        m.SubmittedEndDate,
		ActualStartDate:         m.ActualStartDate,
		ActualEndDate:           m.ActualEndDate,
		SubmittedDuration:       m.SubmittedDuration,
		ActualDuration:          m.ActualDuration,
		SubmittedCost:           m.SubmittedCost,
		SubmissionStatus:        m.SubmissionStatus,
		IsVerifiedByDirector:    m.IsVerifiedByDirector,
		CreatedAt:               m.CreatedAt,
		UpdatedAt:               m.UpdatedAt,
	}
	if includeApproved {
		resp.ApprovedCost = m.ApprovedCost
	}
	return resp
}

func NewWorkProgramResponses(rows []wpModel.WorkProgramModel, includeApproved bool) []WorkProgramResponse {
	out := make([]WorkProgramResponse, 0, len(rows))
	for i := range rows {
		out = append(out, NewWorkProgramResponse(&rows[i], includeApproved))
	}
	return out
}
