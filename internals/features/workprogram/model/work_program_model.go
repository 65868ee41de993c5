// internals/features/workprogram/model/work_program_model.go
package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WorkProgramModel adalah pengajuan program kerja sebuah Rumah Quran.
// Durasi (submitted_duration/actual_duration) selalu diturunkan dari
// pasangan tanggalnya, tidak pernah dipercaya dari klien.
type WorkProgramModel struct {
	ID int64 `gorm:"primaryKey;autoIncrement;column:id" json:"id"`

	SubmittedBy  *int64 `gorm:"index;column:submitted_by" json:"submitted_by,omitempty"`
	RumahQuranID *int64 `gorm:"index;column:rumah_quran_id" json:"rumah_quran_id,omitempty"`

	Name        string  `gorm:"type:varchar(200);not null;column:name" json:"name"`
	Type        *string `gorm:"type:varchar(100);column:type" json:"type,omitempty"`
	Description *string `gorm:"column:description" json:"description,omitempty"`

	EstimatedAudienceNumber *int `gorm:"column:estimated_audience_number" json:"estimated_audience_number,omitempty"`
	ActualAudienceNumber    *int `gorm:"column:actual_audience_number" json:"actual_audience_number,omitempty"`

	SubmittedStartDate *datatypes.Date `gorm:"column:submitted_start_date" json:"submitted_start_date,omitempty"`
	SubmittedEndDate   *datatypes.Date `gorm:"column:submitted_end_date" json:"submitted_end_date,omitempty"`
	ActualStartDate    *datatypes.Date `gorm:"column:actual_start_date" json:"actual_start_date,omitempty"`
	ActualEndDate      *datatypes.Date `gorm:"column:actual_end_date" json:"actual_end_date,omitempty"`

	SubmittedDuration *int `gorm:"column:submitted_duration" json:"submitted_duration,omitempty"`
	ActualDuration    *int `gorm:"column:actual_duration" json:"actual_duration,omitempty"`

	SubmittedCost *float64 `gorm:"type:numeric(14,2);column:submitted_cost" json:"submitted_cost,omitempty"`
	ApprovedCost  *float64 `gorm:"type:numeric(14,2);column:approved_cost" json:"approved_cost,omitempty"`

	// enum: submitted | revised | approved | rejected | completed
	SubmissionStatus     string `gorm:"type:varchar(20);not null;default:'submitted';column:submission_status" json:"submission_status"`
	IsVerifiedByDirector bool   `gorm:"not null;default:false;column:is_verified_by_director" json:"is_verified_by_director"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (WorkProgramModel) TableName() string { return "work_program_submission" }
