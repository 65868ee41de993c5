// internals/features/santri/model/santri_model.go
package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SantriModel adalah data santri yang terdaftar di sebuah Rumah Quran.
type SantriModel struct {
	ID int64 `gorm:"primaryKey;autoIncrement;column:id" json:"id"`

	Name              string          `gorm:"type:varchar(150);not null;column:name" json:"name"`
	Birthdate         *datatypes.Date `gorm:"column:birthdate" json:"birthdate,omitempty"`
	Birthplace        *string         `gorm:"type:varchar(100);column:birthplace" json:"birthplace,omitempty"`
	Address           *string         `gorm:"column:address" json:"address,omitempty"`
	RumahQuranID      *int64          `gorm:"index;column:rumah_quran_id" json:"rumah_quran_id,omitempty"`
	InstitutionOrigin *string         `gorm:"type:varchar(150);column:institution_origin" json:"institution_origin,omitempty"`

	// enum: active | inactive | graduated | dropped
	EnrollmentStatus string          `gorm:"type:varchar(20);not null;default:'active';column:enrollment_status" json:"enrollment_status"`
	EnrollmentDate   *datatypes.Date `gorm:"column:enrollment_date" json:"enrollment_date,omitempty"`

	// enum: not_graduated | graduated | dropped_out
	GraduationStatus string          `gorm:"type:varchar(20);not null;default:'not_graduated';column:graduation_status" json:"graduation_status"`
	GraduationDate   *datatypes.Date `gorm:"column:graduation_date" json:"graduation_date,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (SantriModel) TableName() string { return "santri" }
