// internals/features/rumahquran/model/rumah_quran_model.go
package model

import (
	"time"

	"gorm.io/gorm"
)

// RumahQuranModel adalah lokasi/fasilitas Rumah Quran.
// code berformat RQ-NNN, di-generate server, dan unik (lihat service.NextCode).
type RumahQuranModel struct {
	ID int64 `gorm:"primaryKey;autoIncrement;column:id" json:"id"`

	Code     string  `gorm:"type:varchar(20);uniqueIndex;not null;column:code" json:"code"`
	Name     string  `gorm:"type:varchar(150);not null;column:name" json:"name"`
	Address  *string `gorm:"column:address" json:"address,omitempty"`
	Location *string `gorm:"type:varchar(150);column:location" json:"location,omitempty"`
	IsActive bool    `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (RumahQuranModel) TableName() string { return "rumah_quran" }
