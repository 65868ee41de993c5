// internals/features/users/profile/model/profile_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProfileModel adalah data kepegawaian/personal seorang pengurus.
// user_roles menentukan gating: "MASTER" lintas lokasi, selain itu
// terikat ke rumah_quran_id masing-masing.
type ProfileModel struct {
	ID int64 `gorm:"primaryKey;autoIncrement;column:id" json:"id"`

	AuthUserID   *uuid.UUID      `gorm:"type:uuid;index;column:auth_user_id" json:"auth_user_id,omitempty"`
	Name         *string         `gorm:"type:varchar(150);column:name" json:"name,omitempty"`
	Email        *string         `gorm:"type:varchar(255);column:email" json:"email,omitempty"`
	UserRoles    *string         `gorm:"type:varchar(30);column:user_roles" json:"user_roles,omitempty"`
	Position     *string         `gorm:"type:varchar(100);column:position" json:"position,omitempty"`
	IsActive     *bool           `gorm:"default:true;column:is_active" json:"is_active,omitempty"`
	LastLogin    *time.Time      `gorm:"column:last_login" json:"last_login,omitempty"`
	RumahQuranID *int64          `gorm:"index;column:rumah_quran_id" json:"rumah_quran_id,omitempty"`
	Birthdate    *datatypes.Date `gorm:"column:birthdate" json:"birthdate,omitempty"`
	Birthplace   *string         `gorm:"type:varchar(100);column:birthplace" json:"birthplace,omitempty"`
	Address      *string         `gorm:"column:address" json:"address,omitempty"`
	PhoneNumber  *string         `gorm:"type:varchar(30);column:phone_number" json:"phone_number,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (ProfileModel) TableName() string { return "profiles" }
