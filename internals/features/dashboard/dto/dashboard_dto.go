// internals/features/dashboard/dto/dashboard_dto.go
package dto

import (
	wpDTO "rumahquran_backend/internals/features/workprogram/dto"
)

// MasterDashboardResponse: ringkasan seluruh yayasan untuk MASTER.
type MasterDashboardResponse struct {
	TotalRumahQuran     int64 `json:"total_rumah_quran"`
	ActiveRumahQuran    int64 `json:"active_rumah_quran"`
	TotalPrograms       int64 `json:"total_programs"`
	PendingSubmissions  int64 `json:"pending_submissions"`
	ApprovedPrograms    int64 `json:"approved_programs"`
	TotalUsers          int64 `json:"total_users"`
	TotalSantri         int64 `json:"total_santri"`

	Staff          []StaffSummary               `json:"staff"`
	RecentPrograms []wpDTO.WorkProgramResponse  `json:"recent_programs"`
}

// StaffDashboardResponse: ringkasan satu lokasi untuk pengurus.
type StaffDashboardResponse struct {
	RumahQuran         *FacilitySummary            `json:"rumah_quran,omitempty"`
	TotalPrograms      int64                       `json:"total_programs"`
	PendingSubmissions int64                       `json:"pending_submissions"`
	ApprovedPrograms   int64                       `json:"approved_programs"`
	TotalSantri        int64                       `json:"total_santri"`
	RecentPrograms     []wpDTO.WorkProgramResponse `json:"recent_programs"`
}

type StaffSummary struct {
	ID           int64   `json:"id"`
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Position     *string `json:"position,omitempty"`
	RumahQuranID *int64  `json:"rumah_quran_id,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

type FacilitySummary struct {
	ID       int64   `json:"id"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Address  *string `json:"address,omitempty"`
	Location *string `json:"location,omitempty"`
	IsActive bool    `json:"is_active"`
}
