// internals/features/workprogram/service/duration.go
package service

import (
	"errors"
	"math"
	"time"

	"gorm.io/datatypes"

	wpModel "rumahquran_backend/internals/features/workprogram/model"
)

// DurationDays menghitung durasi inklusif dalam hari:
// ceil((end-start)/1 hari) + 1. Nil bila salah satu tanggal kosong.
// Durasi negatif tidak di-clamp; urutan tanggal dicek ValidateDateOrder
// sebelum model disimpan.
func DurationDays(start, end *datatypes.Date) *int {
	if start == nil || end == nil {
		return nil
	}
	s := time.Time(*start)
	e := time.Time(*end)
	days := int(math.Ceil(e.Sub(s).Hours()/24)) + 1
	return &days
}

// ApplyDerivedDurations menurunkan ulang kedua kolom durasi dari pasangan
// tanggalnya. Dipanggil setiap kali model akan disimpan.
func ApplyDerivedDurations(m *wpModel.WorkProgramModel) {
	m.SubmittedDuration = DurationDays(m.SubmittedStartDate, m.SubmittedEndDate)
	m.ActualDuration = DurationDays(m.ActualStartDate, m.ActualEndDate)
}

// ValidateDateOrder menolak pasangan tanggal yang terbalik.
func ValidateDateOrder(m *wpModel.WorkProgramModel) error {
	if reversed(m.SubmittedStartDate, m.SubmittedEndDate) {
		return errors.New("submitted_end_date tidak boleh sebelum submitted_start_date")
	}
	if reversed(m.ActualStartDate, m.ActualEndDate) {
		return errors.New("actual_end_date tidak boleh sebelum actual_start_date")
	}
	return nil
}

func reversed(start, end *datatypes.Date) bool {
	if start == nil || end == nil {
		return false
	}
	return time.Time(*end).Before(time.Time(*start))
}
