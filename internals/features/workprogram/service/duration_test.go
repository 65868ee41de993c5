package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	wpModel "rumahquran_backend/internals/features/workprogram/model"
)

func d(y int, m time.Month, day int) *datatypes.Date {
	v := datatypes.Date(time.Date(y, m, day, 0, 0, 0, 0, time.UTC))
	return &v
}

func TestDurationDays(t *testing.T) {
	t.Run("satu hari", func(t *testing.T) {
		got := DurationDays(d(2025, 1, 10), d(2025, 1, 10))
		require.NotNil(t, got)
		assert.Equal(t, 1, *got)
	})

	t.Run("rentang inklusif", func(t *testing.T) {
		got := DurationDays(d(2025, 1, 10), d(2025, 1, 14))
		require.NotNil(t, got)
		assert.Equal(t, 5, *got)
	})

	t.Run("lintas bulan", func(t *testing.T) {
		got := DurationDays(d(2025, 1, 30), d(2025, 2, 2))
		require.NotNil(t, got)
		assert.Equal(t, 4, *got)
	})

	t.Run("tanggal kurang satu → nil", func(t *testing.T) {
		assert.Nil(t, DurationDays(nil, d(2025, 1, 10)))
		assert.Nil(t, DurationDays(d(2025, 1, 10), nil))
		assert.Nil(t, DurationDays(nil, nil))
	})
}

func TestValidateDateOrder(t *testing.T) {
	t.Run("urutan benar atau tanggal kurang → lolos", func(t *testing.T) {
		assert.NoError(t, ValidateDateOrder(&wpModel.WorkProgramModel{
			SubmittedStartDate: d(2025, 3, 1),
			SubmittedEndDate:   d(2025, 3, 5),
		}))
		assert.NoError(t, ValidateDateOrder(&wpModel.WorkProgramModel{
			ActualStartDate: d(2025, 3, 1),
		}))
		assert.NoError(t, ValidateDateOrder(&wpModel.WorkProgramModel{}))
	})

	t.Run("end sebelum start → ditolak", func(t *testing.T) {
		assert.Error(t, ValidateDateOrder(&wpModel.WorkProgramModel{
			SubmittedStartDate: d(2025, 3, 5),
			SubmittedEndDate:   d(2025, 3, 1),
		}))
		assert.Error(t, ValidateDateOrder(&wpModel.WorkProgramModel{
			ActualStartDate: d(2025, 3, 5),
			ActualEndDate:   d(2025, 3, 1),
		}))
	})
}

func TestApplyDerivedDurations(t *testing.T) {
	stale := 99
	m := &wpModel.WorkProgramModel{
		SubmittedStartDate: d(2025, 3, 1),
		SubmittedEndDate:   d(2025, 3, 3),
		SubmittedDuration:  &stale, // nilai kiriman klien harus ditimpa
		ActualDuration:     &stale,
	}
	ApplyDerivedDurations(m)

	require.NotNil(t, m.SubmittedDuration)
	assert.Equal(t, 3, *m.SubmittedDuration)
	assert.Nil(t, m.ActualDuration) // pasangan tanggal actual kosong
}
