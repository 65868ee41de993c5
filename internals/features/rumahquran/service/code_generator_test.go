package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestNextCodeFrom(t *testing.T) {
	tests := []struct {
		name  string
		codes []string
		want  string
	}{
		{"kosong", nil, "RQ-001"},
		{"urut", []string{"RQ-001", "RQ-002"}, "RQ-003"},
		{"bolong", []string{"RQ-001", "RQ-007"}, "RQ-008"},
		{"tiga digit lebih", []string{"RQ-999"}, "RQ-1000"},
		{"abaikan format asing", []string{"RQ-001", "XX-900", "RQ-abc"}, "RQ-002"},
		{"spasi di data lama", []string{" RQ-004 "}, "RQ-005"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextCodeFrom(tt.codes))
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: rumah_quran.code")))
}
