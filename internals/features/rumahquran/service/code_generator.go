// internals/features/rumahquran/service/code_generator.go
package service

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	rqModel "rumahquran_backend/internals/features/rumahquran/model"
)

var codePattern = regexp.MustCompile(`^RQ-(\d+)$`)

const maxCodeAttempts = 3

// NextCodeFrom memindai suffix numerik tertinggi dari kumpulan code RQ-NNN
// dan mengembalikan code berikutnya. Tanpa code sama sekali → RQ-001.
func NextCodeFrom(codes []string) string {
	highest := 0
	for _, code := range codes {
		m := codePattern.FindStringSubmatch(strings.TrimSpace(code))
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("RQ-%03d", highest+1)
}

// NextCode membaca semua code yang pernah ada (termasuk yang soft-deleted,
// karena unique index tetap berlaku) lalu menaikkan 1.
func NextCode(db *gorm.DB) (string, error) {
	var codes []string
	if err := db.Unscoped().
		Model(&rqModel.RumahQuranModel{}).
		Where("code LIKE ?", "RQ-%").
		Pluck("code", &codes).Error; err != nil {
		return "", err
	}
	return NextCodeFrom(codes), nil
}

// CreateWithGeneratedCode mengisi code server-side lalu insert. Dua create
// bersamaan bisa menghitung kandidat yang sama; unique index yang memutus,
// dan pihak yang kalah retry dengan scan ulang.
func CreateWithGeneratedCode(db *gorm.DB, m *rqModel.RumahQuranModel) error {
	var lastErr error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := NextCode(db)
		if err != nil {
			return err
		}
		m.Code = code

		err = db.Create(m).Error
		if err == nil {
			return nil
		}
		if !IsUniqueViolation(err) {
			return err
		}
		lastErr = err
	}
	return lastErr
}

// IsUniqueViolation mengenali pelanggaran unique constraint dari Postgres
// (SQLSTATE 23505) maupun hasil translate GORM.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// driver test (sqlite) tidak mengekspos SQLSTATE
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
