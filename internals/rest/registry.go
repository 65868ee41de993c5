// internals/rest/registry.go
package rest

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"rumahquran_backend/internals/constants"
	rqModel "rumahquran_backend/internals/features/rumahquran/model"
	rqService "rumahquran_backend/internals/features/rumahquran/service"
	sModel "rumahquran_backend/internals/features/santri/model"
	pModel "rumahquran_backend/internals/features/users/profile/model"
	wpModel "rumahquran_backend/internals/features/workprogram/model"
	wpService "rumahquran_backend/internals/features/workprogram/service"
	authmw "rumahquran_backend/internals/middlewares/auth"
)

// Table mendeskripsikan satu tabel yang diekspos lewat /rest/v1.
// Kolom di luar Columns ditolak saat filter/select; di luar Writable
// dibuang diam-diam saat tulis (meniru perilaku kolom ter-protect).
type Table struct {
	Name     string
	Columns  map[string]bool
	Writable map[string]bool

	// New/NewSlice mengembalikan pointer model GORM untuk tabel ini,
	// supaya insert dapat ID balik dan select ikut tipe kolom yang benar.
	New      func() interface{}
	NewSlice func() interface{}

	// MasterWrite: insert/patch hanya untuk MASTER.
	MasterWrite bool

	// MaskStaff: kolom yang ditutup dari respons non-MASTER.
	MaskStaff []string

	// Scope membatasi baris yang terlihat/tersentuh untuk non-MASTER.
	Scope func(c *fiber.Ctx, dbq *gorm.DB) *gorm.DB

	// OnInsert/OnPatch merapikan payload sebelum ditulis.
	OnInsert func(c *fiber.Ctx, tx *gorm.DB, row map[string]interface{}) error
	OnPatch  func(c *fiber.Ctx, patch map[string]interface{}) error

	// RederiveDurations: hitung ulang kolom durasi setelah patch tanggal.
	RederiveDurations bool
}

// errMasterOnly dikembalikan hook tulis untuk operasi yang tertutup bagi
// staf; controller menerjemahkannya ke 403.
var errMasterOnly = errors.New("operasi ini hanya untuk MASTER")

func cols(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func scopeByRumahQuran(c *fiber.Ctx, dbq *gorm.DB) *gorm.DB {
	if authmw.IsMaster(c) {
		return dbq
	}
	if rqID, ok := authmw.GetRumahQuranID(c); ok {
		return dbq.Where("rumah_quran_id = ?", rqID)
	}
	return dbq.Where("1 = 0")
}

// Registry tabel yang dilayani. Tabel di luar daftar ini → 404.
func Tables() map[string]*Table {
	return map[string]*Table{
		"rumah_quran": {
			Name:     "rumah_quran",
			New:      func() interface{} { return &rqModel.RumahQuranModel{} },
			NewSlice: func() interface{} { return &[]rqModel.RumahQuranModel{} },
			Columns: cols("id", "code", "name", "address", "location", "is_active",
				"created_at", "updated_at", "deleted_at"),
			Writable:    cols("name", "address", "location", "is_active", "deleted_at"),
			MasterWrite: true,
			Scope: func(c *fiber.Ctx, dbq *gorm.DB) *gorm.DB {
				return dbq // daftar lokasi boleh dibaca semua pengurus
			},
			OnInsert: func(c *fiber.Ctx, tx *gorm.DB, row map[string]interface{}) error {
				// code selalu generate server, kiriman klien diabaikan
				code, err := rqService.NextCode(tx)
				if err != nil {
					return err
				}
				row["code"] = code
				if _, ok := row["is_active"]; !ok {
					row["is_active"] = true
				}
				return nil
			},
		},
		"profiles": {
			Name:     "profiles",
			New:      func() interface{} { return &pModel.ProfileModel{} },
			NewSlice: func() interface{} { return &[]pModel.ProfileModel{} },
			Columns: cols("id", "auth_user_id", "name", "email", "user_roles", "position",
				"is_active", "last_login", "rumah_quran_id", "birthdate", "birthplace",
				"address", "phone_number", "created_at", "updated_at", "deleted_at"),
			Writable: cols("name", "email", "user_roles", "position", "is_active",
				"last_login", "rumah_quran_id", "birthdate", "birthplace", "address",
				"phone_number", "deleted_at"),
			MasterWrite: false,
			Scope: func(c *fiber.Ctx, dbq *gorm.DB) *gorm.DB {
				if authmw.IsMaster(c) {
					return dbq
				}
				if uid, err := authmw.GetUserID(c); err == nil {
					return dbq.Where("auth_user_id = ?", uid)
				}
				return dbq.Where("1 = 0")
			},
			OnInsert: func(c *fiber.Ctx, tx *gorm.DB, row map[string]interface{}) error {
				// akun/profil baru hanya dibuat MASTER; staf cukup
				// mengelola barisnya sendiri lewat PATCH
				if !authmw.IsMaster(c) {
					return errMasterOnly
				}
				return nil
			},
			OnPatch: func(c *fiber.Ctx, patch map[string]interface{}) error {
				if !authmw.IsMaster(c) {
					// staf tidak boleh menaikkan perannya sendiri
					delete(patch, "user_roles")
					delete(patch, "rumah_quran_id")
					delete(patch, "is_active")
				}
				return nil
			},
		},
		"santri": {
			Name:     "santri",
			New:      func() interface{} { return &sModel.SantriModel{} },
			NewSlice: func() interface{} { return &[]sModel.SantriModel{} },
			Columns: cols("id", "name", "birthdate", "birthplace", "address",
				"rumah_quran_id", "institution_origin", "enrollment_status",
				"enrollment_date", "graduation_status", "graduation_date",
				"created_at", "updated_at", "deleted_at"),
			Writable: cols("name", "birthdate", "birthplace", "address",
				"rumah_quran_id", "institution_origin", "enrollment_status",
				"enrollment_date", "graduation_status", "graduation_date", "deleted_at"),
			Scope: scopeByRumahQuran,
			OnInsert: func(c *fiber.Ctx, tx *gorm.DB, row map[string]interface{}) error {
				if _, ok := row["enrollment_status"]; !ok {
					row["enrollment_status"] = constants.EnrollmentActive
				}
				if _, ok := row["graduation_status"]; !ok {
					row["graduation_status"] = constants.GraduationNotGraduated
				}
				if err := validateSantriStatuses(row); err != nil {
					return err
				}
				if !authmw.IsMaster(c) {
					rqID, ok := authmw.GetRumahQuranID(c)
					if !ok {
						return fmt.Errorf("akun belum terikat ke Rumah Quran")
					}
					row["rumah_quran_id"] = rqID
				}
				return nil
			},
			OnPatch: func(c *fiber.Ctx, patch map[string]interface{}) error {
				if !authmw.IsMaster(c) {
					delete(patch, "rumah_quran_id")
				}
				return validateSantriStatuses(patch)
			},
		},
		"work_program_submission": {
			Name:     "work_program_submission",
			New:      func() interface{} { return &wpModel.WorkProgramModel{} },
			NewSlice: func() interface{} { return &[]wpModel.WorkProgramModel{} },
			Columns: cols("id", "submitted_by", "rumah_quran_id", "name", "type",
				"description", "estimated_audience_number", "actual_audience_number",
				"submitted_start_date", "submitted_end_date", "actual_start_date",
				"actual_end_date", "submitted_duration", "actual_duration",
				"submitted_cost", "approved_cost", "submission_status",
				"is_verified_by_director", "created_at", "updated_at", "deleted_at"),
			Writable: cols("rumah_quran_id", "name", "type", "description",
				"estimated_audience_number", "actual_audience_number",
				"submitted_start_date", "submitted_end_date", "actual_start_date",
				"actual_end_date", "submitted_cost", "approved_cost",
				"submission_status", "is_verified_by_director", "deleted_at"),
			MaskStaff:         []string{"approved_cost"},
			Scope:             scopeByRumahQuran,
			RederiveDurations: true,
			OnInsert: func(c *fiber.Ctx, tx *gorm.DB, row map[string]interface{}) error {
				// pengajuan baru selalu mulai dari "submitted"
				row["submission_status"] = constants.SubmissionStatusSubmitted
				delete(row, "approved_cost")
				delete(row, "is_verified_by_director")

				if pid, ok := authmw.GetProfileID(c); ok {
					row["submitted_by"] = pid
				}
				if !authmw.IsMaster(c) {
					rqID, ok := authmw.GetRumahQuranID(c)
					if !ok {
						return fmt.Errorf("akun belum terikat ke Rumah Quran")
					}
					row["rumah_quran_id"] = rqID
				}

				deriveDurationColumns(row)
				return nil
			},
			OnPatch: func(c *fiber.Ctx, patch map[string]interface{}) error {
				// durasi tidak pernah diterima dari klien
				delete(patch, "submitted_duration")
				delete(patch, "actual_duration")

				if s, ok := patch["submission_status"].(string); ok {
					if !constants.IsValidSubmissionStatus(s) {
						return fmt.Errorf("submission_status tidak valid: %s", s)
					}
					if !authmw.IsMaster(c) &&
						s != constants.SubmissionStatusSubmitted &&
						s != constants.SubmissionStatusCompleted {
						return fmt.Errorf("keputusan status hanya untuk MASTER")
					}
				}
				if !authmw.IsMaster(c) {
					delete(patch, "approved_cost")
					delete(patch, "is_verified_by_director")
					delete(patch, "rumah_quran_id")
				}
				return nil
			},
		},
	}
}

func validateSantriStatuses(m map[string]interface{}) error {
	if s, ok := m["enrollment_status"].(string); ok && !constants.IsValidEnrollmentStatus(s) {
		return fmt.Errorf("enrollment_status tidak valid: %s", s)
	}
	if s, ok := m["graduation_status"].(string); ok && !constants.IsValidGraduationStatus(s) {
		return fmt.Errorf("graduation_status tidak valid: %s", s)
	}
	return nil
}

/* ===================== DURASI ===================== */

func deriveDurationColumns(row map[string]interface{}) {
	row["submitted_duration"] = durationOrNil(row["submitted_start_date"], row["submitted_end_date"])
	row["actual_duration"] = durationOrNil(row["actual_start_date"], row["actual_end_date"])
}

func durationOrNil(start, end interface{}) interface{} {
	s := parseDateValue(start)
	e := parseDateValue(end)
	if d := wpService.DurationDays(s, e); d != nil {
		return *d
	}
	return nil
}

// parseDateValue menerima string "2006-01-02" (wire) atau time.Time (hasil scan DB).
func parseDateValue(v interface{}) *datatypes.Date {
	switch t := v.(type) {
	case string:
		if len(t) > 10 {
			t = t[:10] // buang komponen waktu bila ada
		}
		parsed, err := time.Parse("2006-01-02", t)
		if err != nil {
			return nil
		}
		d := datatypes.Date(parsed)
		return &d
	case time.Time:
		d := datatypes.Date(t)
		return &d
	case *time.Time:
		if t == nil {
			return nil
		}
		d := datatypes.Date(*t)
		return &d
	case datatypes.Date:
		return &t
	default:
		return nil
	}
}
