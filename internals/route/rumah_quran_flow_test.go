// internals/route/rumah_quran_flow_test.go
package route_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rumahquran_backend/internals/constants"
	rqModel "rumahquran_backend/internals/features/rumahquran/model"
)

func TestRumahQuranCodeGeneratedServerSide(t *testing.T) {
	app, db := newTestApp(t)
	seedAccount(t, db, "admin@yayasan.org", constants.RoleMaster, nil)
	access, _ := login(t, app, "admin@yayasan.org")

	// tabel kosong → RQ-001, dan code kiriman klien diabaikan
	created := doJSON(t, app, http.MethodPost, "/api/a/rumah-quran", fiber.Map{
		"name":    "Rumah Quran Cabang Timur",
		"code":    "RQ-999",
		"address": "Jl. Melati 1",
	}, access)
	require.Equal(t, http.StatusCreated, created.Status, string(created.Raw))
	assert.Equal(t, "RQ-001", dataOf(t, created)["code"])

	// ada RQ-007 → berikutnya RQ-008, bukan mengisi celah
	seedRumahQuran(t, db, "RQ-007", "Rumah Quran Lama")
	next := doJSON(t, app, http.MethodPost, "/api/a/rumah-quran", fiber.Map{
		"name": "Rumah Quran Cabang Barat",
	}, access)
	require.Equal(t, http.StatusCreated, next.Status, string(next.Raw))
	assert.Equal(t, "RQ-008", dataOf(t, next)["code"])
}

func TestRumahQuranCodeSkipsSoftDeleted(t *testing.T) {
	app, db := newTestApp(t)
	seedAccount(t, db, "admin@yayasan.org", constants.RoleMaster, nil)
	access, _ := login(t, app, "admin@yayasan.org")

	old := seedRumahQuran(t, db, "RQ-005", "Sudah Tutup")
	require.NoError(t, db.Delete(&rqModel.RumahQuranModel{}, "id = ?", old.ID).Error)

	// code RQ-005 masih terpakai oleh baris soft-deleted → lanjut ke RQ-006
	created := doJSON(t, app, http.MethodPost, "/api/a/rumah-quran", fiber.Map{
		"name": "Rumah Quran Baru",
	}, access)
	require.Equal(t, http.StatusCreated, created.Status, string(created.Raw))
	assert.Equal(t, "RQ-006", dataOf(t, created)["code"])
}

func TestRumahQuranWriteOnlyMaster(t *testing.T) {
	app, db := newTestApp(t)
	rq := seedRumahQuran(t, db, "RQ-001", "Rumah Quran Pusat")
	seedAccount(t, db, "staf@yayasan.org", constants.RoleStaff, &rq.ID)
	access, _ := login(t, app, "staf@yayasan.org")

	created := doJSON(t, app, http.MethodPost, "/api/a/rumah-quran", fiber.Map{
		"name": "Percobaan Staf",
	}, access)
	assert.Equal(t, http.StatusForbidden, created.Status)

	// baca tetap boleh
	list := doJSON(t, app, http.MethodGet, "/api/u/rumah-quran", nil, access)
	require.Equal(t, http.StatusOK, list.Status)
	assert.Len(t, listOf(t, list), 1)
}
