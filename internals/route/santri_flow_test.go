// internals/route/santri_flow_test.go
package route_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rumahquran_backend/internals/constants"
	sModel "rumahquran_backend/internals/features/santri/model"
)

func TestSantriCreateForcedToOwnLocation(t *testing.T) {
	app, db := newTestApp(t)
	rq1 := seedRumahQuran(t, db, "RQ-001", "Cabang Timur")
	rq2 := seedRumahQuran(t, db, "RQ-002", "Cabang Barat")
	seedAccount(t, db, "timur@yayasan.org", constants.RoleStaff, &rq1.ID)
	staffTok, _ := login(t, app, "timur@yayasan.org")

	// staf mencoba mendaftarkan ke lokasi lain → dipaksa ke lokasinya
	created := doJSON(t, app, http.MethodPost, "/api/u/santri", fiber.Map{
		"name":           "Ahmad Fauzi",
		"rumah_quran_id": rq2.ID,
	}, staffTok)
	require.Equal(t, http.StatusCreated, created.Status, string(created.Raw))

	data := dataOf(t, created)
	assert.Equal(t, float64(rq1.ID), data["rumah_quran_id"])
	assert.Equal(t, "active", data["enrollment_status"])
	assert.Equal(t, "not_graduated", data["graduation_status"])
}

func TestSantriInvalidStatusRejected(t *testing.T) {
	app, db := newTestApp(t)
	rq := seedRumahQuran(t, db, "RQ-001", "Rumah Quran Pusat")
	seedAccount(t, db, "staf@yayasan.org", constants.RoleStaff, &rq.ID)
	staffTok, _ := login(t, app, "staf@yayasan.org")

	resp := doJSON(t, app, http.MethodPost, "/api/u/santri", fiber.Map{
		"name":              "Ahmad Fauzi",
		"enrollment_status": "lulus-banget",
	}, staffTok)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Status)
}

func TestSantriSoftDelete(t *testing.T) {
	app, db := newTestApp(t)
	rq := seedRumahQuran(t, db, "RQ-001", "Rumah Quran Pusat")
	seedAccount(t, db, "staf@yayasan.org", constants.RoleStaff, &rq.ID)
	staffTok, _ := login(t, app, "staf@yayasan.org")

	created := doJSON(t, app, http.MethodPost, "/api/u/santri", fiber.Map{
		"name": "Siti Khadijah",
	}, staffTok)
	require.Equal(t, http.StatusCreated, created.Status)
	id := int64(dataOf(t, created)["id"].(float64))

	deleted := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/u/santri/%d", id), nil, staffTok)
	require.Equal(t, http.StatusOK, deleted.Status, string(deleted.Raw))

	// hilang dari list & detail...
	list := doJSON(t, app, http.MethodGet, "/api/u/santri", nil, staffTok)
	require.Equal(t, http.StatusOK, list.Status)
	assert.Empty(t, listOf(t, list))

	detail := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/u/santri/%d", id), nil, staffTok)
	assert.Equal(t, http.StatusNotFound, detail.Status)

	// ...tapi barisnya masih ada (soft delete, bukan hard delete)
	var m sModel.SantriModel
	require.NoError(t, db.Unscoped().First(&m, "id = ?", id).Error)
	assert.True(t, m.DeletedAt.Valid)
}

func TestSantriListScopedAndFiltered(t *testing.T) {
	app, db := newTestApp(t)
	rq1 := seedRumahQuran(t, db, "RQ-001", "Cabang Timur")
	rq2 := seedRumahQuran(t, db, "RQ-002", "Cabang Barat")
	seedAccount(t, db, "timur@yayasan.org", constants.RoleStaff, &rq1.ID)
	seedAccount(t, db, "admin@yayasan.org", constants.RoleMaster, nil)

	require.NoError(t, db.Create(&sModel.SantriModel{
		Name: "Ahmad Fauzi", RumahQuranID: &rq1.ID,
		EnrollmentStatus: "active", GraduationStatus: "not_graduated",
	}).Error)
	require.NoError(t, db.Create(&sModel.SantriModel{
		Name: "Budi Santoso", RumahQuranID: &rq2.ID,
		EnrollmentStatus: "graduated", GraduationStatus: "graduated",
	}).Error)

	staffTok, _ := login(t, app, "timur@yayasan.org")
	masterTok, _ := login(t, app, "admin@yayasan.org")

	// staf hanya melihat lokasinya
	staffList := doJSON(t, app, http.MethodGet, "/api/u/santri", nil, staffTok)
	require.Equal(t, http.StatusOK, staffList.Status)
	rows := listOf(t, staffList)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ahmad Fauzi", rows[0].(map[string]interface{})["name"])

	// MASTER lihat semua, dan bisa memfilter per lokasi
	all := doJSON(t, app, http.MethodGet, "/api/u/santri", nil, masterTok)
	require.Equal(t, http.StatusOK, all.Status)
	assert.Len(t, listOf(t, all), 2)

	filtered := doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/u/santri?rumah_quran_id=%d", rq2.ID), nil, masterTok)
	require.Equal(t, http.StatusOK, filtered.Status)
	frows := listOf(t, filtered)
	require.Len(t, frows, 1)
	assert.Equal(t, "Budi Santoso", frows[0].(map[string]interface{})["name"])

	// pencarian nama case-insensitive
	searched := doJSON(t, app, http.MethodGet, "/api/u/santri?search=ahmad", nil, masterTok)
	require.Equal(t, http.StatusOK, searched.Status)
	assert.Len(t, listOf(t, searched), 1)
}
