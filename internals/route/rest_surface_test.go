// internals/route/rest_surface_test.go
package route_test

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rumahquran_backend/internals/constants"
	sModel "rumahquran_backend/internals/features/santri/model"
	wpModel "rumahquran_backend/internals/features/workprogram/model"
)

// doREST memanggil /rest/v1 dengan header apikey + bearer.
func doREST(t *testing.T, app *fiber.App, method, path string, payload interface{}, token string) testResponse {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := sonic.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	req.Header.Set("apikey", "test-apikey")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := testResponse{Status: resp.StatusCode, Raw: raw}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, sonic.Unmarshal(raw, &out.Body))
	}
	return out
}

func rawRows(t *testing.T, resp testResponse) []map[string]interface{} {
	t.Helper()
	var rows []map[string]interface{}
	require.NoError(t, sonic.Unmarshal(resp.Raw, &rows), string(resp.Raw))
	return rows
}

func TestRestRequiresAPIKeyAndToken(t *testing.T) {
	app, db := newTestApp(t)
	seedAccount(t, db, "admin@yayasan.org", constants.RoleMaster, nil)
	access, _ := login(t, app, "admin@yayasan.org")

	// tanpa apikey
	req, _ := http.NewRequest(http.MethodGet, "/rest/v1/rumah_quran", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// apikey ada tapi tanpa JWT
	noTok := doREST(t, app, http.MethodGet, "/rest/v1/rumah_quran", nil, "")
	assert.Equal(t, http.StatusUnauthorized, noTok.Status)
}

func TestRestSelectWithFilters(t *testing.T) {
	app, db := newTestApp(t)
	seedAccount(t, db, "admin@yayasan.org", constants.RoleMaster, nil)
	access, _ := login(t, app, "admin@yayasan.org")

	rq1 := seedRumahQuran(t, db, "RQ-001", "Cabang Timur")
	seedRumahQuran(t, db, "RQ-002", "Cabang Barat")

	// eq per id
	byID := doREST(t, app, http.MethodGet,
		fmt.Sprintf("/rest/v1/rumah_quran?id=eq.%d&deleted_at=is.null", rq1.ID), nil, access)
	require.Equal(t, http.StatusOK, byID.Status, string(byID.Raw))
	rows := rawRows(t, byID)
	require.Len(t, rows, 1)
	assert.Equal(t, "RQ-001", rows[0]["code"])

	// ilike + order + select projection
	searched := doREST(t, app, http.MethodGet,
		"/rest/v1/rumah_quran?name=ilike.*cabang*&order=code.desc&select=code,name", nil, access)
	require.Equal(t, http.StatusOK, searched.Status, string(searched.Raw))
	srows := rawRows(t, searched)
	require.Len(t, srows, 2)
	assert.Equal(t, "RQ-002", srows[0]["code"])
	_, hasID := srows[0]["id"]
	assert.False(t, hasID, "select harus memproyeksikan kolom")

	// in
	inRows := doREST(t, app, http.MethodGet,
		"/rest/v1/rumah_quran?code=in.(RQ-001,RQ-002)&limit=1", nil, access)
	require.Equal(t, http.StatusOK, inRows.Status)
	assert.Len(t, rawRows(t, inRows), 1)

	// rentang: filter ganda pada kolom yang sama dua-duanya dipakai
	ranged := doREST(t, app, http.MethodGet,
		fmt.Sprintf("/rest/v1/rumah_quran?id=gte.%d&id=lte.%d", rq1.ID, rq1.ID), nil, access)
	require.Equal(t, http.StatusOK, ranged.Status, string(ranged.Raw))
	rrows := rawRows(t, ranged)
	require.Len(t, rrows, 1)
	assert.Equal(t, "RQ-001", rrows[0]["code"])

	// tabel & kolom tidak dikenal
	unknownTable := doREST(t, app, http.MethodGet, "/rest/v1/secret_table", nil, access)
	assert.Equal(t, http.StatusNotFound, unknownTable.Status)
	unknownCol := doREST(t, app, http.MethodGet, "/rest/v1/rumah_quran?password=eq.x", nil, access)
	assert.Equal(t, http.StatusBadRequest, unknownCol.Status)
}

func TestRestInsertAppliesServerRules(t *testing.T) {
	app, db := newTestApp(t)
	rq := seedRumahQuran(t, db, "RQ-001", "Rumah Quran Pusat")
	staff := seedAccount(t, db, "staf@yayasan.org", constants.RoleStaff, &rq.ID)
	seedAccount(t, db, "admin@yayasan.org", constants.RoleMaster, nil)

	staffTok, _ := login(t, app, "staf@yayasan.org")
	masterTok, _ := login(t, app, "admin@yayasan.org")

	// staf insert santri → lokasi dipaksa, status default terisi
	created := doREST(t, app, http.MethodPost, "/rest/v1/santri", fiber.Map{
		"name":           "Ahmad Fauzi",
		"rumah_quran_id": 999,
	}, staffTok)
	require.Equal(t, http.StatusCreated, created.Status, string(created.Raw))
	rows := rawRows(t, created)
	require.Len(t, rows, 1)
	assert.Equal(t, float64(rq.ID), rows[0]["rumah_quran_id"])
	assert.Equal(t, "active", rows[0]["enrollment_status"])
	assert.NotZero(t, rows[0]["id"])

	// program kerja: status dipaksa submitted, durasi dihitung, pengirim dicatat
	wp := doREST(t, app, http.MethodPost, "/rest/v1/work_program_submission", fiber.Map{
		"name":                 "Tasmi Akbar",
		"submitted_start_date": "2025-03-01",
		"submitted_end_date":   "2025-03-05",
		"submission_status":    "approved", // harus diabaikan
		"approved_cost":        9999999,    // harus diabaikan
	}, staffTok)
	require.Equal(t, http.StatusCreated, wp.Status, string(wp.Raw))
	wrows := rawRows(t, wp)
	require.Len(t, wrows, 1)
	assert.Equal(t, "submitted", wrows[0]["submission_status"])
	assert.Equal(t, float64(5), wrows[0]["submitted_duration"])
	assert.Equal(t, float64(staff.ID), wrows[0]["submitted_by"])
	_, hasApproved := wrows[0]["approved_cost"]
	assert.False(t, hasApproved)

	// rumah_quran: staf ditolak, MASTER dapat code generate
	denied := doREST(t, app, http.MethodPost, "/rest/v1/rumah_quran", fiber.Map{
		"name": "Cabang Baru",
	}, staffTok)
	assert.Equal(t, http.StatusForbidden, denied.Status)

	createdRQ := doREST(t, app, http.MethodPost, "/rest/v1/rumah_quran", fiber.Map{
		"name": "Cabang Baru",
		"code": "RQ-999",
	}, masterTok)
	require.Equal(t, http.StatusCreated, createdRQ.Status, string(createdRQ.Raw))
	assert.Equal(t, "RQ-002", rawRows(t, createdRQ)[0]["code"])
}

func TestRestProfileInsertOnlyMaster(t *testing.T) {
	app, db := newTestApp(t)
	rq := seedRumahQuran(t, db, "RQ-001", "Rumah Quran Pusat")
	seedAccount(t, db, "staf@yayasan.org", constants.RoleStaff, &rq.ID)
	seedAccount(t, db, "admin@yayasan.org", constants.RoleMaster, nil)

	staffTok, _ := login(t, app, "staf@yayasan.org")
	masterTok, _ := login(t, app, "admin@yayasan.org")

	// staf tidak boleh menanam profil baru (apalagi ber-role MASTER)
	var before int64
	require.NoError(t, db.Table("profiles").Count(&before).Error)

	denied := doREST(t, app, http.MethodPost, "/rest/v1/profiles", fiber.Map{
		"name":           "Penyusup",
		"email":          "penyusup@yayasan.org",
		"user_roles":     constants.RoleMaster,
		"rumah_quran_id": 999,
	}, staffTok)
	assert.Equal(t, http.StatusForbidden, denied.Status, string(denied.Raw))

	var after int64
	require.NoError(t, db.Table("profiles").Count(&after).Error)
	assert.Equal(t, before, after, "baris profil tidak boleh bertambah")

	// MASTER tetap bisa
	created := doREST(t, app, http.MethodPost, "/rest/v1/profiles", fiber.Map{
		"name":       "Pengurus Baru",
		"email":      "baru@yayasan.org",
		"user_roles": constants.RoleStaff,
	}, masterTok)
	require.Equal(t, http.StatusCreated, created.Status, string(created.Raw))
	assert.Equal(t, "baru@yayasan.org", rawRows(t, created)[0]["email"])
}

func TestRestPatchRecomputesDuration(t *testing.T) {
	app, db := newTestApp(t)
	rq := seedRumahQuran(t, db, "RQ-001", "Rumah Quran Pusat")
	seedAccount(t, db, "staf@yayasan.org", constants.RoleStaff, &rq.ID)
	staffTok, _ := login(t, app, "staf@yayasan.org")

	created := doREST(t, app, http.MethodPost, "/rest/v1/work_program_submission", fiber.Map{
		"name":                 "Kajian Rutin",
		"submitted_start_date": "2025-03-01",
		"submitted_end_date":   "2025-03-05",
	}, staffTok)
	require.Equal(t, http.StatusCreated, created.Status, string(created.Raw))
	crows := rawRows(t, created)
	require.Len(t, crows, 1)
	assert.Equal(t, float64(5), crows[0]["submitted_duration"])
	id := int64(crows[0]["id"].(float64))

	// geser tanggal akhir lewat PATCH → durasi dihitung ulang server
	patched := doREST(t, app, http.MethodPatch,
		fmt.Sprintf("/rest/v1/work_program_submission?id=eq.%d", id), fiber.Map{
			"submitted_end_date": "2025-03-10",
			"submitted_duration": 99, // harus diabaikan
		}, staffTok)
	require.Equal(t, http.StatusOK, patched.Status, string(patched.Raw))
	prows := rawRows(t, patched)
	require.Len(t, prows, 1)
	assert.Equal(t, float64(10), prows[0]["submitted_duration"])
}

func TestRestPatchAndSoftDelete(t *testing.T) {
	app, db := newTestApp(t)
	rq := seedRumahQuran(t, db, "RQ-001", "Rumah Quran Pusat")
	seedAccount(t, db, "staf@yayasan.org", constants.RoleStaff, &rq.ID)
	staffTok, _ := login(t, app, "staf@yayasan.org")

	santri := sModel.SantriModel{
		Name: "Siti Khadijah", RumahQuranID: &rq.ID,
		EnrollmentStatus: "active", GraduationStatus: "not_graduated",
	}
	require.NoError(t, db.Create(&santri).Error)

	// patch tanpa filter ditolak
	noFilter := doREST(t, app, http.MethodPatch, "/rest/v1/santri", fiber.Map{
		"name": "Ganti Massal",
	}, staffTok)
	assert.Equal(t, http.StatusBadRequest, noFilter.Status)

	// patch biasa
	patched := doREST(t, app, http.MethodPatch,
		fmt.Sprintf("/rest/v1/santri?id=eq.%d", santri.ID), fiber.Map{
			"enrollment_status": "graduated",
			"graduation_status": "graduated",
			"graduation_date":   "2025-06-30",
		}, staffTok)
	require.Equal(t, http.StatusOK, patched.Status, string(patched.Raw))
	prows := rawRows(t, patched)
	require.Len(t, prows, 1)
	assert.Equal(t, "graduated", prows[0]["enrollment_status"])

	// soft delete lewat patch deleted_at
	deleted := doREST(t, app, http.MethodPatch,
		fmt.Sprintf("/rest/v1/santri?id=eq.%d", santri.ID), fiber.Map{
			"deleted_at": "2025-07-01T00:00:00Z",
		}, staffTok)
	require.Equal(t, http.StatusOK, deleted.Status, string(deleted.Raw))

	// tersaring oleh deleted_at=is.null, tetap terlihat tanpa filter itu
	active := doREST(t, app, http.MethodGet, "/rest/v1/santri?deleted_at=is.null", nil, staffTok)
	require.Equal(t, http.StatusOK, active.Status)
	assert.Empty(t, rawRows(t, active))

	all := doREST(t, app, http.MethodGet, "/rest/v1/santri", nil, staffTok)
	require.Equal(t, http.StatusOK, all.Status)
	assert.Len(t, rawRows(t, all), 1)

	// DELETE verb tidak dilayani
	hard := doREST(t, app, http.MethodDelete,
		fmt.Sprintf("/rest/v1/santri?id=eq.%d", santri.ID), nil, staffTok)
	assert.Equal(t, http.StatusMethodNotAllowed, hard.Status)
}

func TestRestMasksApprovedCostForStaff(t *testing.T) {
	app, db := newTestApp(t)
	rq := seedRumahQuran(t, db, "RQ-001", "Rumah Quran Pusat")
	seedAccount(t, db, "staf@yayasan.org", constants.RoleStaff, &rq.ID)
	seedAccount(t, db, "admin@yayasan.org", constants.RoleMaster, nil)

	cost := 1500000.0
	require.NoError(t, db.Create(&wpModel.WorkProgramModel{
		Name: "Wisuda Tahfidz", RumahQuranID: &rq.ID,
		SubmissionStatus: "approved", ApprovedCost: &cost,
	}).Error)

	staffTok, _ := login(t, app, "staf@yayasan.org")
	masterTok, _ := login(t, app, "admin@yayasan.org")

	staffView := doREST(t, app, http.MethodGet, "/rest/v1/work_program_submission", nil, staffTok)
	require.Equal(t, http.StatusOK, staffView.Status)
	srows := rawRows(t, staffView)
	require.Len(t, srows, 1)
	_, has := srows[0]["approved_cost"]
	assert.False(t, has, "approved_cost bocor lewat /rest/v1")

	masterView := doREST(t, app, http.MethodGet, "/rest/v1/work_program_submission", nil, masterTok)
	require.Equal(t, http.StatusOK, masterView.Status)
	assert.Equal(t, cost, rawRows(t, masterView)[0]["approved_cost"])
}

func TestRestScopedPerLocation(t *testing.T) {
	app, db := newTestApp(t)
	rq1 := seedRumahQuran(t, db, "RQ-001", "Cabang Timur")
	rq2 := seedRumahQuran(t, db, "RQ-002", "Cabang Barat")
	seedAccount(t, db, "timur@yayasan.org", constants.RoleStaff, &rq1.ID)

	require.NoError(t, db.Create(&sModel.SantriModel{
		Name: "Ahmad Fauzi", RumahQuranID: &rq1.ID,
		EnrollmentStatus: "active", GraduationStatus: "not_graduated",
	}).Error)
	require.NoError(t, db.Create(&sModel.SantriModel{
		Name: "Budi Santoso", RumahQuranID: &rq2.ID,
		EnrollmentStatus: "active", GraduationStatus: "not_graduated",
	}).Error)

	staffTok, _ := login(t, app, "timur@yayasan.org")
	list := doREST(t, app, http.MethodGet, "/rest/v1/santri", nil, staffTok)
	require.Equal(t, http.StatusOK, list.Status)
	rows := rawRows(t, list)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ahmad Fauzi", rows[0]["name"])

	// filter eksplisit ke lokasi lain pun tetap kosong
	cross := doREST(t, app, http.MethodGet,
		fmt.Sprintf("/rest/v1/santri?rumah_quran_id=eq.%d", rq2.ID), nil, staffTok)
	require.Equal(t, http.StatusOK, cross.Status)
	assert.Empty(t, rawRows(t, cross))
}
