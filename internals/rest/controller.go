// internals/rest/controller.go
//
// Surface data generik bergaya PostgREST di /rest/v1/:table.
// Dipakai klien tabledata; scoping peran & kolom ter-protect tetap
// ditegakkan server-side, bukan dipercayakan ke klien.
package rest

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	rqService "rumahquran_backend/internals/features/rumahquran/service"
	authmw "rumahquran_backend/internals/middlewares/auth"
)

const maxInsertAttempts = 3

type Controller struct {
	DB *gorm.DB
}

func NewController(db *gorm.DB) *Controller {
	return &Controller{DB: db}
}

func restError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

func (h *Controller) table(c *fiber.Ctx) (*Table, error) {
	t, ok := Tables()[c.Params("table")]
	if !ok {
		return nil, restError(c, fiber.StatusNotFound, "tabel tidak dikenal")
	}
	return t, nil
}

// queryParams membaca query string mentah, bukan c.Queries(), supaya dua
// filter pada kolom yang sama (mis. rentang created_at) tidak saling timpa.
func queryParams(c *fiber.Ctx) (url.Values, error) {
	return url.ParseQuery(string(c.Request().URI().QueryString()))
}

/* ===================== GET ===================== */

// GET /rest/v1/:table
// Balasan array JSON polos (tanpa envelope). Baris soft-deleted ikut
// terbaca; klien menyaring lewat deleted_at=is.null seperti biasa.
func (h *Controller) List(c *fiber.Ctx) error {
	t, err := h.table(c)
	if err != nil {
		return err
	}

	params, err := queryParams(c)
	if err != nil {
		return restError(c, fiber.StatusBadRequest, "query tidak valid")
	}
	q, err := ParseQuery(params, t.Columns)
	if err != nil {
		return restError(c, fiber.StatusBadRequest, err.Error())
	}

	dbq := t.Scope(c, h.DB.Unscoped().Model(t.New()))
	dbq, err = q.Apply(dbq)
	if err != nil {
		return restError(c, fiber.StatusBadRequest, err.Error())
	}

	rows := t.NewSlice()
	if err := dbq.Find(rows).Error; err != nil {
		return restError(c, fiber.StatusInternalServerError, "gagal membaca data")
	}

	out, err := rowsToMaps(rows)
	if err != nil {
		return restError(c, fiber.StatusInternalServerError, "gagal menyusun respons")
	}
	shapeRows(c, t, q, out)

	return c.Status(fiber.StatusOK).JSON(out)
}

/* ===================== POST ===================== */

// POST /rest/v1/:table
// Body satu objek atau array objek. `Prefer: return=representation`
// mengembalikan baris yang tersimpan (termasuk kolom hasil server
// seperti code dan durasi).
func (h *Controller) Insert(c *fiber.Ctx) error {
	t, err := h.table(c)
	if err != nil {
		return err
	}
	if t.MasterWrite && !authmw.IsMaster(c) {
		return restError(c, fiber.StatusForbidden, "operasi ini hanya untuk MASTER")
	}

	rows, err := decodeBodyRows(c.Body())
	if err != nil {
		return restError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	if len(rows) == 0 {
		return restError(c, fiber.StatusBadRequest, "payload kosong")
	}

	inserted := make([]map[string]interface{}, 0, len(rows))
	for _, raw := range rows {
		model, err := h.insertOne(c, t, raw)
		if err != nil {
			if errors.Is(err, errMasterOnly) {
				return restError(c, fiber.StatusForbidden, err.Error())
			}
			if rqService.IsUniqueViolation(err) {
				return restError(c, fiber.StatusConflict, "data bertabrakan dengan baris lain")
			}
			return restError(c, fiber.StatusBadRequest, err.Error())
		}
		m, convErr := rowToMap(model)
		if convErr != nil {
			return restError(c, fiber.StatusInternalServerError, "gagal menyusun respons")
		}
		inserted = append(inserted, m)
	}

	if !wantsRepresentation(c) {
		return c.SendStatus(fiber.StatusCreated)
	}
	shapeRows(c, t, nil, inserted)
	return c.Status(fiber.StatusCreated).JSON(inserted)
}

func (h *Controller) insertOne(c *fiber.Ctx, t *Table, raw map[string]interface{}) (interface{}, error) {
	var lastErr error
	for attempt := 0; attempt < maxInsertAttempts; attempt++ {
		row := pickWritable(t, raw)
		if t.OnInsert != nil {
			if err := t.OnInsert(c, h.DB, row); err != nil {
				return nil, err
			}
		}
		normalizeDates(row)

		model := t.New()
		if err := assignToModel(row, model); err != nil {
			return nil, err
		}
		err := h.DB.Create(model).Error
		if err == nil {
			return model, nil
		}
		if !rqService.IsUniqueViolation(err) {
			return nil, fmt.Errorf("gagal menyimpan data")
		}
		// tabrakan unique (mis. code) → hitung ulang dan coba lagi
		lastErr = err
	}
	return nil, lastErr
}

/* ===================== PATCH ===================== */

// PATCH /rest/v1/:table
// Update massal ditolak: minimal satu filter wajib ada. Soft delete
// dilakukan dari sini juga (patch deleted_at).
func (h *Controller) Patch(c *fiber.Ctx) error {
	t, err := h.table(c)
	if err != nil {
		return err
	}
	if t.MasterWrite && !authmw.IsMaster(c) {
		return restError(c, fiber.StatusForbidden, "operasi ini hanya untuk MASTER")
	}

	params, err := queryParams(c)
	if err != nil {
		return restError(c, fiber.StatusBadRequest, "query tidak valid")
	}
	q, err := ParseQuery(params, t.Columns)
	if err != nil {
		return restError(c, fiber.StatusBadRequest, err.Error())
	}
	if len(q.Conditions) == 0 {
		return restError(c, fiber.StatusBadRequest, "update tanpa filter ditolak")
	}

	var rawPatch map[string]interface{}
	if err := sonic.Unmarshal(c.Body(), &rawPatch); err != nil {
		return restError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	patch := pickWritable(t, rawPatch)
	if t.OnPatch != nil {
		if err := t.OnPatch(c, patch); err != nil {
			return restError(c, fiber.StatusBadRequest, err.Error())
		}
	}
	if len(patch) == 0 {
		return restError(c, fiber.StatusBadRequest, "tidak ada kolom yang bisa diubah")
	}
	normalizeDates(patch)

	// Kunci dulu daftar id yang kena, supaya representation tetap akurat
	// walau kolom yang dipatch termasuk kolom filter.
	idsQ := t.Scope(c, h.DB.Unscoped().Model(t.New()))
	for _, cond := range q.Conditions {
		idsQ, err = applyCondition(idsQ, cond)
		if err != nil {
			return restError(c, fiber.StatusBadRequest, err.Error())
		}
	}
	var ids []int64
	if err := idsQ.Pluck("id", &ids).Error; err != nil {
		return restError(c, fiber.StatusInternalServerError, "gagal membaca data")
	}

	if len(ids) > 0 {
		if err := h.DB.Unscoped().Model(t.New()).
			Where("id IN ?", ids).Updates(patch).Error; err != nil {
			if rqService.IsUniqueViolation(err) {
				return restError(c, fiber.StatusConflict, "data bertabrakan dengan baris lain")
			}
			return restError(c, fiber.StatusInternalServerError, "gagal memperbarui data")
		}
		if t.RederiveDurations && touchesDateColumns(patch) {
			if err := h.rederiveDurations(t, ids); err != nil {
				return restError(c, fiber.StatusInternalServerError, "gagal menghitung durasi")
			}
		}
	}

	if !wantsRepresentation(c) {
		return c.SendStatus(fiber.StatusNoContent)
	}

	updated := t.NewSlice()
	if len(ids) > 0 {
		if err := h.DB.Unscoped().Model(t.New()).
			Where("id IN ?", ids).Find(updated).Error; err != nil {
			return restError(c, fiber.StatusInternalServerError, "gagal membaca data")
		}
	}
	out, err := rowsToMaps(updated)
	if err != nil {
		return restError(c, fiber.StatusInternalServerError, "gagal menyusun respons")
	}
	shapeRows(c, t, nil, out)
	return c.Status(fiber.StatusOK).JSON(out)
}

// DELETE tidak dilayani; penghapusan memakai PATCH deleted_at.
func (h *Controller) Delete(c *fiber.Ctx) error {
	return restError(c, fiber.StatusMethodNotAllowed, "gunakan PATCH deleted_at untuk menghapus")
}

/* ===================== INTERNAL ===================== */

func wantsRepresentation(c *fiber.Ctx) bool {
	return strings.Contains(c.Get("Prefer"), "return=representation")
}

func pickWritable(t *Table, raw map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		if t.Writable[k] {
			out[k] = v
		}
	}
	return out
}

func decodeBodyRows(body []byte) ([]map[string]interface{}, error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var rows []map[string]interface{}
		if err := sonic.Unmarshal(body, &rows); err != nil {
			return nil, err
		}
		return rows, nil
	}
	var row map[string]interface{}
	if err := sonic.Unmarshal(body, &row); err != nil {
		return nil, err
	}
	return []map[string]interface{}{row}, nil
}

// rowsToMaps lewat JSON supaya nama key mengikuti json tag model
// (yang memang sama dengan nama kolom).
func rowsToMaps(rows interface{}) ([]map[string]interface{}, error) {
	b, err := sonic.Marshal(rows)
	if err != nil {
		return nil, err
	}
	var out []map[string]interface{}
	if err := sonic.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []map[string]interface{}{}
	}
	return out, nil
}

func rowToMap(row interface{}) (map[string]interface{}, error) {
	b, err := sonic.Marshal(row)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := sonic.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func assignToModel(row map[string]interface{}, model interface{}) error {
	b, err := sonic.Marshal(row)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(b, model); err != nil {
		return fmt.Errorf("payload tidak cocok dengan tipe kolom")
	}
	return nil
}

// shapeRows menutup kolom ter-mask untuk non-MASTER dan menerapkan
// proyeksi select kalau diminta.
func shapeRows(c *fiber.Ctx, t *Table, q *Query, rows []map[string]interface{}) {
	masked := t.MaskStaff
	if authmw.IsMaster(c) {
		masked = nil
	}
	var selected map[string]bool
	if q != nil && len(q.Select) > 0 {
		selected = make(map[string]bool, len(q.Select))
		for _, col := range q.Select {
			selected[col] = true
		}
	}
	for _, row := range rows {
		for _, col := range masked {
			delete(row, col)
		}
		if selected != nil {
			for k := range row {
				if !selected[k] {
					delete(row, k)
				}
			}
		}
	}
}

var dateOnlyColumns = map[string]bool{
	"birthdate":            true,
	"enrollment_date":      true,
	"graduation_date":      true,
	"submitted_start_date": true,
	"submitted_end_date":   true,
	"actual_start_date":    true,
	"actual_end_date":      true,
}

// normalizeDates menerima tanggal wire "2006-01-02" dan menjadikannya
// time.Time supaya konsisten di Postgres maupun driver test.
func normalizeDates(row map[string]interface{}) {
	for k, v := range row {
		s, ok := v.(string)
		if !ok {
			continue
		}
		switch {
		case dateOnlyColumns[k]:
			if d := parseDateValue(s); d != nil {
				row[k] = time.Time(*d)
			}
		case k == "deleted_at" || k == "last_login":
			if ts, err := time.Parse(time.RFC3339, s); err == nil {
				row[k] = ts
			} else if d := parseDateValue(s); d != nil {
				row[k] = time.Time(*d)
			}
		}
	}
}

func touchesDateColumns(patch map[string]interface{}) bool {
	for _, col := range []string{"submitted_start_date", "submitted_end_date", "actual_start_date", "actual_end_date"} {
		if _, ok := patch[col]; ok {
			return true
		}
	}
	return false
}

// rederiveDurations menghitung ulang durasi per baris setelah tanggal berubah.
func (h *Controller) rederiveDurations(t *Table, ids []int64) error {
	var rows []map[string]interface{}
	if err := h.DB.Table(t.Name).
		Select("id", "submitted_start_date", "submitted_end_date", "actual_start_date", "actual_end_date").
		Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return err
	}
	for _, row := range rows {
		upd := map[string]interface{}{
			"submitted_duration": durationOrNil(row["submitted_start_date"], row["submitted_end_date"]),
			"actual_duration":    durationOrNil(row["actual_start_date"], row["actual_end_date"]),
		}
		if err := h.DB.Table(t.Name).Where("id = ?", row["id"]).Updates(upd).Error; err != nil {
			return err
		}
	}
	return nil
}
