// internals/features/santri/controller/santri_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sDTO "rumahquran_backend/internals/features/santri/dto"
	sModel "rumahquran_backend/internals/features/santri/model"
	helper "rumahquran_backend/internals/helpers"
	authmw "rumahquran_backend/internals/middlewares/auth"
)

type SantriController struct {
	DB *gorm.DB
}

func NewSantriController(db *gorm.DB) *SantriController {
	return &SantriController{DB: db}
}

/* ===================== HANDLERS ===================== */

// GET /api/u/santri
// Non-MASTER dipaksa ke rumah_quran_id miliknya sendiri (scoping server-side).
func (h *SantriController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	dbq := h.DB.Model(&sModel.SantriModel{})
	dbq = scopeToCaller(c, dbq)

	if v := strings.TrimSpace(c.Query("search")); v != "" {
		needle := "%" + strings.ToLower(v) + "%"
		dbq = dbq.Where("LOWER(name) LIKE ?", needle)
	}
	if v := c.Query("enrollment_status"); v != "" {
		dbq = dbq.Where("enrollment_status = ?", v)
	}
	// filter lokasi hanya berarti untuk MASTER; selain itu sudah di-scope
	if authmw.IsMaster(c) {
		if v := c.Query("rumah_quran_id"); v != "" {
			if id, err := strconv.ParseInt(v, 10, 64); err == nil {
				dbq = dbq.Where("rumah_quran_id = ?", id)
			}
		}
	}

	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var rows []sModel.SantriModel
	if err := dbq.Order("name ASC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat data santri")
	}

	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	pg.Count = len(rows)
	return helper.JsonList(c, "", sDTO.NewSantriResponses(rows), &pg)
}

// GET /api/u/santri/:id
func (h *SantriController) Detail(c *fiber.Ctx) error {
	m, err := h.findScoped(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "", sDTO.NewSantriResponse(m))
}

// POST /api/u/santri
func (h *SantriController) Create(c *fiber.Ctx) error {
	var req sDTO.CreateSantriRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()

	// Non-MASTER hanya boleh mendaftarkan santri di lokasinya sendiri
	if !authmw.IsMaster(c) {
		rqID, ok := authmw.GetRumahQuranID(c)
		if !ok {
			return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda belum terikat ke Rumah Quran")
		}
		m.RumahQuranID = &rqID
	}

	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mendaftarkan santri")
	}
	return helper.JsonCreated(c, "Santri berhasil didaftarkan", sDTO.NewSantriResponse(m))
}

// PATCH /api/u/santri/:id
func (h *SantriController) Update(c *fiber.Ctx) error {
	var req sDTO.UpdateSantriRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := h.findScoped(c)
	if err != nil {
		return err
	}

	// Non-MASTER tidak boleh memindahkan santri ke lokasi lain
	if !authmw.IsMaster(c) {
		req.RumahQuranID = nil
	}

	req.ApplyToModel(m)
	if err := h.DB.Save(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui data santri")
	}
	return helper.JsonUpdated(c, "Data santri diperbarui", sDTO.NewSantriResponse(m))
}

// DELETE /api/u/santri/:id (soft delete)
func (h *SantriController) Delete(c *fiber.Ctx) error {
	m, err := h.findScoped(c)
	if err != nil {
		return err
	}
	if err := h.DB.Delete(&sModel.SantriModel{}, "id = ?", m.ID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus data santri")
	}
	return helper.JsonDeleted(c, "Data santri dihapus", fiber.Map{"id": m.ID})
}

/* ===================== INTERNAL ===================== */

func scopeToCaller(c *fiber.Ctx, dbq *gorm.DB) *gorm.DB {
	if authmw.IsMaster(c) {
		return dbq
	}
	if rqID, ok := authmw.GetRumahQuranID(c); ok {
		return dbq.Where("rumah_quran_id = ?", rqID)
	}
	// tanpa scope → tidak boleh lihat apa pun
	return dbq.Where("1 = 0")
}

func (h *SantriController) findScoped(c *fiber.Ctx) (*sModel.SantriModel, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	dbq := scopeToCaller(c, h.DB.Model(&sModel.SantriModel{}))

	var m sModel.SantriModel
	if err := dbq.First(&m, "santri.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Santri tidak ditemukan")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat data santri")
	}
	return &m, nil
}
