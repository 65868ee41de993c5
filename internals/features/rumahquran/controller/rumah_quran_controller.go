// internals/features/rumahquran/controller/rumah_quran_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	rqDTO "rumahquran_backend/internals/features/rumahquran/dto"
	rqModel "rumahquran_backend/internals/features/rumahquran/model"
	rqService "rumahquran_backend/internals/features/rumahquran/service"
	helper "rumahquran_backend/internals/helpers"
)

type RumahQuranController struct {
	DB *gorm.DB
}

func NewRumahQuranController(db *gorm.DB) *RumahQuranController {
	return &RumahQuranController{DB: db}
}

/* ===================== HANDLERS ===================== */

// GET /api/u/rumah-quran — semua pengurus login boleh lihat daftar lokasi.
func (h *RumahQuranController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	dbq := h.DB.Model(&rqModel.RumahQuranModel{})
	if v := strings.TrimSpace(c.Query("search")); v != "" {
		needle := "%" + strings.ToLower(v) + "%"
		dbq = dbq.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ? OR LOWER(location) LIKE ?",
			needle, needle, needle)
	}
	if v := c.Query("active"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			dbq = dbq.Where("is_active = ?", b)
		}
	}

	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var rows []rqModel.RumahQuranModel
	if err := dbq.Order("code ASC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat Rumah Quran")
	}

	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	pg.Count = len(rows)
	return helper.JsonList(c, "", rqDTO.NewRumahQuranResponses(rows), &pg)
}

// GET /api/u/rumah-quran/:id
func (h *RumahQuranController) Detail(c *fiber.Ctx) error {
	m, err := h.findByID(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "", rqDTO.NewRumahQuranResponse(m))
}

// POST /api/a/rumah-quran (MASTER)
func (h *RumahQuranController) Create(c *fiber.Ctx) error {
	var req rqDTO.CreateRumahQuranRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := rqService.CreateWithGeneratedCode(h.DB, m); err != nil {
		if rqService.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Gagal mengalokasikan code, coba lagi")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat Rumah Quran")
	}

	return helper.JsonCreated(c, "Rumah Quran berhasil dibuat", rqDTO.NewRumahQuranResponse(m))
}

// PATCH /api/a/rumah-quran/:id (MASTER). Code tidak pernah berubah.
func (h *RumahQuranController) Update(c *fiber.Ctx) error {
	var req rqDTO.UpdateRumahQuranRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := h.findByID(c)
	if err != nil {
		return err
	}
	req.ApplyToModel(m)
	if err := h.DB.Save(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui Rumah Quran")
	}
	return helper.JsonUpdated(c, "Rumah Quran diperbarui", rqDTO.NewRumahQuranResponse(m))
}

// DELETE /api/a/rumah-quran/:id (MASTER, soft delete)
func (h *RumahQuranController) Delete(c *fiber.Ctx) error {
	m, err := h.findByID(c)
	if err != nil {
		return err
	}
	if err := h.DB.Delete(&rqModel.RumahQuranModel{}, "id = ?", m.ID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus Rumah Quran")
	}
	return helper.JsonDeleted(c, "Rumah Quran dihapus", fiber.Map{"id": m.ID})
}

/* ===================== INTERNAL ===================== */

func (h *RumahQuranController) findByID(c *fiber.Ctx) (*rqModel.RumahQuranModel, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	var m rqModel.RumahQuranModel
	if err := h.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Rumah Quran tidak ditemukan")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat Rumah Quran")
	}
	return &m, nil
}
