// internals/features/workprogram/controller/work_program_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	wpDTO "rumahquran_backend/internals/features/workprogram/dto"
	wpModel "rumahquran_backend/internals/features/workprogram/model"
	wpService "rumahquran_backend/internals/features/workprogram/service"
	helper "rumahquran_backend/internals/helpers"
	authmw "rumahquran_backend/internals/middlewares/auth"
)

type WorkProgramController struct {
	DB *gorm.DB
}

func NewWorkProgramController(db *gorm.DB) *WorkProgramController {
	return &WorkProgramController{DB: db}
}

/* ===================== HANDLERS ===================== */

// GET /api/u/work-programs
// Non-MASTER hanya melihat pengajuan di lokasinya; approved_cost ditutup.
func (h *WorkProgramController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	isMaster := authmw.IsMaster(c)

	dbq := scopeToCaller(c, h.DB.Model(&wpModel.WorkProgramModel{}))

	if v := strings.TrimSpace(c.Query("search")); v != "" {
		needle := "%" + strings.ToLower(v) + "%"
		dbq = dbq.Where("LOWER(name) LIKE ?", needle)
	}
	if v := c.Query("submission_status"); v != "" {
		dbq = dbq.Where("submission_status = ?", v)
	}
	if isMaster {
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

	var rows []wpModel.WorkProgramModel
	if err := dbq.Order("created_at DESC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat program kerja")
	}

	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	pg.Count = len(rows)
	return helper.JsonList(c, "", wpDTO.NewWorkProgramResponses(rows, isMaster), &pg)
}

// GET /api/u/work-programs/:id
func (h *WorkProgramController) Detail(c *fiber.Ctx) error {
	m, err := h.findScoped(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "", wpDTO.NewWorkProgramResponse(m, authmw.IsMaster(c)))
}

// POST /api/u/work-programs
// submitted_by diambil dari token, durasi dihitung ulang di server.
func (h *WorkProgramController) Create(c *fiber.Ctx) error {
	var req wpDTO.CreateWorkProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()

	if pid, ok := authmw.GetProfileID(c); ok {
		m.SubmittedBy = &pid
	}
	if !authmw.IsMaster(c) {
		rqID, ok := authmw.GetRumahQuranID(c)
		if !ok {
			return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda belum terikat ke Rumah Quran")
		}
		m.RumahQuranID = &rqID
	}

	if err := wpService.ValidateDateOrder(m); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	wpService.ApplyDerivedDurations(m)

	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengajukan program kerja")
	}
	return helper.JsonCreated(c, "Program kerja berhasil diajukan", wpDTO.NewWorkProgramResponse(m, authmw.IsMaster(c)))
}

// PATCH /api/u/work-programs/:id
// Keputusan (status, approved_cost, verifikasi) hanya untuk MASTER.
func (h *WorkProgramController) Update(c *fiber.Ctx) error {
	var req wpDTO.UpdateWorkProgramRequest
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

	isMaster := authmw.IsMaster(c)
	if !isMaster {
		req.RumahQuranID = nil
		req.ApprovedCost = nil
		req.IsVerifiedByDirector = nil
		// STAFF hanya boleh menandai selesai atau mengirim revisi
		if req.SubmissionStatus != nil {
			s := *req.SubmissionStatus
			if s != "submitted" && s != "completed" {
				return helper.JsonError(c, fiber.StatusForbidden, "Keputusan status hanya untuk MASTER")
			}
		}
	}

	req.ApplyToModel(m)
	if err := wpService.ValidateDateOrder(m); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	wpService.ApplyDerivedDurations(m)

	if err := h.DB.Save(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui program kerja")
	}
	return helper.JsonUpdated(c, "Program kerja diperbarui", wpDTO.NewWorkProgramResponse(m, isMaster))
}

// DELETE /api/u/work-programs/:id (soft delete)
func (h *WorkProgramController) Delete(c *fiber.Ctx) error {
	m, err := h.findScoped(c)
	if err != nil {
		return err
	}
	if err := h.DB.Delete(&wpModel.WorkProgramModel{}, "id = ?", m.ID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus program kerja")
	}
	return helper.JsonDeleted(c, "Program kerja dihapus", fiber.Map{"id": m.ID})
}

/* ===================== INTERNAL ===================== */

func scopeToCaller(c *fiber.Ctx, dbq *gorm.DB) *gorm.DB {
	if authmw.IsMaster(c) {
		return dbq
	}
	if rqID, ok := authmw.GetRumahQuranID(c); ok {
		return dbq.Where("rumah_quran_id = ?", rqID)
	}
	return dbq.Where("1 = 0")
}

func (h *WorkProgramController) findScoped(c *fiber.Ctx) (*wpModel.WorkProgramModel, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	dbq := scopeToCaller(c, h.DB.Model(&wpModel.WorkProgramModel{}))

	var m wpModel.WorkProgramModel
	if err := dbq.First(&m, "work_program_submission.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Program kerja tidak ditemukan")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat program kerja")
	}
	return &m, nil
}
