// internals/features/dashboard/controller/dashboard_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rumahquran_backend/internals/constants"
	dashDTO "rumahquran_backend/internals/features/dashboard/dto"
	rqModel "rumahquran_backend/internals/features/rumahquran/model"
	sModel "rumahquran_backend/internals/features/santri/model"
	pModel "rumahquran_backend/internals/features/users/profile/model"
	wpDTO "rumahquran_backend/internals/features/workprogram/dto"
	wpModel "rumahquran_backend/internals/features/workprogram/model"
	helper "rumahquran_backend/internals/helpers"
	authmw "rumahquran_backend/internals/middlewares/auth"
)

const recentProgramLimit = 5

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// GET /api/u/dashboard
// Bentuk respons mengikuti peran: MASTER lihat seluruh yayasan,
// pengurus hanya lokasinya sendiri.
func (h *DashboardController) Summary(c *fiber.Ctx) error {
	if authmw.IsMaster(c) {
		return h.masterSummary(c)
	}
	return h.staffSummary(c)
}

func (h *DashboardController) masterSummary(c *fiber.Ctx) error {
	var resp dashDTO.MasterDashboardResponse

	counts := []struct {
		dst *int64
		q   *gorm.DB
	}{
		{&resp.TotalRumahQuran, h.DB.Model(&rqModel.RumahQuranModel{})},
		{&resp.ActiveRumahQuran, h.DB.Model(&rqModel.RumahQuranModel{}).Where("is_active = ?", true)},
		{&resp.TotalPrograms, h.DB.Model(&wpModel.WorkProgramModel{})},
		{&resp.PendingSubmissions, h.DB.Model(&wpModel.WorkProgramModel{}).Where("submission_status IN ?", []string{constants.SubmissionStatusSubmitted, constants.SubmissionStatusRevised})},
		{&resp.ApprovedPrograms, h.DB.Model(&wpModel.WorkProgramModel{}).Where("submission_status = ?", constants.SubmissionStatusApproved)},
		{&resp.TotalUsers, h.DB.Model(&pModel.ProfileModel{})},
		{&resp.TotalSantri, h.DB.Model(&sModel.SantriModel{})},
	}
	for _, cq := range counts {
		if err := cq.q.Count(cq.dst).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat ringkasan")
		}
	}

	var staff []pModel.ProfileModel
	if err := h.DB.Model(&pModel.ProfileModel{}).
		Where("user_roles IS NULL OR user_roles <> ?", constants.RoleMaster).
		Order("name ASC").Limit(50).Find(&staff).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat daftar pengurus")
	}
	resp.Staff = make([]dashDTO.StaffSummary, 0, len(staff))
	for i := range staff {
		p := &staff[i]
		resp.Staff = append(resp.Staff, dashDTO.StaffSummary{
			ID:           p.ID,
			Name:         p.Name,
			Email:        p.Email,
			Position:     p.Position,
			RumahQuranID: p.RumahQuranID,
			IsActive:     p.IsActive,
		})
	}

	recent, err := h.recentPrograms(nil)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat program terbaru")
	}
	resp.RecentPrograms = wpDTO.NewWorkProgramResponses(recent, true)

	return helper.JsonOK(c, "", resp)
}

func (h *DashboardController) staffSummary(c *fiber.Ctx) error {
	var resp dashDTO.StaffDashboardResponse

	rqID, hasScope := authmw.GetRumahQuranID(c)
	if hasScope {
		var rq rqModel.RumahQuranModel
		err := h.DB.First(&rq, "id = ?", rqID).Error
		switch {
		case err == nil:
			resp.RumahQuran = &dashDTO.FacilitySummary{
				ID:       rq.ID,
				Code:     rq.Code,
				Name:     rq.Name,
				Address:  rq.Address,
				Location: rq.Location,
				IsActive: rq.IsActive,
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat Rumah Quran")
		}
	}

	scoped := func(q *gorm.DB) *gorm.DB {
		if !hasScope {
			return q.Where("1 = 0")
		}
		return q.Where("rumah_quran_id = ?", rqID)
	}

	counts := []struct {
		dst *int64
		q   *gorm.DB
	}{
		{&resp.TotalPrograms, scoped(h.DB.Model(&wpModel.WorkProgramModel{}))},
		{&resp.PendingSubmissions, scoped(h.DB.Model(&wpModel.WorkProgramModel{})).Where("submission_status IN ?", []string{constants.SubmissionStatusSubmitted, constants.SubmissionStatusRevised})},
		{&resp.ApprovedPrograms, scoped(h.DB.Model(&wpModel.WorkProgramModel{})).Where("submission_status = ?", constants.SubmissionStatusApproved)},
		{&resp.TotalSantri, scoped(h.DB.Model(&sModel.SantriModel{}))},
	}
	for _, cq := range counts {
		if err := cq.q.Count(cq.dst).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat ringkasan")
		}
	}

	var scope *int64
	if hasScope {
		scope = &rqID
	}
	recent, err := h.recentPrograms(scope)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat program terbaru")
	}
	resp.RecentPrograms = wpDTO.NewWorkProgramResponses(recent, false)

	return helper.JsonOK(c, "", resp)
}

func (h *DashboardController) recentPrograms(rumahQuranID *int64) ([]wpModel.WorkProgramModel, error) {
	q := h.DB.Model(&wpModel.WorkProgramModel{})
	if rumahQuranID != nil {
		q = q.Where("rumah_quran_id = ?", *rumahQuranID)
	}
	var rows []wpModel.WorkProgramModel
	if err := q.Order("created_at DESC").Limit(recentProgramLimit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
