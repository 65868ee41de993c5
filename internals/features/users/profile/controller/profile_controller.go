// internals/features/users/profile/controller/profile_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	rqService "rumahquran_backend/internals/features/rumahquran/service"
	pDTO "rumahquran_backend/internals/features/users/profile/dto"
	pModel "rumahquran_backend/internals/features/users/profile/model"
	helper "rumahquran_backend/internals/helpers"
	authmw "rumahquran_backend/internals/middlewares/auth"
)

type ProfileController struct {
	DB *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{DB: db}
}

/* ===================== HANDLERS ===================== */

// GET /api/a/profiles (MASTER)
func (h *ProfileController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	dbq := h.DB.Model(&pModel.ProfileModel{})
	if v := strings.TrimSpace(c.Query("search")); v != "" {
		needle := "%" + strings.ToLower(v) + "%"
		dbq = dbq.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", needle, needle)
	}
	if v := c.Query("rumah_quran_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			dbq = dbq.Where("rumah_quran_id = ?", id)
		}
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

	var rows []pModel.ProfileModel
	if err := dbq.Order("name ASC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat data pengurus")
	}

	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	pg.Count = len(rows)
	return helper.JsonList(c, "", pDTO.NewProfileResponses(rows), &pg)
}

// GET /api/u/profiles/me
func (h *ProfileController) MyProfile(c *fiber.Ctx) error {
	userID, err := authmw.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	var m pModel.ProfileModel
	if err := h.DB.Where("auth_user_id = ?", userID).First(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Profil tidak ditemukan")
	}
	return helper.JsonOK(c, "", pDTO.NewProfileResponse(&m))
}

// GET /api/a/profiles/:id (MASTER)
func (h *ProfileController) Detail(c *fiber.Ctx) error {
	m, err := h.findByID(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "", pDTO.NewProfileResponse(m))
}

// POST /api/a/profiles (MASTER): akun login + profil sekaligus
func (h *ProfileController) Create(c *fiber.Ctx) error {
	var req pDTO.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user := pModel.UserModel{Email: email, PasswordHash: string(hash), IsActive: true}
	profile := pModel.ProfileModel{
		Name:         &req.Name,
		Email:        &email,
		UserRoles:    req.UserRoles,
		Position:     req.Position,
		RumahQuranID: req.RumahQuranID,
		Birthdate:    req.Birthdate,
		Birthplace:   req.Birthplace,
		Address:      req.Address,
		PhoneNumber:  req.PhoneNumber,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile.AuthUserID = &user.ID
		return tx.Create(&profile).Error
	})
	if err != nil {
		if rqService.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mendaftarkan pengurus")
	}

	return helper.JsonCreated(c, "Pengurus berhasil didaftarkan", pDTO.NewProfileResponse(&profile))
}

// PATCH /api/u/profiles/me — pengurus mengubah profilnya sendiri.
// Field role/scope (user_roles, rumah_quran_id, is_active) diabaikan di sini.
func (h *ProfileController) UpdateMine(c *fiber.Ctx) error {
	userID, err := authmw.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req pDTO.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	req.UserRoles = nil
	req.RumahQuranID = nil
	req.IsActive = nil

	var m pModel.ProfileModel
	if err := h.DB.Where("auth_user_id = ?", userID).First(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Profil tidak ditemukan")
	}
	req.ApplyToModel(&m)
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui profil")
	}
	return helper.JsonUpdated(c, "Profil diperbarui", pDTO.NewProfileResponse(&m))
}

// PATCH /api/a/profiles/:id (MASTER)
func (h *ProfileController) Update(c *fiber.Ctx) error {
	var req pDTO.UpdateProfileRequest
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
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui profil")
	}

	// is_active ikut dicerminkan ke akun login
	if req.IsActive != nil && m.AuthUserID != nil {
		if err := h.DB.Model(&pModel.UserModel{}).
			Where("id = ?", *m.AuthUserID).
			Update("is_active", *req.IsActive).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui status akun")
		}
	}

	return helper.JsonUpdated(c, "Profil diperbarui", pDTO.NewProfileResponse(m))
}

// DELETE /api/a/profiles/:id (MASTER, soft delete)
func (h *ProfileController) Delete(c *fiber.Ctx) error {
	m, err := h.findByID(c)
	if err != nil {
		return err
	}
	if err := h.DB.Delete(&pModel.ProfileModel{}, "id = ?", m.ID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus profil")
	}
	return helper.JsonDeleted(c, "Profil dihapus", fiber.Map{"id": m.ID})
}

/* ===================== INTERNAL ===================== */

func (h *ProfileController) findByID(c *fiber.Ctx) (*pModel.ProfileModel, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	var m pModel.ProfileModel
	if err := h.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Profil tidak ditemukan")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat profil")
	}
	return &m, nil
}
