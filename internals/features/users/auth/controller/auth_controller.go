// internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	authDTO "rumahquran_backend/internals/features/users/auth/dto"
	authService "rumahquran_backend/internals/features/users/auth/service"
	profileModel "rumahquran_backend/internals/features/users/profile/model"
	helper "rumahquran_backend/internals/helpers"
	authmw "rumahquran_backend/internals/middlewares/auth"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

/* ===================== HANDLERS ===================== */

// POST /api/auth/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	// Cari akun aktif
	var user profileModel.UserModel
	if err := h.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat akun")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}

	// Profil menentukan role & scope; tanpa profil tetap bisa login sebagai STAFF
	profile, err := loadProfileByAuthUser(h.DB, user.ID)
	if err != nil {
		log.Printf("[WARN] profil untuk %s tidak bisa dimuat: %v", user.Email, err)
	}

	access, err := authService.IssueAccessToken(user.ID, user.Email, profile)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}
	refresh, err := authService.IssueRefreshToken(h.DB, user.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat refresh token")
	}

	// last_login di profil (best effort)
	if profile != nil {
		now := time.Now().UTC()
		if err := h.DB.Model(&profileModel.ProfileModel{}).
			Where("id = ?", profile.ID).
			Update("last_login", now).Error; err != nil {
			log.Printf("[WARN] update last_login gagal: %v", err)
		} else {
			profile.LastLogin = &now
		}
	}

	setAuthCookies(c, access, refresh)
	return helper.JsonOK(c, "Login berhasil", authDTO.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         authDTO.UserLite{ID: user.ID, Email: user.Email},
		Profile:      profile,
	})
}

// POST /api/auth/refresh-token
func (h *AuthController) Refresh(c *fiber.Ctx) error {
	raw := refreshTokenFromRequest(c)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak ada")
	}

	userID, err := authService.ConsumeRefreshToken(h.DB, raw)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var user profileModel.UserModel
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak ditemukan")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	profile, _ := loadProfileByAuthUser(h.DB, user.ID)

	access, err := authService.IssueAccessToken(user.ID, user.Email, profile)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}
	refresh, err := authService.IssueRefreshToken(h.DB, user.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat refresh token")
	}

	setAuthCookies(c, access, refresh)
	return helper.JsonOK(c, "Token diperbarui", authDTO.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         authDTO.UserLite{ID: user.ID, Email: user.Email},
		Profile:      profile,
	})
}

// POST /api/auth/logout
func (h *AuthController) Logout(c *fiber.Ctx) error {
	if raw := refreshTokenFromRequest(c); raw != "" {
		if err := authService.RevokeRefreshToken(h.DB, raw); err != nil {
			log.Printf("[WARN] revoke refresh gagal: %v", err)
		}
	}
	clearAuthCookies(c)
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// GET /api/auth/me (di belakang AuthMiddleware)
func (h *AuthController) Me(c *fiber.Ctx) error {
	userID, err := authmw.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var user profileModel.UserModel
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak ditemukan")
	}
	profile, _ := loadProfileByAuthUser(h.DB, user.ID)

	return helper.JsonOK(c, "", authDTO.MeResponse{
		User:    authDTO.UserLite{ID: user.ID, Email: user.Email},
		Profile: profile,
	})
}

/* ===================== INTERNAL ===================== */

func loadProfileByAuthUser(db *gorm.DB, userID uuid.UUID) (*profileModel.ProfileModel, error) {
	var p profileModel.ProfileModel
	if err := db.Where("auth_user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func refreshTokenFromRequest(c *fiber.Ctx) string {
	var body authDTO.RefreshRequest
	if err := c.BodyParser(&body); err == nil && strings.TrimSpace(body.RefreshToken) != "" {
		return strings.TrimSpace(body.RefreshToken)
	}
	return strings.TrimSpace(c.Cookies("refresh_token"))
}

func setAuthCookies(c *fiber.Ctx, access, refresh string) {
	c.Cookie(&fiber.Cookie{
		Name: "access_token", Value: access,
		Expires: time.Now().Add(24 * time.Hour), HTTPOnly: true, SameSite: "Lax",
	})
	c.Cookie(&fiber.Cookie{
		Name: "refresh_token", Value: refresh,
		Expires: time.Now().Add(7 * 24 * time.Hour), HTTPOnly: true, SameSite: "Lax",
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: "access_token", Value: "", Expires: expired, HTTPOnly: true})
	c.Cookie(&fiber.Cookie{Name: "refresh_token", Value: "", Expires: expired, HTTPOnly: true})
}
