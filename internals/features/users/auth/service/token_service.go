// internals/features/users/auth/service/token_service.go
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"rumahquran_backend/internals/configs"
	"rumahquran_backend/internals/constants"
	authModel "rumahquran_backend/internals/features/users/auth/model"
	profileModel "rumahquran_backend/internals/features/users/profile/model"
)

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", errors.New("JWT_SECRET belum diset")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		return "", errors.New("JWT_REFRESH_SECRET belum diset")
	}
	return secret, nil
}

// IssueAccessToken membuat access JWT. Klaim role & rumah_quran_id ikut
// di token supaya scoping bisa dipaksa server-side tanpa query tambahan.
func IssueAccessToken(userID uuid.UUID, email string, profile *profileModel.ProfileModel) (string, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}

	role := constants.RoleStaff
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"iat":   nowUTC().Unix(),
		"exp":   nowUTC().Add(accessTTLDefault).Unix(),
	}
	if profile != nil {
		if profile.UserRoles != nil && *profile.UserRoles != "" {
			role = *profile.UserRoles
		}
		claims["profile_id"] = profile.ID
		if profile.RumahQuranID != nil {
			claims["rumah_quran_id"] = *profile.RumahQuranID
		}
	}
	claims["role"] = role

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// computeRefreshHash: yang disimpan di DB hanya HMAC-nya, bukan token mentah.
func computeRefreshHash(token, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

// IssueRefreshToken membuat refresh JWT dan menyimpan hash-nya.
func IssueRefreshToken(db *gorm.DB, userID uuid.UUID) (string, error) {
	secret, err := getRefreshSecret()
	if err != nil {
		return "", err
	}

	expiresAt := nowUTC().Add(refreshTTLDefault)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"jti": uuid.NewString(),
		"iat": nowUTC().Unix(),
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	row := authModel.RefreshToken{
		UserID:    userID,
		Token:     computeRefreshHash(signed, secret),
		ExpiresAt: expiresAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return "", err
	}
	return signed, nil
}

// ConsumeRefreshToken memvalidasi refresh token lalu MENGHAPUS hash-nya
// (rotasi: token lama tidak boleh dipakai dua kali).
func ConsumeRefreshToken(db *gorm.DB, raw string) (uuid.UUID, error) {
	secret, err := getRefreshSecret()
	if err != nil {
		return uuid.Nil, err
	}

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return uuid.Nil, errors.New("refresh token invalid")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, errors.New("refresh token invalid")
	}

	h := computeRefreshHash(raw, secret)
	var row authModel.RefreshToken
	if err := db.Where("token = ? AND revoked_at IS NULL", h).First(&row).Error; err != nil {
		return uuid.Nil, errors.New("refresh token tidak dikenal")
	}
	if nowUTC().After(row.ExpiresAt) {
		return uuid.Nil, errors.New("refresh token kedaluwarsa")
	}

	if err := db.Delete(&authModel.RefreshToken{}, "id = ?", row.ID).Error; err != nil {
		return uuid.Nil, err
	}
	return userID, nil
}

// RevokeRefreshToken menghapus hash refresh token (logout).
func RevokeRefreshToken(db *gorm.DB, raw string) error {
	secret, err := getRefreshSecret()
	if err != nil {
		return err
	}
	h := computeRefreshHash(raw, secret)
	return db.Delete(&authModel.RefreshToken{}, "token = ?", h).Error
}
