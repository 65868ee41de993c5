// internals/route/setup_test.go
package route_test

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rumahquran_backend/internals/configs"
	rqModel "rumahquran_backend/internals/features/rumahquran/model"
	sModel "rumahquran_backend/internals/features/santri/model"
	authModel "rumahquran_backend/internals/features/users/auth/model"
	userModel "rumahquran_backend/internals/features/users/profile/model"
	wpModel "rumahquran_backend/internals/features/workprogram/model"
	"rumahquran_backend/internals/route"
)

var dbSeq int64

// newTestApp membangun app lengkap di atas SQLite in-memory.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	configs.JWTSecret = "test-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"
	configs.RestAPIKey = "test-apikey"

	dsn := fmt.Sprintf("file:routetest%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&userModel.ProfileModel{},
		&authModel.RefreshToken{},
		&rqModel.RumahQuranModel{},
		&sModel.SantriModel{},
		&wpModel.WorkProgramModel{},
	))

	app := fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
	})
	route.SetupRoutes(app, db)
	return app, db
}

const testPassword = "rahasia-123"

// seedAccount membuat user+profile dengan role dan scope tertentu.
func seedAccount(t *testing.T, db *gorm.DB, email, role string, rumahQuranID *int64) userModel.ProfileModel {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := userModel.UserModel{Email: email, PasswordHash: string(hash), IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	name := "Pengurus " + email
	profile := userModel.ProfileModel{
		AuthUserID:   &user.ID,
		Name:         &name,
		Email:        &email,
		UserRoles:    &role,
		RumahQuranID: rumahQuranID,
	}
	require.NoError(t, db.Create(&profile).Error)
	return profile
}

func seedRumahQuran(t *testing.T, db *gorm.DB, code, name string) rqModel.RumahQuranModel {
	t.Helper()
	m := rqModel.RumahQuranModel{Code: code, Name: name, IsActive: true}
	require.NoError(t, db.Create(&m).Error)
	return m
}

/* ===================== HTTP helpers ===================== */

type testResponse struct {
	Status int
	Body   map[string]interface{}
	Raw    []byte
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}, token string) testResponse {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := sonic.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
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

// login mengembalikan access token + refresh token.
func login(t *testing.T, app *fiber.App, email string) (string, string) {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"email":    email,
		"password": testPassword,
	}, "")
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Raw))

	data, ok := resp.Body["data"].(map[string]interface{})
	require.True(t, ok, "login tanpa data: %s", string(resp.Raw))
	access, _ := data["access_token"].(string)
	refresh, _ := data["refresh_token"].(string)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	return access, refresh
}

func dataOf(t *testing.T, resp testResponse) map[string]interface{} {
	t.Helper()
	data, ok := resp.Body["data"].(map[string]interface{})
	require.True(t, ok, "respons tanpa data object: %s", string(resp.Raw))
	return data
}

func listOf(t *testing.T, resp testResponse) []interface{} {
	t.Helper()
	data, ok := resp.Body["data"].([]interface{})
	require.True(t, ok, "respons tanpa data list: %s", string(resp.Raw))
	return data
}

func dateISO(y int, m time.Month, d int) string {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
