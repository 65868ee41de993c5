// internals/rest/route.go
package rest

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rumahquran_backend/internals/configs"
	authmw "rumahquran_backend/internals/middlewares/auth"
)

// RequireAPIKey memeriksa header `apikey` sebelum request menyentuh data.
func RequireAPIKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get("apikey")
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(configs.RestAPIKey)) != 1 {
			return restError(c, fiber.StatusUnauthorized, "apikey tidak valid")
		}
		return c.Next()
	}
}

// RestRoutes memasang surface /rest/v1. Selain apikey, caller tetap wajib
// membawa JWT; scoping peran dibaca dari klaimnya.
func RestRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := NewController(db)

	g := app.Group("/rest/v1", RequireAPIKey(), authmw.AuthMiddleware(db))
	g.Get("/:table", ctrl.List)
	g.Post("/:table", ctrl.Insert)
	g.Patch("/:table", ctrl.Patch)
	g.Delete("/:table", ctrl.Delete)
}
