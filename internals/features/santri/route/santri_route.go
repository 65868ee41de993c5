// internals/features/santri/route/santri_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sCtrl "rumahquran_backend/internals/features/santri/controller"
)

// SantriUserRoutes: CRUD santri untuk pengurus login.
// Scoping per Rumah Quran dipaksa di controller, bukan di sini.
func SantriUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := sCtrl.NewSantriController(db)

	g := user.Group("/santri")
	g.Get("/", ctrl.List)
	g.Post("/", ctrl.Create)
	g.Get("/:id", ctrl.Detail)
	g.Patch("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}
