// internals/features/rumahquran/route/rumah_quran_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	rqCtrl "rumahquran_backend/internals/features/rumahquran/controller"
)

// RumahQuranUserRoutes: read-only untuk semua pengurus login.
func RumahQuranUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := rqCtrl.NewRumahQuranController(db)

	g := user.Group("/rumah-quran")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.Detail)
}

// RumahQuranMasterRoutes: create/update/delete hanya MASTER.
func RumahQuranMasterRoutes(master fiber.Router, db *gorm.DB) {
	ctrl := rqCtrl.NewRumahQuranController(db)

	g := master.Group("/rumah-quran")
	g.Post("/", ctrl.Create)
	g.Patch("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}
