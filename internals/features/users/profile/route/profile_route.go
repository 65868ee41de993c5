// internals/features/users/profile/route/profile_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	pCtrl "rumahquran_backend/internals/features/users/profile/controller"
)

// ProfileUserRoutes: semua pengurus login → profil sendiri.
func ProfileUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := pCtrl.NewProfileController(db)

	g := user.Group("/profiles")
	g.Get("/me", ctrl.MyProfile)
	g.Patch("/me", ctrl.UpdateMine)
}

// ProfileMasterRoutes: manajemen pengurus lintas lokasi (MASTER).
func ProfileMasterRoutes(master fiber.Router, db *gorm.DB) {
	ctrl := pCtrl.NewProfileController(db)

	g := master.Group("/profiles")
	g.Get("/", ctrl.List)
	g.Post("/", ctrl.Create)
	g.Get("/:id", ctrl.Detail)
	g.Patch("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}
