// internals/features/workprogram/route/work_program_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	wpCtrl "rumahquran_backend/internals/features/workprogram/controller"
)

// WorkProgramUserRoutes: pengajuan & pelaporan program kerja.
// Keputusan MASTER (approve/reject, approved_cost) dijaga di controller.
func WorkProgramUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := wpCtrl.NewWorkProgramController(db)

	g := user.Group("/work-programs")
	g.Get("/", ctrl.List)
	g.Post("/", ctrl.Create)
	g.Get("/:id", ctrl.Detail)
	g.Patch("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}
