// internals/features/dashboard/route/dashboard_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dashCtrl "rumahquran_backend/internals/features/dashboard/controller"
)

func DashboardUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := dashCtrl.NewDashboardController(db)
	user.Get("/dashboard", ctrl.Summary)
}
