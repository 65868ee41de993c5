// internals/route/index.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rumahquran_backend/internals/constants"
	dashRoute "rumahquran_backend/internals/features/dashboard/route"
	rqRoute "rumahquran_backend/internals/features/rumahquran/route"
	santriRoute "rumahquran_backend/internals/features/santri/route"
	authRoute "rumahquran_backend/internals/features/users/auth/route"
	profileRoute "rumahquran_backend/internals/features/users/profile/route"
	wpRoute "rumahquran_backend/internals/features/workprogram/route"
	authmw "rumahquran_backend/internals/middlewares/auth"
	"rumahquran_backend/internals/rest"
)

// SetupRoutes memasang seluruh route aplikasi:
//   - /api/auth  → login/refresh/logout (tanpa JWT)
//   - /api/u     → fitur pengurus login (JWT)
//   - /api/a     → fitur admin pusat (JWT + MASTER)
//   - /rest/v1   → surface data generik untuk klien tabledata
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	authRoute.AuthRoutes(app, db)

	user := app.Group("/api/u", authmw.AuthMiddleware(db))
	profileRoute.ProfileUserRoutes(user, db)
	rqRoute.RumahQuranUserRoutes(user, db)
	santriRoute.SantriUserRoutes(user, db)
	wpRoute.WorkProgramUserRoutes(user, db)
	dashRoute.DashboardUserRoutes(user, db)

	master := app.Group("/api/a",
		authmw.AuthMiddleware(db),
		authmw.OnlyRolesSlice(constants.RoleErrorMaster("admin pusat"), constants.MasterOnly),
	)
	profileRoute.ProfileMasterRoutes(master, db)
	rqRoute.RumahQuranMasterRoutes(master, db)

	rest.RestRoutes(app, db)
}
