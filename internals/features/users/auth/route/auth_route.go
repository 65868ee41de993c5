// internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authCtrl "rumahquran_backend/internals/features/users/auth/controller"
	"rumahquran_backend/internals/middlewares"
	authmw "rumahquran_backend/internals/middlewares/auth"
)

func AuthRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := authCtrl.NewAuthController(db)

	g := app.Group("/api/auth")
	g.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	g.Post("/refresh-token", ctrl.Refresh)
	g.Post("/logout", ctrl.Logout)
	g.Get("/me", authmw.AuthMiddleware(db), ctrl.Me)
}
