package middlewares

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// RecoveryMiddleware menangkap panic supaya request jatuh ke 500,
// bukan mematikan proses. Panic dicatat berikut route yang memicunya.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Printf("[RECOVER] panic di %s %s: %v", c.Method(), c.Path(), e)
		},
	})
}
