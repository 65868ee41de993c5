package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"rumahquran_backend/internals/configs"
	database "rumahquran_backend/internals/databases"
	rqModel "rumahquran_backend/internals/features/rumahquran/model"
	sModel "rumahquran_backend/internals/features/santri/model"
	authModel "rumahquran_backend/internals/features/users/auth/model"
	userModel "rumahquran_backend/internals/features/users/profile/model"
	wpModel "rumahquran_backend/internals/features/workprogram/model"
	"rumahquran_backend/internals/middlewares"
	"rumahquran_backend/internals/route"
	"rumahquran_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	if err := database.DB.AutoMigrate(
		&userModel.UserModel{},
		&userModel.ProfileModel{},
		&authModel.RefreshToken{},
		&rqModel.RumahQuranModel{},
		&sModel.SantriModel{},
		&wpModel.WorkProgramModel{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}

	seeds.SeedInitialData(database.DB)

	app := fiber.New(fiber.Config{
		AppName:      "Rumah Quran Backend",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	middlewares.SetupMiddlewares(app)
	app.Use(requestid.New())
	app.Use(etag.New())
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	route.SetupRoutes(app, database.DB)

	// Graceful shutdown: tunggu sinyal, beri waktu request in-flight selesai
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutdown signal diterima, menutup server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("shutdown err: %v", err)
		}
	}()

	port := configs.GetEnv("PORT", "3000")
	log.Printf("🚀 Server jalan di port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("❌ Server berhenti: %v", err)
	}
}
