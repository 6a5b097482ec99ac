package main

import (
	"fmt"
	"log"
	"time"

	"plan2model/internal/builder/handlers"
	"plan2model/internal/builder/repository"
	"plan2model/internal/builder/service"
	"plan2model/internal/common/config"
	"plan2model/internal/common/middleware"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Plan to 3D Model Service
// ============================================================

func main() {
	cfg := config.Load()

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(cfg.MigrationsPath); err != nil {
		log.Fatalf("init db: %v", err)
	}

	storage := service.NewFileStorage(cfg.UploadDir)
	if err := storage.EnsureRoot(); err != nil {
		log.Fatalf("init storage: %v", err)
	}

	builderHandler := handlers.NewBuilderHandler(repo, storage, cfg.UnitScale, cfg.Tolerance)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Plan Builder Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Builder Routes
	// ============================================================

	app.Post("/upload", builderHandler.Upload)
	app.Get("/parse/:id", builderHandler.Parse)
	app.Get("/generate-model/:id", builderHandler.GenerateModel)
	app.Get("/download/:filename", builderHandler.Download)
	app.Get("/conversions", builderHandler.ListConversions)
	app.Get("/api/status", builderHandler.Status)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Plan Builder Service on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
