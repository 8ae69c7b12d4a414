package main

import (
	"log"

	"todoweb/config"
	"todoweb/database"
	"todoweb/routes"
	"todoweb/sessions"
	"todoweb/views"

	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg := config.Load()

	// Initialize the database connection on startup.
	database.Connect(cfg)

	// Sessions live in process memory unless a Redis address is configured.
	var storage fiber.Storage
	if cfg.RedisAddr != "" {
		database.ConnectRedis(cfg)
		storage = database.NewRedisStorage(database.Rdb)
	}
	sessions.Init(storage)

	app := fiber.New(fiber.Config{
		Views:       views.Engine(),
		ViewsLayout: views.Layout,
	})

	routes.SetupRoutes(app, cfg.JWTSecret)

	log.Printf("Starting server on %s...", cfg.AppAddr)
	if err := app.Listen(cfg.AppAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
