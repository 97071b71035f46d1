package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/AlissonS47/backend-assessment/internal/config"
	"github.com/AlissonS47/backend-assessment/internal/handler"
	"github.com/AlissonS47/backend-assessment/internal/middleware"
	"github.com/AlissonS47/backend-assessment/internal/repository"
	"github.com/AlissonS47/backend-assessment/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService service.AuthService) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	users := v1.Group("/users")
	users.Post("/registration", h.Auth.Register)
	users.Post("/login", h.Auth.Login)
	users.Post("/login/refresh", h.Auth.RefreshToken)

	protected := v1.Group("", middleware.AuthRequired(authService))

	requests := protected.Group("/requests")
	requests.Post("/", h.Request.Create)
	requests.Get("/", h.Request.List)
	requests.Get("/:requestId", h.Request.Get)
	requests.Patch("/:requestId", h.Request.UpdateStatus)
	requests.Delete("/:requestId", h.Request.Delete)
}
