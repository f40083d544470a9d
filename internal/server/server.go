// Package server assembles the Fiber application.
package server

import (
	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Options tunes the assembled application.
type Options struct {
	// Publisher receives product events; nil disables them.
	Publisher services.EventPublisher
	// AccessLog enables the per-request access log line.
	AccessLog bool
}

// New wires repository, service and handlers into a Fiber app.
func New(repo repositories.ProductRepository, opts Options) *fiber.App {
	productService := services.NewProductService(repo, opts.Publisher)
	productHandler := handlers.NewProductHandler(productService)
	healthHandler := handlers.NewHealthHandler(productService, opts.Publisher != nil)

	app := fiber.New(fiber.Config{
		AppName:      "catalog",
		ErrorHandler: middleware.ErrorHandler,
		UnescapePath: true, // category and seller path segments may contain spaces
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New())
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	healthHandler.RegisterRoutes(app)

	api := app.Group("/api")
	productHandler.RegisterRoutes(api)

	return app
}
