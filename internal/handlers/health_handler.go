package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler answers GET /health.
type HealthHandler struct {
	store         Pinger
	eventsEnabled bool
}

// NewHealthHandler reports store reachability and whether events are on.
func NewHealthHandler(store Pinger, eventsEnabled bool) *HealthHandler {
	return &HealthHandler{store: store, eventsEnabled: eventsEnabled}
}

// RegisterRoutes mounts /health on router.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	database := "up"
	if err := h.store.Ping(ctx); err != nil {
		database = "down"
	}
	events := "disabled"
	if h.eventsEnabled {
		events = "enabled"
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "healthy",
		"time":     time.Now().Format(time.RFC3339),
		"database": database,
		"events":   events,
	})
}
