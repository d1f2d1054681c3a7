package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler reports component liveness.
type HealthHandler struct {
	db     *mongo.Client
	aiMode string // "vertex" or "static"
}

// NewHealthHandler creates a HealthHandler instance.
func NewHealthHandler(db *mongo.Client, aiMode string) *HealthHandler {
	return &HealthHandler{db: db, aiMode: aiMode}
}

// Register mounts GET /health at the app root.
func (h *HealthHandler) Register(r fiber.Router) {
	r.Get("/health", h.health)
}

func (h *HealthHandler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "ok",
		"database": h.checkDB(),
		"ai":       h.aiMode,
	})
}

func (h *HealthHandler) checkDB() string {
	if h.db == nil {
		return "not_configured"
	}
	if err := h.db.Ping(context.Background(), nil); err != nil {
		return "error"
	}
	return "connected"
}
