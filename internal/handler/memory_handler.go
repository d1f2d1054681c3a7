package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kovaldeepai/server/internal/service"
)

// MemoryHandler exposes read-only inspection of per-user chat memory.
type MemoryHandler struct {
	memory service.MemoryStore
}

// NewMemoryHandler creates a MemoryHandler instance.
func NewMemoryHandler(memory service.MemoryStore) *MemoryHandler {
	return &MemoryHandler{memory: memory}
}

// Register mounts GET /memory/:userId on the supplied router group.
func (h *MemoryHandler) Register(r fiber.Router) {
	r.Get("/memory/:userId", h.get)
}

// get handles GET /memory/:userId. Entries are returned most-recent-first;
// an unknown user gets an empty record, not a 404, matching the store's
// never-fail contract.
func (h *MemoryHandler) get(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "userId is required")
	}

	rec := h.memory.Fetch(c.UserContext(), userID)
	return c.JSON(fiber.Map{
		"userId":    rec.UserID,
		"entries":   rec.DisplayEntries(),
		"profile":   rec.Profile,
		"updatedAt": rec.UpdatedAt,
	})
}
