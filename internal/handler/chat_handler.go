package handler

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kovaldeepai/server/internal/models"
	"github.com/kovaldeepai/server/internal/service"
)

// maxMessageLen is the hard cap on an inbound chat message.
const maxMessageLen = 2000

// ChatHandler wires HTTP → ChatService.
type ChatHandler struct {
	svc service.ChatService
}

// NewChatHandler returns a struct pointer so you can call Register on it.
func NewChatHandler(svc service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// Register mounts the /chat endpoint on the supplied router group.
func (h *ChatHandler) Register(r fiber.Router) {
	r.Post("/chat", h.chat)
}

// chat handles POST /chat {"message": "...", "userId": "...", "profile": {...}}.
//
// Only input validation produces a non-200: empty or oversized messages are
// rejected with 400 before any downstream call. Everything past validation
// degrades inside the service to a chat-shaped payload.
func (h *ChatHandler) chat(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "message is required")
	}
	if len(req.Message) > maxMessageLen {
		return fiber.NewError(fiber.StatusBadRequest, "message exceeds 2000 characters")
	}

	resp, saved := h.svc.Chat(c.UserContext(), req)

	// Detach from the memory save; the reply never waits on persistence.
	go func(userID string) {
		if err := <-saved; err != nil {
			log.Printf("[Chat Handler] memory save failed for user %s: %v", userID, err)
		}
	}(req.UserID)

	return c.JSON(resp)
}
