package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kovaldeepai/server/internal/service"
)

// RegisterRoutes mounts every API handler under /api/v1.
func RegisterRoutes(app *fiber.App,
	chatSvc service.ChatService,
	analysisSvc service.AnalysisService,
	dives service.DiveStore,
	memory service.MemoryStore,
) {
	v1 := app.Group("/api/v1")
	NewChatHandler(chatSvc).Register(v1)
	NewDiveHandler(dives, analysisSvc).Register(v1)
	NewMemoryHandler(memory).Register(v1)
}
