package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kovaldeepai/server/internal/models"
	"github.com/kovaldeepai/server/internal/service"
)

// Bounds on the recent dive slice served to clients.
const (
	defaultDiveLimit = 10
	maxDiveLimit     = 50
)

// DiveHandler wires HTTP → dive storage and pattern analysis.
type DiveHandler struct {
	dives    service.DiveStore
	analysis service.AnalysisService
}

// NewDiveHandler creates a DiveHandler instance.
func NewDiveHandler(dives service.DiveStore, analysis service.AnalysisService) *DiveHandler {
	return &DiveHandler{dives: dives, analysis: analysis}
}

// Register mounts the dive log endpoints on the supplied router group.
func (h *DiveHandler) Register(r fiber.Router) {
	r.Get("/divelogs/:userId", h.recent)
	r.Post("/divelogs", h.create)
	r.Get("/divelogs/:userId/analysis", h.analyze)
}

// recent handles GET /divelogs/:userId?limit=10
func (h *DiveHandler) recent(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "userId is required")
	}

	limit := defaultDiveLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}
	if limit > maxDiveLimit {
		limit = maxDiveLimit
	}

	dives, err := h.dives.Recent(c.UserContext(), userID, limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if dives == nil {
		dives = []models.DiveLog{}
	}
	return c.JSON(dives)
}

// create handles POST /divelogs
func (h *DiveHandler) create(c *fiber.Ctx) error {
	var dive models.DiveLog
	if err := c.BodyParser(&dive); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if dive.UserID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "userId is required")
	}
	if dive.Date.IsZero() {
		dive.Date = time.Now().UTC()
	}

	saved, err := h.dives.Insert(c.UserContext(), dive)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

// analyze handles GET /divelogs/:userId/analysis
func (h *DiveHandler) analyze(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "userId is required")
	}

	analysis, err := h.analysis.AnalyzePatterns(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(analysis)
}
