package handlers

import (
	"log"

	"dukaan/internal/services"

	"github.com/gofiber/fiber/v2"
)

// StatsHandler serves the admin dashboard statistics.
type StatsHandler struct {
	service *services.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(service *services.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// RegisterAdminRoutes registers the stats route on an already
// admin-protected router group.
func (h *StatsHandler) RegisterAdminRoutes(admin fiber.Router) {
	admin.Get("/stats", h.HandleGetStats)
}

// HandleGetStats returns aggregate store statistics.
func (h *StatsHandler) HandleGetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats()
	if err != nil {
		log.Printf("Error getting stats: %v", err)
		return respondError(c, "Could not retrieve statistics", err)
	}
	return c.JSON(stats)
}
