package handlers

import (
	"pantry-backend/internal/services"
	"pantry-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type DashboardHandler struct {
	service services.DashboardService
	logger  *logrus.Logger
}

func NewDashboardHandler(service services.DashboardService, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger,
	}
}

// GetDashboardStats godoc
// @Summary Get dashboard statistics
// @Description Inventory counts, active languages and translation coverage per language
// @Tags dashboard
// @Produce json
// @Success 200 {object} utils.StandardResponse "Dashboard statistics"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats(c.Context())
	if err != nil {
		return handleServiceError(c, h.logger, err, "Failed to retrieve dashboard statistics")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Dashboard statistics retrieved successfully", stats)
}
