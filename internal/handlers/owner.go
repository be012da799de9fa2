package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/property-management-api/internal/dto"
	"github.com/yukikurage/property-management-api/internal/services"
	"go.uber.org/zap"
)

// OwnerHandler serves the owner dashboards.
type OwnerHandler struct {
	dashboardService *services.DashboardService
	log              *zap.Logger
}

// NewOwnerHandler creates a new OwnerHandler.
func NewOwnerHandler(dashboardService *services.DashboardService, log *zap.Logger) *OwnerHandler {
	return &OwnerHandler{
		dashboardService: dashboardService,
		log:              log,
	}
}

// Dashboard returns the owner overview. Unknown owners get an empty one.
func (h *OwnerHandler) Dashboard(c *gin.Context) {
	ownerEmail, ok := requireQuery(c, "ownerEmail", "Owner email is required")
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.OwnerDashboard(c.Request.Context(), ownerEmail)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOwnerDashboardDTO(*dashboard))
}

// Stats returns occupancy and revenue figures.
func (h *OwnerHandler) Stats(c *gin.Context) {
	ownerEmail, ok := requireQuery(c, "ownerEmail", "Owner email is required")
	if !ok {
		return
	}

	stats, err := h.dashboardService.OwnerStats(c.Request.Context(), ownerEmail)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": dto.ToOwnerStatsDTO(*stats)})
}
