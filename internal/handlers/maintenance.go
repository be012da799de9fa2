package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/property-management-api/internal/dto"
	"github.com/yukikurage/property-management-api/internal/models"
	"github.com/yukikurage/property-management-api/internal/services"
	"go.uber.org/zap"
)

// MaintenanceHandler serves maintenance request endpoints.
type MaintenanceHandler struct {
	maintenanceService *services.MaintenanceService
	log                *zap.Logger
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(maintenanceService *services.MaintenanceService, log *zap.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenanceService: maintenanceService,
		log:                log,
	}
}

// Submit files a new request for the tenant's unit.
func (h *MaintenanceHandler) Submit(c *gin.Context) {
	type SubmitRequest struct {
		TenantEmail string `json:"tenantEmail" binding:"required"`
		Title       string `json:"title" binding:"required"`
		Description string `json:"description" binding:"required"`
		Priority    string `json:"priority"`
	}

	var req SubmitRequest
	if !bindJSON(c, &req) {
		return
	}

	request, err := h.maintenanceService.SubmitRequest(c.Request.Context(), services.SubmitMaintenanceInput{
		TenantEmail: req.TenantEmail,
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.MaintenancePriority(req.Priority),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	created(c, gin.H{
		"success": true,
		"message": "Maintenance request submitted successfully",
		"request": dto.ToMaintenanceRequestDTO(*request),
	})
}

// Update changes the status of a request.
func (h *MaintenanceHandler) Update(c *gin.Context) {
	type UpdateRequest struct {
		RequestID uint64  `json:"requestId" binding:"required"`
		Status    string  `json:"status" binding:"required"`
		Response  *string `json:"response"`
	}

	var req UpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	request, err := h.maintenanceService.UpdateRequest(c.Request.Context(), services.UpdateMaintenanceInput{
		RequestID: req.RequestID,
		Status:    models.MaintenanceStatus(req.Status),
		Response:  req.Response,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status updated successfully",
		"request": dto.ToMaintenanceRequestDTO(*request),
	})
}

// ListForOwner returns requests across the owner's properties.
func (h *MaintenanceHandler) ListForOwner(c *gin.Context) {
	ownerEmail, ok := requireQuery(c, "ownerEmail", "Owner email is required")
	if !ok {
		return
	}

	views, err := h.maintenanceService.ListForOwner(c.Request.Context(), ownerEmail)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": dto.ToMaintenanceViewDTOs(views)})
}

// ListForTenant returns the tenant's own requests.
func (h *MaintenanceHandler) ListForTenant(c *gin.Context) {
	tenantEmail, ok := requireQuery(c, "tenantEmail", "Tenant email is required")
	if !ok {
		return
	}

	views, err := h.maintenanceService.ListForTenant(c.Request.Context(), tenantEmail)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": dto.ToMaintenanceViewDTOs(views)})
}
