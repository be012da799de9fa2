package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yukikurage/property-management-api/internal/dto"
	apierrors "github.com/yukikurage/property-management-api/internal/errors"
	"github.com/yukikurage/property-management-api/internal/services"
	"github.com/yukikurage/property-management-api/internal/utils"
	"go.uber.org/zap"
)

// TenantHandler serves tenancy endpoints.
type TenantHandler struct {
	tenantService     *services.TenantService
	connectionService *services.ConnectionService
	dashboardService  *services.DashboardService
	log               *zap.Logger
}

// NewTenantHandler creates a new TenantHandler.
func NewTenantHandler(tenantService *services.TenantService, connectionService *services.ConnectionService, dashboardService *services.DashboardService, log *zap.Logger) *TenantHandler {
	return &TenantHandler{
		tenantService:     tenantService,
		connectionService: connectionService,
		dashboardService:  dashboardService,
		log:               log,
	}
}

// ValidateCode reports whether a connection code can be redeemed.
func (h *TenantHandler) ValidateCode(c *gin.Context) {
	code, ok := requireQuery(c, "connectionCode", "Connection code is required")
	if !ok {
		return
	}

	validated, err := h.connectionService.ValidateCode(c.Request.Context(), code)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":      true,
		"property":   dto.ToCodePropertyDTO(*validated),
		"expires_at": validated.Code.ExpiresAt,
	})
}

// ConnectWithCode attaches a tenant account to the unit behind a code.
func (h *TenantHandler) ConnectWithCode(c *gin.Context) {
	type ConnectRequest struct {
		Code        string `json:"code" binding:"required"`
		TenantEmail string `json:"tenantEmail" binding:"required"`
	}

	var req ConnectRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.connectionService.ConnectWithCode(c.Request.Context(), services.ConnectInput{
		Code:        req.Code,
		TenantEmail: req.TenantEmail,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Successfully connected to property!",
		"property": dto.ToCodePropertyDTO(*result),
	})
}

// AddTenant places a tenant into a unit directly.
func (h *TenantHandler) AddTenant(c *gin.Context) {
	type AddTenantRequest struct {
		PropertyID  uint64           `json:"propertyId" binding:"required"`
		TenantEmail string           `json:"tenantEmail" binding:"required"`
		Unit        string           `json:"unit" binding:"required"`
		RentAmount  *decimal.Decimal `json:"rentAmount" binding:"required"`
		RentDueDate string           `json:"rentDueDate"`
	}

	var req AddTenantRequest
	if !bindJSON(c, &req) {
		return
	}

	dueDate, err := utils.ParseOptionalDate(req.RentDueDate)
	if err != nil {
		apierrors.BadRequest(c, "Invalid rent due date")
		return
	}

	tenant, err := h.tenantService.AddTenant(c.Request.Context(), services.AddTenantInput{
		PropertyID:  req.PropertyID,
		TenantEmail: req.TenantEmail,
		Unit:        req.Unit,
		RentAmount:  *req.RentAmount,
		RentDueDate: dueDate,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	created(c, gin.H{
		"message": "Tenant added successfully",
		"tenant":  dto.ToTenantDTO(*tenant),
	})
}

// RemoveTenant deletes a tenancy and its payments and reminders.
func (h *TenantHandler) RemoveTenant(c *gin.Context) {
	type RemoveTenantRequest struct {
		TenantID uint64 `json:"tenantId" binding:"required"`
	}

	var req RemoveTenantRequest
	if !bindJSON(c, &req) {
		return
	}

	removal, err := h.tenantService.RemoveTenant(c.Request.Context(), req.TenantID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tenant removed successfully",
		"tenant":  dto.ToTenantDTO(removal.Tenant),
		"cleanup": dto.TenantCleanupDTO{
			PaymentsRemoved:  removal.PaymentsRemoved,
			RemindersRemoved: removal.RemindersRemoved,
		},
	})
}

// ListTenants returns the tenants of an owner's properties.
func (h *TenantHandler) ListTenants(c *gin.Context) {
	ownerEmail, ok := requireQuery(c, "ownerEmail", "Owner email is required")
	if !ok {
		return
	}

	tenants, err := h.tenantService.ListTenants(c.Request.Context(), ownerEmail)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tenants": dto.ToTenantListItemDTOs(tenants)})
}

// Dashboard returns the tenant's own dashboard.
func (h *TenantHandler) Dashboard(c *gin.Context) {
	tenantEmail, ok := requireQuery(c, "tenantEmail", "Tenant email is required")
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.TenantDashboard(c.Request.Context(), tenantEmail)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTenantDashboardDTO(*dashboard))
}
