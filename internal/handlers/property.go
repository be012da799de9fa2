package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yukikurage/property-management-api/internal/dto"
	"github.com/yukikurage/property-management-api/internal/services"
	"go.uber.org/zap"
)

// PropertyHandler serves property and connection-code endpoints.
type PropertyHandler struct {
	propertyService   *services.PropertyService
	connectionService *services.ConnectionService
	log               *zap.Logger
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(propertyService *services.PropertyService, connectionService *services.ConnectionService, log *zap.Logger) *PropertyHandler {
	return &PropertyHandler{
		propertyService:   propertyService,
		connectionService: connectionService,
		log:               log,
	}
}

// ListProperties returns the properties of an owner.
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	ownerEmail, ok := requireQuery(c, "ownerEmail", "Owner email is required")
	if !ok {
		return
	}

	properties, err := h.propertyService.ListProperties(c.Request.Context(), ownerEmail)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"properties": dto.ToPropertyDTOs(properties)})
}

// AddProperty registers a property for an owner.
func (h *PropertyHandler) AddProperty(c *gin.Context) {
	type AddPropertyRequest struct {
		Name         string           `json:"name" binding:"required"`
		Address      string           `json:"address" binding:"required"`
		PropertyType string           `json:"property_type"`
		TotalUnits   *int             `json:"total_units"`
		RentAmount   *decimal.Decimal `json:"rent_amount"`
		OwnerEmail   string           `json:"ownerEmail" binding:"required"`
	}

	var req AddPropertyRequest
	if !bindJSON(c, &req) {
		return
	}

	property, err := h.propertyService.AddProperty(c.Request.Context(), services.AddPropertyInput{
		Name:         req.Name,
		Address:      req.Address,
		PropertyType: req.PropertyType,
		TotalUnits:   req.TotalUnits,
		RentAmount:   req.RentAmount,
		OwnerEmail:   req.OwnerEmail,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	created(c, gin.H{
		"success":  true,
		"message":  "Property added successfully",
		"property": dto.ToPropertyDTO(*property),
	})
}

// RemoveProperty deletes a property that has no tenants.
func (h *PropertyHandler) RemoveProperty(c *gin.Context) {
	id, ok := parseID(c, c.Param("id"), "Invalid property ID")
	if !ok {
		return
	}

	removal, err := h.propertyService.RemoveProperty(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Property removed successfully",
		"property": dto.ToPropertyDTO(removal.Property),
		"cleanup": dto.PropertyCleanupDTO{
			ConnectionCodesRemoved: removal.ConnectionCodesRemoved,
		},
	})
}

// OccupiedUnits lists units currently held by tenants.
func (h *PropertyHandler) OccupiedUnits(c *gin.Context) {
	raw, ok := requireQuery(c, "propertyId", "Property ID is required")
	if !ok {
		return
	}
	id, ok := parseID(c, raw, "Invalid property ID")
	if !ok {
		return
	}

	units, err := h.propertyService.OccupiedUnits(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"occupied_units": units})
}

// GenerateCode issues a connection code for a unit.
func (h *PropertyHandler) GenerateCode(c *gin.Context) {
	type GenerateCodeRequest struct {
		PropertyID uint64           `json:"propertyId" binding:"required"`
		Unit       string           `json:"unit" binding:"required"`
		RentAmount *decimal.Decimal `json:"rentAmount" binding:"required"`
	}

	var req GenerateCodeRequest
	if !bindJSON(c, &req) {
		return
	}

	code, err := h.connectionService.GenerateCode(c.Request.Context(), services.GenerateCodeInput{
		PropertyID: req.PropertyID,
		Unit:       strings.TrimSpace(req.Unit),
		RentAmount: *req.RentAmount,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Connection code generated successfully",
		"code":       code.Code,
		"expires_at": code.ExpiresAt,
	})
}
