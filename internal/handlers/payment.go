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

// PaymentHandler serves payment endpoints.
type PaymentHandler struct {
	paymentService *services.PaymentService
	log            *zap.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *services.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		log:            log,
	}
}

type paymentRequest struct {
	TenantEmail   string           `json:"tenantEmail" binding:"required"`
	Amount        *decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate   string           `json:"paymentDate"`
	PaymentMethod string           `json:"paymentMethod"`
	Notes         string           `json:"notes"`
}

func (h *PaymentHandler) bindPayment(c *gin.Context) (services.PaymentInput, bool) {
	var req paymentRequest
	if !bindJSON(c, &req) {
		return services.PaymentInput{}, false
	}

	paidDate, err := utils.ParseOptionalDate(req.PaymentDate)
	if err != nil {
		apierrors.BadRequest(c, "Invalid payment date")
		return services.PaymentInput{}, false
	}

	return services.PaymentInput{
		TenantEmail:   req.TenantEmail,
		Amount:        *req.Amount,
		PaymentMethod: req.PaymentMethod,
		PaidDate:      paidDate,
		Notes:         req.Notes,
	}, true
}

// RecordPayment stores a completed payment entered by the owner.
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	input, ok := h.bindPayment(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment recorded successfully",
		"payment": dto.ToPaymentDTO(*payment),
	})
}

// SubmitPayment stores a pending payment entered by the tenant.
func (h *PaymentHandler) SubmitPayment(c *gin.Context) {
	input, ok := h.bindPayment(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.SubmitPayment(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment submitted successfully. Waiting for owner approval.",
		"payment": dto.ToPaymentDTO(*payment),
	})
}

// ApprovePayment completes a pending payment.
func (h *PaymentHandler) ApprovePayment(c *gin.Context) {
	type ApproveRequest struct {
		PaymentID uint64 `json:"paymentId" binding:"required"`
	}

	var req ApproveRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, err := h.paymentService.ApprovePayment(c.Request.Context(), req.PaymentID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment approved",
		"payment": dto.ToPaymentDTO(*payment),
	})
}

// History lists the payments of a tenant. page and limit select a single
// page instead of the full list.
func (h *PaymentHandler) History(c *gin.Context) {
	tenantEmail, ok := requireQuery(c, "tenantEmail", "Tenant email is required")
	if !ok {
		return
	}

	if params, ok := utils.GetPaginationParams(c); ok {
		page, err := h.paymentService.PaymentHistoryPage(c.Request.Context(), tenantEmail, params.Offset, params.Limit)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"payments":   dto.ToPaymentDTOs(page.Payments),
			"pagination": params.Response(page.Total),
		})
		return
	}

	payments, err := h.paymentService.PaymentHistory(c.Request.Context(), tenantEmail)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": dto.ToPaymentDTOs(payments)})
}
