package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/property-management-api/internal/dto"
	apierrors "github.com/yukikurage/property-management-api/internal/errors"
	"github.com/yukikurage/property-management-api/internal/models"
	"github.com/yukikurage/property-management-api/internal/services"
	"github.com/yukikurage/property-management-api/internal/utils"
	"go.uber.org/zap"
)

// ReminderHandler serves reminder and notification endpoints.
type ReminderHandler struct {
	reminderService     *services.ReminderService
	notificationService *services.NotificationService
	log                 *zap.Logger
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminderService *services.ReminderService, notificationService *services.NotificationService, log *zap.Logger) *ReminderHandler {
	return &ReminderHandler{
		reminderService:     reminderService,
		notificationService: notificationService,
		log:                 log,
	}
}

// Send delivers a reminder to a tenant.
func (h *ReminderHandler) Send(c *gin.Context) {
	type SendRequest struct {
		TenantID     uint64 `json:"tenantId" binding:"required"`
		Message      string `json:"message" binding:"required"`
		ReminderType string `json:"reminderType"`
		DueDate      string `json:"dueDate"`
	}

	var req SendRequest
	if !bindJSON(c, &req) {
		return
	}

	dueDate, err := utils.ParseOptionalDate(req.DueDate)
	if err != nil {
		apierrors.BadRequest(c, "Invalid due date")
		return
	}

	reminder, err := h.reminderService.SendReminder(c.Request.Context(), services.SendReminderInput{
		TenantID:     req.TenantID,
		Message:      req.Message,
		ReminderType: req.ReminderType,
		DueDate:      dueDate,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Reminder sent successfully",
		"reminder": dto.ToReminderDTO(*reminder),
	})
}

// Draft suggests reminder text for a tenant.
func (h *ReminderHandler) Draft(c *gin.Context) {
	type DraftRequest struct {
		TenantID     uint64 `json:"tenantId" binding:"required"`
		ReminderType string `json:"reminderType"`
		Note         string `json:"note"`
	}

	var req DraftRequest
	if !bindJSON(c, &req) {
		return
	}

	message, err := h.reminderService.DraftReminder(c.Request.Context(), services.DraftReminderInput{
		TenantID:     req.TenantID,
		ReminderType: req.ReminderType,
		Note:         req.Note,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// OwnerNotifications lists notifications addressed to an owner.
func (h *ReminderHandler) OwnerNotifications(c *gin.Context) {
	h.listNotifications(c, "ownerEmail", "Owner email is required", models.AudienceOwner)
}

// TenantNotifications lists notifications addressed to a tenant.
func (h *ReminderHandler) TenantNotifications(c *gin.Context) {
	h.listNotifications(c, "tenantEmail", "Tenant email is required", models.AudienceTenant)
}

func (h *ReminderHandler) listNotifications(c *gin.Context, key, message string, audience models.NotificationAudience) {
	email, ok := requireQuery(c, key, message)
	if !ok {
		return
	}

	inbox, err := h.notificationService.ListNotifications(c.Request.Context(), email, audience)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": dto.ToNotificationDTOs(inbox.Notifications),
		"unread_count":  inbox.UnreadCount,
	})
}

// MarkRead acknowledges a notification.
func (h *ReminderHandler) MarkRead(c *gin.Context) {
	type MarkReadRequest struct {
		NotificationID uint64 `json:"notificationId" binding:"required"`
	}

	var req MarkReadRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), req.NotificationID); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
