package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/property-management-api/internal/errors"
	"github.com/yukikurage/property-management-api/internal/middleware"
	"github.com/yukikurage/property-management-api/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handlers groups every HTTP handler of the API.
type Handlers struct {
	Health      *HealthHandler
	Auth        *AuthHandler
	Properties  *PropertyHandler
	Tenants     *TenantHandler
	Owners      *OwnerHandler
	Payments    *PaymentHandler
	Maintenance *MaintenanceHandler
	Reminders   *ReminderHandler
}

// NewHandlers wires handlers to the services.
func NewHandlers(db *gorm.DB, svc *services.Services, log *zap.Logger) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(db),
		Auth:        NewAuthHandler(svc.Auth, log),
		Properties:  NewPropertyHandler(svc.Properties, svc.Connections, log),
		Tenants:     NewTenantHandler(svc.Tenants, svc.Connections, svc.Dashboards, log),
		Owners:      NewOwnerHandler(svc.Dashboards, log),
		Payments:    NewPaymentHandler(svc.Payments, log),
		Maintenance: NewMaintenanceHandler(svc.Maintenance, log),
		Reminders:   NewReminderHandler(svc.Reminders, svc.Notifications, log),
	}
}

// RegisterRoutes mounts the API on r. Session middleware must already be
// installed.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.GET("/health", h.Health.Health)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", h.Auth.Signup)
			auth.POST("/signin", h.Auth.Signin)
			auth.POST("/logout", h.Auth.Logout)
			auth.GET("/me", middleware.RequireAuth(), h.Auth.GetCurrentUser)
		}

		api.POST("/users/update-profile", h.Auth.UpdateProfile)

		properties := api.Group("/properties")
		{
			properties.GET("/list", h.Properties.ListProperties)
			properties.POST("/add", h.Properties.AddProperty)
			properties.DELETE("/remove/:id", h.Properties.RemoveProperty)
			properties.GET("/occupied-units", h.Properties.OccupiedUnits)
			properties.POST("/generate-code", h.Properties.GenerateCode)
		}

		tenants := api.Group("/tenants")
		{
			tenants.GET("/validate-code", h.Tenants.ValidateCode)
			tenants.POST("/connect-with-code", h.Tenants.ConnectWithCode)
			tenants.POST("/add", h.Tenants.AddTenant)
			tenants.POST("/remove", h.Tenants.RemoveTenant)
			tenants.GET("/list", h.Tenants.ListTenants)
			tenants.GET("/dashboard", h.Tenants.Dashboard)
		}

		owners := api.Group("/owners")
		{
			owners.GET("/dashboard", h.Owners.Dashboard)
			owners.GET("/stats", h.Owners.Stats)
		}

		payments := api.Group("/payments")
		{
			payments.POST("/record", h.Payments.RecordPayment)
			payments.POST("/submit", h.Payments.SubmitPayment)
			payments.POST("/approve", h.Payments.ApprovePayment)
			payments.GET("/history", h.Payments.History)
		}

		maintenance := api.Group("/maintenance")
		{
			maintenance.POST("/submit", h.Maintenance.Submit)
			maintenance.PATCH("/update", h.Maintenance.Update)
			maintenance.GET("/owner", h.Maintenance.ListForOwner)
			maintenance.GET("/tenant", h.Maintenance.ListForTenant)
		}

		reminders := api.Group("/reminders")
		{
			reminders.POST("/send", h.Reminders.Send)
			reminders.POST("/draft", h.Reminders.Draft)
		}

		notifications := api.Group("/notifications")
		{
			notifications.GET("/owner", h.Reminders.OwnerNotifications)
			notifications.GET("/tenant", h.Reminders.TenantNotifications)
			notifications.POST("/mark-read", h.Reminders.MarkRead)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			apierrors.NotImplemented(c, "")
			return
		}
		apierrors.NotFound(c, "")
	})
}
