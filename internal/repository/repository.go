package repository

import (
	"time"

	"github.com/yukikurage/property-management-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update saves all fields of a user
	Update(user *models.User) error
}

// PropertyRepository defines the interface for property data access
type PropertyRepository interface {
	Create(property *models.Property) error
	FindByID(id uint64) (*models.Property, error)

	// ListByOwner returns properties matching either the owner ID or the
	// owner email.
	ListByOwner(ownerID uint64, ownerEmail string) ([]models.Property, error)

	// ListByOwnerEmail returns properties recorded under ownerEmail
	ListByOwnerEmail(ownerEmail string) ([]models.Property, error)

	Update(property *models.Property) error
	Delete(id uint64) error
}

// TenantRepository defines the interface for tenant data access
type TenantRepository interface {
	Create(tenant *models.Tenant) error
	FindByID(id uint64) (*models.Tenant, error)

	// FindByEmail returns the oldest tenancy recorded for email
	FindByEmail(email string) (*models.Tenant, error)

	// FindByPropertyUnit returns the tenant holding unit in a property
	FindByPropertyUnit(propertyID uint64, unit string) (*models.Tenant, error)

	ListByPropertyIDs(propertyIDs []uint64) ([]models.Tenant, error)
	CountByProperty(propertyID uint64) (int64, error)
	ListUnitsByProperty(propertyID uint64) ([]string, error)
	Update(tenant *models.Tenant) error
	Delete(id uint64) error
}

// PaymentRepository defines the interface for payment data access
type PaymentRepository interface {
	Create(payment *models.Payment) error
	FindByID(id uint64) (*models.Payment, error)
	Update(payment *models.Payment) error
	ListByTenantEmail(email string) ([]models.Payment, error)
	PageByTenantEmail(email string, offset, limit int) ([]models.Payment, int64, error)

	// ListByTenantEmails returns payments of the given tenants, optionally
	// restricted to one status
	ListByTenantEmails(emails []string, status *models.PaymentStatus) ([]models.Payment, error)

	// DeleteByTenantEmail removes every payment of a tenant and returns the
	// number of rows removed
	DeleteByTenantEmail(email string) (int64, error)
}

// MaintenanceRepository defines the interface for maintenance request data access
type MaintenanceRepository interface {
	Create(request *models.MaintenanceRequest) error
	FindByID(id uint64) (*models.MaintenanceRequest, error)
	Update(request *models.MaintenanceRequest) error
	ListByPropertyIDs(propertyIDs []uint64) ([]models.MaintenanceRequest, error)

	// ListRecentByPropertyIDs returns at most limit requests, newest first
	ListRecentByPropertyIDs(propertyIDs []uint64, limit int) ([]models.MaintenanceRequest, error)

	ListByTenantEmail(email string) ([]models.MaintenanceRequest, error)
}

// ReminderRepository defines the interface for reminder data access
type ReminderRepository interface {
	Create(reminder *models.Reminder) error
	ListByTenantEmail(email string) ([]models.Reminder, error)

	// ListUpcoming returns reminders of the given tenants due at or after
	// from, earliest first
	ListUpcoming(tenantIDs []uint64, from time.Time) ([]models.Reminder, error)

	DeleteByTenantEmail(email string) (int64, error)
}

// ConnectionCodeRepository defines the interface for connection code data access
type ConnectionCodeRepository interface {
	Create(code *models.ConnectionCode) error
	FindByCode(code string) (*models.ConnectionCode, error)
	Exists(code string) (bool, error)
	Update(code *models.ConnectionCode) error
	DeleteByProperty(propertyID uint64) (int64, error)
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	Create(notification *models.Notification) error
	FindByID(id uint64) (*models.Notification, error)

	// ListForRecipient returns notifications for a recipient, newest first
	ListForRecipient(email string, audience models.NotificationAudience) ([]models.Notification, error)

	MarkRead(id uint64) error
}
