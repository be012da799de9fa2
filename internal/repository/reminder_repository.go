package repository

import (
	"time"

	"github.com/yukikurage/property-management-api/internal/models"
	"gorm.io/gorm"
)

// GormReminderRepository is a GORM implementation of ReminderRepository
type GormReminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new ReminderRepository
func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &GormReminderRepository{db: db}
}

// Create creates a new reminder
func (r *GormReminderRepository) Create(reminder *models.Reminder) error {
	return r.db.Create(reminder).Error
}

// ListByTenantEmail lists reminders sent to a tenant, newest first
func (r *GormReminderRepository) ListByTenantEmail(email string) ([]models.Reminder, error) {
	var reminders []models.Reminder
	if err := r.db.Where("tenant_email = ?", email).
		Order("sent_at DESC, id DESC").
		Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// ListUpcoming lists reminders due at or after from, earliest first. Due
// dates are stored in UTC, so from is converted before comparing.
func (r *GormReminderRepository) ListUpcoming(tenantIDs []uint64, from time.Time) ([]models.Reminder, error) {
	if len(tenantIDs) == 0 {
		return []models.Reminder{}, nil
	}

	var reminders []models.Reminder
	if err := r.db.Where("tenant_id IN ? AND due_date IS NOT NULL AND due_date >= ?", tenantIDs, from.UTC()).
		Order("due_date ASC, id ASC").
		Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// DeleteByTenantEmail deletes all reminders of a tenant
func (r *GormReminderRepository) DeleteByTenantEmail(email string) (int64, error) {
	result := r.db.Where("tenant_email = ?", email).Delete(&models.Reminder{})
	return result.RowsAffected, result.Error
}
