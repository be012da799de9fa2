package repository

import (
	"github.com/yukikurage/property-management-api/internal/models"
	"gorm.io/gorm"
)

// GormPaymentRepository is a GORM implementation of PaymentRepository
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create creates a new payment
func (r *GormPaymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// FindByID finds a payment by ID
func (r *GormPaymentRepository) FindByID(id uint64) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// Update updates a payment
func (r *GormPaymentRepository) Update(payment *models.Payment) error {
	return r.db.Save(payment).Error
}

// ListByTenantEmail lists a tenant's payments, newest first
func (r *GormPaymentRepository) ListByTenantEmail(email string) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.Where("tenant_email = ?", email).
		Order("created_at DESC, id DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// PageByTenantEmail returns one page of a tenant's payments, newest first,
// with the total number of payments
func (r *GormPaymentRepository) PageByTenantEmail(email string, offset, limit int) ([]models.Payment, int64, error) {
	var total int64
	if err := r.db.Model(&models.Payment{}).Where("tenant_email = ?", email).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []models.Payment
	if err := r.db.Where("tenant_email = ?", email).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// ListByTenantEmails lists payments for several tenants with an optional status filter
func (r *GormPaymentRepository) ListByTenantEmails(emails []string, status *models.PaymentStatus) ([]models.Payment, error) {
	if len(emails) == 0 {
		return []models.Payment{}, nil
	}

	query := r.db.Where("tenant_email IN ?", emails)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var payments []models.Payment
	if err := query.Order("created_at DESC, id DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// DeleteByTenantEmail deletes all payments of a tenant
func (r *GormPaymentRepository) DeleteByTenantEmail(email string) (int64, error) {
	result := r.db.Where("tenant_email = ?", email).Delete(&models.Payment{})
	return result.RowsAffected, result.Error
}
