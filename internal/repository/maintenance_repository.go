package repository

import (
	"github.com/yukikurage/property-management-api/internal/models"
	"gorm.io/gorm"
)

// GormMaintenanceRepository is a GORM implementation of MaintenanceRepository
type GormMaintenanceRepository struct {
	db *gorm.DB
}

// NewMaintenanceRepository creates a new MaintenanceRepository
func NewMaintenanceRepository(db *gorm.DB) MaintenanceRepository {
	return &GormMaintenanceRepository{db: db}
}

// Create creates a new maintenance request
func (r *GormMaintenanceRepository) Create(request *models.MaintenanceRequest) error {
	return r.db.Create(request).Error
}

// FindByID finds a maintenance request by ID
func (r *GormMaintenanceRepository) FindByID(id uint64) (*models.MaintenanceRequest, error) {
	var request models.MaintenanceRequest
	if err := r.db.First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// Update updates a maintenance request
func (r *GormMaintenanceRepository) Update(request *models.MaintenanceRequest) error {
	return r.db.Save(request).Error
}

// ListByPropertyIDs lists requests filed against the given properties, newest first
func (r *GormMaintenanceRepository) ListByPropertyIDs(propertyIDs []uint64) ([]models.MaintenanceRequest, error) {
	return r.listByPropertyIDs(propertyIDs, 0)
}

// ListRecentByPropertyIDs lists at most limit requests, newest first
func (r *GormMaintenanceRepository) ListRecentByPropertyIDs(propertyIDs []uint64, limit int) ([]models.MaintenanceRequest, error) {
	return r.listByPropertyIDs(propertyIDs, limit)
}

func (r *GormMaintenanceRepository) listByPropertyIDs(propertyIDs []uint64, limit int) ([]models.MaintenanceRequest, error) {
	if len(propertyIDs) == 0 {
		return []models.MaintenanceRequest{}, nil
	}

	query := r.db.Where("property_id IN ?", propertyIDs).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var requests []models.MaintenanceRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// ListByTenantEmail lists a tenant's requests, newest first
func (r *GormMaintenanceRepository) ListByTenantEmail(email string) ([]models.MaintenanceRequest, error) {
	var requests []models.MaintenanceRequest
	if err := r.db.Where("tenant_email = ?", email).
		Order("created_at DESC, id DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
