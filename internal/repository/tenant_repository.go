package repository

import (
	"github.com/yukikurage/property-management-api/internal/models"
	"gorm.io/gorm"
)

// GormTenantRepository is a GORM implementation of TenantRepository
type GormTenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new TenantRepository
func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &GormTenantRepository{db: db}
}

// Create creates a new tenant
func (r *GormTenantRepository) Create(tenant *models.Tenant) error {
	return r.db.Create(tenant).Error
}

// FindByID finds a tenant by ID
func (r *GormTenantRepository) FindByID(id uint64) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.First(&tenant, id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// FindByEmail finds the oldest tenancy for an email
func (r *GormTenantRepository) FindByEmail(email string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.Where("email = ?", email).Order("id ASC").First(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// FindByPropertyUnit finds the tenant occupying a unit
func (r *GormTenantRepository) FindByPropertyUnit(propertyID uint64, unit string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.Where("property_id = ? AND unit = ?", propertyID, unit).First(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// ListByPropertyIDs lists tenants of the given properties
func (r *GormTenantRepository) ListByPropertyIDs(propertyIDs []uint64) ([]models.Tenant, error) {
	if len(propertyIDs) == 0 {
		return []models.Tenant{}, nil
	}

	var tenants []models.Tenant
	if err := r.db.Where("property_id IN ?", propertyIDs).
		Order("id ASC").
		Find(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}

// CountByProperty counts tenants of a property
func (r *GormTenantRepository) CountByProperty(propertyID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Tenant{}).Where("property_id = ?", propertyID).Count(&count).Error
	return count, err
}

// ListUnitsByProperty lists the occupied unit labels of a property
func (r *GormTenantRepository) ListUnitsByProperty(propertyID uint64) ([]string, error) {
	units := []string{}
	if err := r.db.Model(&models.Tenant{}).
		Where("property_id = ?", propertyID).
		Order("id ASC").
		Pluck("unit", &units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// Update updates a tenant
func (r *GormTenantRepository) Update(tenant *models.Tenant) error {
	return r.db.Save(tenant).Error
}

// Delete deletes a tenant
func (r *GormTenantRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Tenant{}, id).Error
}
