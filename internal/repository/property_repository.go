package repository

import (
	"github.com/yukikurage/property-management-api/internal/models"
	"gorm.io/gorm"
)

// GormPropertyRepository is a GORM implementation of PropertyRepository
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new PropertyRepository
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &GormPropertyRepository{db: db}
}

// Create creates a new property
func (r *GormPropertyRepository) Create(property *models.Property) error {
	return r.db.Create(property).Error
}

// FindByID finds a property by ID
func (r *GormPropertyRepository) FindByID(id uint64) (*models.Property, error) {
	var property models.Property
	if err := r.db.First(&property, id).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

// ListByOwner lists properties owned by ownerID or recorded under ownerEmail
func (r *GormPropertyRepository) ListByOwner(ownerID uint64, ownerEmail string) ([]models.Property, error) {
	var properties []models.Property
	if err := r.db.Where("owner_id = ? OR owner_email = ?", ownerID, ownerEmail).
		Order("id ASC").
		Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// ListByOwnerEmail lists properties recorded under ownerEmail
func (r *GormPropertyRepository) ListByOwnerEmail(ownerEmail string) ([]models.Property, error) {
	var properties []models.Property
	if err := r.db.Where("owner_email = ?", ownerEmail).
		Order("id ASC").
		Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// Update updates a property
func (r *GormPropertyRepository) Update(property *models.Property) error {
	return r.db.Save(property).Error
}

// Delete deletes a property
func (r *GormPropertyRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Property{}, id).Error
}
