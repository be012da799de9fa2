package repository

import (
	"github.com/yukikurage/property-management-api/internal/models"
	"gorm.io/gorm"
)

// GormConnectionCodeRepository is a GORM implementation of ConnectionCodeRepository
type GormConnectionCodeRepository struct {
	db *gorm.DB
}

// NewConnectionCodeRepository creates a new ConnectionCodeRepository
func NewConnectionCodeRepository(db *gorm.DB) ConnectionCodeRepository {
	return &GormConnectionCodeRepository{db: db}
}

// Create creates a new connection code
func (r *GormConnectionCodeRepository) Create(code *models.ConnectionCode) error {
	return r.db.Create(code).Error
}

// FindByCode finds a connection code by its token
func (r *GormConnectionCodeRepository) FindByCode(code string) (*models.ConnectionCode, error) {
	var connectionCode models.ConnectionCode
	if err := r.db.Where("code = ?", code).First(&connectionCode).Error; err != nil {
		return nil, err
	}
	return &connectionCode, nil
}

// Exists reports whether a token is already taken
func (r *GormConnectionCodeRepository) Exists(code string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.ConnectionCode{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update updates a connection code
func (r *GormConnectionCodeRepository) Update(code *models.ConnectionCode) error {
	return r.db.Save(code).Error
}

// DeleteByProperty deletes every code issued for a property
func (r *GormConnectionCodeRepository) DeleteByProperty(propertyID uint64) (int64, error) {
	result := r.db.Where("property_id = ?", propertyID).Delete(&models.ConnectionCode{})
	return result.RowsAffected, result.Error
}
