package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/property-management-api/internal/models"
	"github.com/yukikurage/property-management-api/internal/services"
)

type PropertyDTO struct {
	ID             uint64          `json:"id"`
	Name           string          `json:"name"`
	Address        string          `json:"address"`
	PropertyType   string          `json:"property_type"`
	TotalUnits     int             `json:"total_units"`
	OccupiedUnits  int             `json:"occupied_units"`
	AvailableUnits int             `json:"available_units"`
	OwnerID        uint64          `json:"owner_id"`
	OwnerEmail     string          `json:"owner_email"`
	RentAmount     decimal.Decimal `json:"rent_amount"`
	CreatedAt      time.Time       `json:"created_at"`
}

func ToPropertyDTO(p models.Property) PropertyDTO {
	return PropertyDTO{
		ID:             p.ID,
		Name:           p.Name,
		Address:        p.Address,
		PropertyType:   p.PropertyType,
		TotalUnits:     p.TotalUnits,
		OccupiedUnits:  p.OccupiedUnits,
		AvailableUnits: p.AvailableUnits,
		OwnerID:        p.OwnerID,
		OwnerEmail:     p.OwnerEmail,
		RentAmount:     p.RentAmount,
		CreatedAt:      p.CreatedAt,
	}
}

func ToPropertyDTOs(properties []models.Property) []PropertyDTO {
	result := make([]PropertyDTO, len(properties))
	for i, p := range properties {
		result[i] = ToPropertyDTO(p)
	}
	return result
}

// CodePropertyDTO is the property as seen through a connection code: the
// unit and rent come from the code, not the property.
type CodePropertyDTO struct {
	ID         uint64          `json:"id"`
	Name       string          `json:"name"`
	Address    string          `json:"address"`
	Unit       string          `json:"unit"`
	RentAmount decimal.Decimal `json:"rent_amount"`
}

func ToCodePropertyDTO(v services.ValidatedCode) CodePropertyDTO {
	return CodePropertyDTO{
		ID:         v.Property.ID,
		Name:       v.Property.Name,
		Address:    v.Property.Address,
		Unit:       v.Code.Unit,
		RentAmount: v.Code.RentAmount,
	}
}

type PropertyCleanupDTO struct {
	ConnectionCodesRemoved int64 `json:"connection_codes_removed"`
}
