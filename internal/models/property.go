package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Property is a building or lot owned by one owner account. OccupiedUnits
// and AvailableUnits always add up to TotalUnits.
type Property struct {
	ID             uint64          `gorm:"primarykey" json:"id"`
	Name           string          `gorm:"type:varchar(255);not null" json:"name"`
	Address        string          `gorm:"type:varchar(500);not null" json:"address"`
	PropertyType   string          `gorm:"type:varchar(50);not null" json:"property_type"`
	TotalUnits     int             `gorm:"not null" json:"total_units"`
	OccupiedUnits  int             `gorm:"not null" json:"occupied_units"`
	AvailableUnits int             `gorm:"not null" json:"available_units"`
	OwnerID        uint64          `gorm:"not null;index" json:"owner_id"`
	OwnerEmail     string          `gorm:"type:varchar(255);not null;index" json:"owner_email"`
	RentAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"rent_amount"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// HasVacancy reports whether at least one unit is free.
func (p *Property) HasVacancy() bool {
	return p.AvailableUnits > 0
}

// Occupy marks one more unit as taken. It returns false and leaves the
// counters untouched when the property is full.
func (p *Property) Occupy() bool {
	if !p.HasVacancy() {
		return false
	}
	p.OccupiedUnits++
	p.AvailableUnits = p.TotalUnits - p.OccupiedUnits
	return true
}

// Vacate releases one unit. OccupiedUnits never drops below zero.
func (p *Property) Vacate() {
	if p.OccupiedUnits > 0 {
		p.OccupiedUnits--
	}
	p.AvailableUnits = p.TotalUnits - p.OccupiedUnits
}
