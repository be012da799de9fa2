package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RentStatus string

const (
	RentStatusPending RentStatus = "pending"
	RentStatusPaid    RentStatus = "paid"
	RentStatusOverdue RentStatus = "overdue"
)

// Tenant is the occupancy of one unit by one tenant account. The
// (PropertyID, Unit) pair is unique.
type Tenant struct {
	ID             uint64          `gorm:"primarykey" json:"id"`
	Email          string          `gorm:"type:varchar(255);not null;index" json:"email"`
	Name           string          `gorm:"type:varchar(255)" json:"name"`
	PropertyID     uint64          `gorm:"not null;uniqueIndex:idx_tenants_property_unit" json:"property_id"`
	Unit           string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_tenants_property_unit" json:"unit"`
	RentAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"rent_amount"`
	RentDueDate    time.Time       `json:"rent_due_date"`
	RentStatus     RentStatus      `gorm:"type:varchar(20);not null" json:"rent_status"`
	MoveInDate     time.Time       `json:"move_in_date"`
	ConnectionCode string          `gorm:"type:varchar(20)" json:"connection_code,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ApplyPayment marks the rent as paid when amount covers the full rent.
// Partial payments leave the status unchanged. It reports whether the
// status changed.
func (t *Tenant) ApplyPayment(amount decimal.Decimal) bool {
	if amount.LessThan(t.RentAmount) || t.RentStatus == RentStatusPaid {
		return false
	}
	t.RentStatus = RentStatusPaid
	return true
}
