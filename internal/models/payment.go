package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
)

type Payment struct {
	ID            uint64          `gorm:"primarykey" json:"id"`
	TenantEmail   string          `gorm:"type:varchar(255);not null;index" json:"tenant_email"`
	TenantID      uint64          `gorm:"index" json:"tenant_id"`
	PropertyID    uint64          `gorm:"index" json:"property_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"type:varchar(50);not null" json:"payment_method"`
	PaidDate      time.Time       `json:"paid_date"`
	Status        PaymentStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	Notes         string          `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
