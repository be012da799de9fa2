package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/property-management-api/internal/models"
)

type PaymentDTO struct {
	ID            uint64               `json:"id"`
	TenantEmail   string               `json:"tenant_email"`
	TenantID      uint64               `json:"tenant_id"`
	PropertyID    uint64               `json:"property_id"`
	Amount        decimal.Decimal      `json:"amount"`
	PaymentMethod string               `json:"payment_method"`
	PaidDate      time.Time            `json:"paid_date"`
	Status        models.PaymentStatus `json:"status"`
	Notes         string               `json:"notes"`
	CreatedAt     time.Time            `json:"created_at"`
}

func ToPaymentDTO(p models.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            p.ID,
		TenantEmail:   p.TenantEmail,
		TenantID:      p.TenantID,
		PropertyID:    p.PropertyID,
		Amount:        p.Amount,
		PaymentMethod: p.PaymentMethod,
		PaidDate:      p.PaidDate,
		Status:        p.Status,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
	}
}

func ToPaymentDTOs(payments []models.Payment) []PaymentDTO {
	result := make([]PaymentDTO, len(payments))
	for i, p := range payments {
		result[i] = ToPaymentDTO(p)
	}
	return result
}
