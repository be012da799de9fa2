package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/property-management-api/internal/models"
	"github.com/yukikurage/property-management-api/internal/services"
)

type TenantDTO struct {
	ID             uint64            `json:"id"`
	Email          string            `json:"email"`
	Name           string            `json:"name"`
	PropertyID     uint64            `json:"property_id"`
	Unit           string            `json:"unit"`
	RentAmount     decimal.Decimal   `json:"rent_amount"`
	RentDueDate    time.Time         `json:"rent_due_date"`
	RentStatus     models.RentStatus `json:"rent_status"`
	MoveInDate     time.Time         `json:"move_in_date"`
	ConnectionCode string            `json:"connection_code,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

func ToTenantDTO(t models.Tenant) TenantDTO {
	return TenantDTO{
		ID:             t.ID,
		Email:          t.Email,
		Name:           t.Name,
		PropertyID:     t.PropertyID,
		Unit:           t.Unit,
		RentAmount:     t.RentAmount,
		RentDueDate:    t.RentDueDate,
		RentStatus:     t.RentStatus,
		MoveInDate:     t.MoveInDate,
		ConnectionCode: t.ConnectionCode,
		CreatedAt:      t.CreatedAt,
	}
}

func ToTenantDTOs(tenants []models.Tenant) []TenantDTO {
	result := make([]TenantDTO, len(tenants))
	for i, t := range tenants {
		result[i] = ToTenantDTO(t)
	}
	return result
}

// TenantListItemDTO is a tenant row in the owner's tenant list
type TenantListItemDTO struct {
	TenantDTO
	PropertyName string `json:"property_name"`
	Address      string `json:"address"`
}

func ToTenantListItemDTOs(items []services.TenantWithProperty) []TenantListItemDTO {
	result := make([]TenantListItemDTO, len(items))
	for i, item := range items {
		result[i] = TenantListItemDTO{
			TenantDTO:    ToTenantDTO(item.Tenant),
			PropertyName: "Unknown Property",
			Address:      "Unknown Address",
		}
		if item.Property != nil {
			result[i].PropertyName = item.Property.Name
			result[i].Address = item.Property.Address
		}
	}
	return result
}

type TenantCleanupDTO struct {
	PaymentsRemoved  int64 `json:"payments_removed"`
	RemindersRemoved int64 `json:"reminders_removed"`
}

// TenantDashboardDTO is the tenant's own dashboard
type TenantDashboardDTO struct {
	Tenant   TenantDashboardTenantDTO   `json:"tenant"`
	Property TenantDashboardPropertyDTO `json:"property"`
}

type TenantDashboardTenantDTO struct {
	TenantDTO
	DaysUntilDue int `json:"days_until_due"`
}

type TenantDashboardPropertyDTO struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	Type       string `json:"type"`
	Unit       string `json:"unit"`
	OwnerEmail string `json:"owner_email"`
}

func ToTenantDashboardDTO(d services.TenantDashboard) TenantDashboardDTO {
	return TenantDashboardDTO{
		Tenant: TenantDashboardTenantDTO{
			TenantDTO:    ToTenantDTO(d.Tenant),
			DaysUntilDue: d.DaysUntilDue,
		},
		Property: TenantDashboardPropertyDTO{
			ID:         d.Property.ID,
			Name:       d.Property.Name,
			Address:    d.Property.Address,
			Type:       d.Property.PropertyType,
			Unit:       d.Tenant.Unit,
			OwnerEmail: d.Property.OwnerEmail,
		},
	}
}
