package dto

import (
	"time"

	"github.com/yukikurage/property-management-api/internal/models"
	"github.com/yukikurage/property-management-api/internal/services"
)

type MaintenanceRequestDTO struct {
	ID          uint64                     `json:"id"`
	TenantEmail string                     `json:"tenant_email"`
	TenantID    uint64                     `json:"tenant_id"`
	PropertyID  uint64                     `json:"property_id"`
	Title       string                     `json:"title"`
	Description string                     `json:"description"`
	Priority    models.MaintenancePriority `json:"priority"`
	Status      models.MaintenanceStatus   `json:"status"`
	Response    string                     `json:"response,omitempty"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
	CompletedAt *time.Time                 `json:"completed_at,omitempty"`
}

func ToMaintenanceRequestDTO(r models.MaintenanceRequest) MaintenanceRequestDTO {
	return MaintenanceRequestDTO{
		ID:          r.ID,
		TenantEmail: r.TenantEmail,
		TenantID:    r.TenantID,
		PropertyID:  r.PropertyID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Status:      r.Status,
		Response:    r.Response,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		CompletedAt: r.CompletedAt,
	}
}

func ToMaintenanceRequestDTOs(requests []models.MaintenanceRequest) []MaintenanceRequestDTO {
	result := make([]MaintenanceRequestDTO, len(requests))
	for i, r := range requests {
		result[i] = ToMaintenanceRequestDTO(r)
	}
	return result
}

// MaintenanceViewDTO adds the property and tenant labels shown in lists
type MaintenanceViewDTO struct {
	MaintenanceRequestDTO
	PropertyName    string `json:"property_name"`
	PropertyAddress string `json:"property_address"`
	TenantName      string `json:"tenant_name"`
	UnitNumber      string `json:"unit_number"`
}

func ToMaintenanceViewDTOs(views []services.MaintenanceView) []MaintenanceViewDTO {
	result := make([]MaintenanceViewDTO, len(views))
	for i, v := range views {
		item := MaintenanceViewDTO{
			MaintenanceRequestDTO: ToMaintenanceRequestDTO(v.Request),
			PropertyName:          "Unknown Property",
			PropertyAddress:       "Unknown Address",
			TenantName:            "Unknown Tenant",
			UnitNumber:            "N/A",
		}
		if v.Property != nil {
			item.PropertyName = v.Property.Name
			item.PropertyAddress = v.Property.Address
		}
		if v.Tenant != nil {
			item.TenantName = v.Tenant.Name
			item.UnitNumber = v.Tenant.Unit
		}
		result[i] = item
	}
	return result
}
