package dto

import (
	"github.com/shopspring/decimal"
	"github.com/yukikurage/property-management-api/internal/services"
)

type DashboardStatsDTO struct {
	TotalProperties int             `json:"total_properties"`
	TotalTenants    int             `json:"total_tenants"`
	TotalRent       decimal.Decimal `json:"total_rent"`
	PendingPayments int             `json:"pending_payments"`
}

type OwnerDashboardDTO struct {
	Success           bool                    `json:"success"`
	Stats             DashboardStatsDTO       `json:"stats"`
	Properties        []PropertyDTO           `json:"properties"`
	RecentTenants     []TenantDTO             `json:"recent_tenants"`
	RecentMaintenance []MaintenanceRequestDTO `json:"recent_maintenance"`
	UpcomingReminders []ReminderDTO           `json:"upcoming_reminders"`
	Tenants           []TenantDTO             `json:"tenants"`
	PendingPayments   []PaymentDTO            `json:"pending_payments"`
}

func ToOwnerDashboardDTO(d services.OwnerDashboard) OwnerDashboardDTO {
	return OwnerDashboardDTO{
		Success: true,
		Stats: DashboardStatsDTO{
			TotalProperties: d.Stats.TotalProperties,
			TotalTenants:    d.Stats.TotalTenants,
			TotalRent:       d.Stats.TotalRent,
			PendingPayments: d.Stats.PendingPayments,
		},
		Properties:        ToPropertyDTOs(d.Properties),
		RecentTenants:     ToTenantDTOs(d.RecentTenants),
		RecentMaintenance: ToMaintenanceRequestDTOs(d.RecentMaintenance),
		UpcomingReminders: ToReminderDTOs(d.UpcomingReminders),
		Tenants:           ToTenantDTOs(d.Tenants),
		PendingPayments:   ToPaymentDTOs(d.PendingPayments),
	}
}

type OwnerStatsDTO struct {
	TotalProperties int             `json:"total_properties"`
	TotalUnits      int             `json:"total_units"`
	OccupiedUnits   int             `json:"occupied_units"`
	TotalTenants    int             `json:"total_tenants"`
	OccupancyRate   float64         `json:"occupancy_rate"`
	MonthlyRevenue  decimal.Decimal `json:"monthly_revenue"`
	PendingRent     decimal.Decimal `json:"pending_rent"`
}

func ToOwnerStatsDTO(s services.OwnerStats) OwnerStatsDTO {
	return OwnerStatsDTO{
		TotalProperties: s.TotalProperties,
		TotalUnits:      s.TotalUnits,
		OccupiedUnits:   s.OccupiedUnits,
		TotalTenants:    s.TotalTenants,
		OccupancyRate:   s.OccupancyRate,
		MonthlyRevenue:  s.MonthlyRevenue,
		PendingRent:     s.PendingRent,
	}
}
