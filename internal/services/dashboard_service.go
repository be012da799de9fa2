package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/property-management-api/internal/constants"
	"github.com/yukikurage/property-management-api/internal/models"
	"github.com/yukikurage/property-management-api/internal/repository"
	"go.uber.org/zap"
)

// DashboardService aggregates read-only views for owners and tenants.
type DashboardService struct {
	base
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(store *repository.Store, log *zap.Logger, events EventRecorder) *DashboardService {
	return &DashboardService{base: newBase(store, log, events)}
}

type DashboardStats struct {
	TotalProperties int
	TotalTenants    int
	TotalRent       decimal.Decimal
	PendingPayments int
}

// OwnerDashboard is the owner's overview. Every slice is non-nil.
type OwnerDashboard struct {
	Stats             DashboardStats
	Properties        []models.Property
	Tenants           []models.Tenant
	RecentTenants     []models.Tenant
	RecentMaintenance []models.MaintenanceRequest
	UpcomingReminders []models.Reminder
	PendingPayments   []models.Payment
}

func emptyOwnerDashboard() *OwnerDashboard {
	return &OwnerDashboard{
		Stats:             DashboardStats{TotalRent: decimal.Zero},
		Properties:        []models.Property{},
		Tenants:           []models.Tenant{},
		RecentTenants:     []models.Tenant{},
		RecentMaintenance: []models.MaintenanceRequest{},
		UpcomingReminders: []models.Reminder{},
		PendingPayments:   []models.Payment{},
	}
}

// OwnerDashboard builds the overview for ownerEmail. An unknown owner yields
// an empty dashboard rather than an error.
func (s *DashboardService) OwnerDashboard(ctx context.Context, ownerEmail string) (*OwnerDashboard, error) {
	repos := s.store.Repos(ctx)

	owner, err := findOwner(repos, strings.TrimSpace(ownerEmail))
	if err != nil {
		if errors.Is(err, ErrOwnerNotFound) {
			s.log.Info("dashboard requested for unknown owner", zap.String("owner_email", ownerEmail))
			return emptyOwnerDashboard(), nil
		}
		return nil, err
	}

	properties, tenants, err := s.portfolio(repos, owner)
	if err != nil {
		return nil, err
	}

	tenantCounts := make(map[uint64]int64, len(properties))
	emails := make([]string, 0, len(tenants))
	tenantIDs := make([]uint64, 0, len(tenants))
	for _, t := range tenants {
		tenantCounts[t.PropertyID]++
		emails = append(emails, t.Email)
		tenantIDs = append(tenantIDs, t.ID)
	}

	totalRent := decimal.Zero
	for _, p := range properties {
		totalRent = totalRent.Add(p.RentAmount.Mul(decimal.NewFromInt(tenantCounts[p.ID])))
	}

	pendingStatus := models.PaymentStatusPending
	pending, err := repos.Payments.ListByTenantEmails(emails, &pendingStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending payments: %w", err)
	}

	ids := propertyIDs(properties)
	recentMaintenance, err := repos.Maintenance.ListRecentByPropertyIDs(ids, constants.RecentMaintenanceLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance requests: %w", err)
	}

	upcoming, err := repos.Reminders.ListUpcoming(tenantIDs, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}

	recentTenants := tenants
	if len(recentTenants) > constants.RecentTenantsLimit {
		recentTenants = recentTenants[:constants.RecentTenantsLimit]
	}

	return &OwnerDashboard{
		Stats: DashboardStats{
			TotalProperties: len(properties),
			TotalTenants:    len(tenants),
			TotalRent:       totalRent,
			PendingPayments: len(pending),
		},
		Properties:        properties,
		Tenants:           tenants,
		RecentTenants:     recentTenants,
		RecentMaintenance: recentMaintenance,
		UpcomingReminders: upcoming,
		PendingPayments:   pending,
	}, nil
}

// OwnerStats summarises occupancy and revenue across an owner's portfolio.
type OwnerStats struct {
	TotalProperties int
	TotalUnits      int
	OccupiedUnits   int
	TotalTenants    int
	OccupancyRate   float64
	MonthlyRevenue  decimal.Decimal
	PendingRent     decimal.Decimal
}

// OwnerStats computes portfolio figures. MonthlyRevenue counts completed
// payments paid in the current calendar month; PendingRent sums the rent of
// tenants not yet marked paid. An unknown owner yields zero values.
func (s *DashboardService) OwnerStats(ctx context.Context, ownerEmail string) (*OwnerStats, error) {
	repos := s.store.Repos(ctx)
	stats := &OwnerStats{MonthlyRevenue: decimal.Zero, PendingRent: decimal.Zero}

	owner, err := findOwner(repos, strings.TrimSpace(ownerEmail))
	if err != nil {
		if errors.Is(err, ErrOwnerNotFound) {
			return stats, nil
		}
		return nil, err
	}

	properties, tenants, err := s.portfolio(repos, owner)
	if err != nil {
		return nil, err
	}

	stats.TotalProperties = len(properties)
	stats.TotalTenants = len(tenants)
	for _, p := range properties {
		stats.TotalUnits += p.TotalUnits
		stats.OccupiedUnits += p.OccupiedUnits
	}
	if stats.TotalUnits > 0 {
		stats.OccupancyRate = math.Round(float64(stats.OccupiedUnits)/float64(stats.TotalUnits)*10000) / 100
	}

	emails := make([]string, 0, len(tenants))
	for _, t := range tenants {
		emails = append(emails, t.Email)
		if t.RentStatus != models.RentStatusPaid {
			stats.PendingRent = stats.PendingRent.Add(t.RentAmount)
		}
	}

	completed := models.PaymentStatusCompleted
	payments, err := repos.Payments.ListByTenantEmails(emails, &completed)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)
	for _, p := range payments {
		if !p.PaidDate.Before(monthStart) && p.PaidDate.Before(monthEnd) {
			stats.MonthlyRevenue = stats.MonthlyRevenue.Add(p.Amount)
		}
	}

	return stats, nil
}

// portfolio loads the owner's properties (matched by id or email) and the
// tenants living in them.
func (s *DashboardService) portfolio(repos *repository.Repositories, owner *models.User) ([]models.Property, []models.Tenant, error) {
	properties, err := repos.Properties.ListByOwner(owner.ID, owner.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list properties: %w", err)
	}
	tenants, err := repos.Tenants.ListByPropertyIDs(propertyIDs(properties))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	return properties, tenants, nil
}

// TenantDashboard is a tenant's view of their tenancy.
type TenantDashboard struct {
	Tenant       models.Tenant
	Property     models.Property
	DaysUntilDue int
}

// TenantDashboard builds the view for tenantEmail.
func (s *DashboardService) TenantDashboard(ctx context.Context, tenantEmail string) (*TenantDashboard, error) {
	repos := s.store.Repos(ctx)

	tenant, err := findTenantByEmail(repos, strings.TrimSpace(tenantEmail))
	if err != nil {
		return nil, err
	}
	property, err := findProperty(repos, tenant.PropertyID)
	if err != nil {
		return nil, err
	}

	return &TenantDashboard{
		Tenant:       *tenant,
		Property:     *property,
		DaysUntilDue: DaysUntil(tenant.RentDueDate, s.now()),
	}, nil
}

// DaysUntil rounds the time from now to due up to whole days. Past dates
// give zero or negative values.
func DaysUntil(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}
