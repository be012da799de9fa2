package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/property-management-api/internal/constants"
	"github.com/yukikurage/property-management-api/internal/models"
	"github.com/yukikurage/property-management-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrTenantNotFound = errors.New("tenant not found")
)

// TenantService provides business logic for tenancies.
type TenantService struct {
	base
}

// NewTenantService creates a new TenantService.
func NewTenantService(store *repository.Store, log *zap.Logger, events EventRecorder) *TenantService {
	return &TenantService{base: newBase(store, log, events)}
}

// AddTenantInput represents an owner placing a tenant directly into a unit.
type AddTenantInput struct {
	PropertyID  uint64
	TenantEmail string
	Unit        string
	RentAmount  decimal.Decimal
	RentDueDate *time.Time
}

// AddTenant creates a tenancy without a connection code.
func (s *TenantService) AddTenant(ctx context.Context, input AddTenantInput) (tenant *models.Tenant, err error) {
	defer func() { s.record("add_tenant", err) }()

	email := strings.TrimSpace(input.TenantEmail)
	unit := strings.TrimSpace(input.Unit)
	if input.PropertyID == 0 || email == "" || unit == "" {
		return nil, ErrMissingFields
	}
	if !input.RentAmount.IsPositive() {
		return nil, ErrRentNotPositive
	}

	err = s.store.Atomic(ctx, func(r *repository.Repositories) error {
		user, err := findUser(r, email)
		if err != nil {
			return err
		}
		property, err := findProperty(r, input.PropertyID)
		if err != nil {
			return err
		}
		if err := occupyUnit(r, property, unit); err != nil {
			return err
		}

		now := s.now()
		dueDate := now.Add(constants.DefaultRentPeriod)
		if input.RentDueDate != nil {
			dueDate = input.RentDueDate.UTC()
		}

		tenant = &models.Tenant{
			Email:       email,
			Name:        user.Name,
			PropertyID:  property.ID,
			Unit:        unit,
			RentAmount:  input.RentAmount,
			RentDueDate: dueDate,
			RentStatus:  models.RentStatusPending,
			MoveInDate:  now,
		}
		if err := r.Tenants.Create(tenant); err != nil {
			return fmt.Errorf("failed to create tenant: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("tenant added",
		zap.Uint64("tenant_id", tenant.ID),
		zap.Uint64("property_id", tenant.PropertyID),
		zap.String("unit", tenant.Unit),
	)
	return tenant, nil
}

// TenantRemoval describes a deleted tenancy and the rows removed with it.
type TenantRemoval struct {
	Tenant           models.Tenant
	PaymentsRemoved  int64
	RemindersRemoved int64
}

// RemoveTenant deletes a tenancy, frees its unit and drops the tenant's
// payments and reminders.
func (s *TenantService) RemoveTenant(ctx context.Context, tenantID uint64) (removal *TenantRemoval, err error) {
	defer func() { s.record("remove_tenant", err) }()

	if tenantID == 0 {
		return nil, ErrMissingFields
	}

	err = s.store.Atomic(ctx, func(r *repository.Repositories) error {
		tenant, err := findTenantByID(r, tenantID)
		if err != nil {
			return err
		}

		if err := r.Tenants.Delete(tenant.ID); err != nil {
			return fmt.Errorf("failed to delete tenant: %w", err)
		}

		property, err := r.Properties.FindByID(tenant.PropertyID)
		switch {
		case err == nil:
			property.Vacate()
			if err := r.Properties.Update(property); err != nil {
				return fmt.Errorf("failed to update occupancy: %w", err)
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to find property: %w", err)
		}

		payments, err := r.Payments.DeleteByTenantEmail(tenant.Email)
		if err != nil {
			return fmt.Errorf("failed to delete payments: %w", err)
		}
		reminders, err := r.Reminders.DeleteByTenantEmail(tenant.Email)
		if err != nil {
			return fmt.Errorf("failed to delete reminders: %w", err)
		}

		removal = &TenantRemoval{
			Tenant:           *tenant,
			PaymentsRemoved:  payments,
			RemindersRemoved: reminders,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("tenant removed",
		zap.Uint64("tenant_id", tenantID),
		zap.Int64("payments_removed", removal.PaymentsRemoved),
		zap.Int64("reminders_removed", removal.RemindersRemoved),
	)
	return removal, nil
}

// TenantWithProperty pairs a tenancy with the property it belongs to.
// Property is nil when the property row no longer exists.
type TenantWithProperty struct {
	Tenant   models.Tenant
	Property *models.Property
}

// ListTenants returns the tenants of every property recorded under ownerEmail.
func (s *TenantService) ListTenants(ctx context.Context, ownerEmail string) ([]TenantWithProperty, error) {
	repos := s.store.Repos(ctx)

	properties, err := repos.Properties.ListByOwnerEmail(strings.TrimSpace(ownerEmail))
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	byID := indexProperties(properties)
	tenants, err := repos.Tenants.ListByPropertyIDs(propertyIDs(properties))
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}

	result := make([]TenantWithProperty, len(tenants))
	for i, tenant := range tenants {
		result[i] = TenantWithProperty{Tenant: tenant, Property: byID[tenant.PropertyID]}
	}
	return result, nil
}

func findTenantByID(r *repository.Repositories, id uint64) (*models.Tenant, error) {
	tenant, err := r.Tenants.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to find tenant: %w", err)
	}
	return tenant, nil
}

func findTenantByEmail(r *repository.Repositories, email string) (*models.Tenant, error) {
	tenant, err := r.Tenants.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to find tenant: %w", err)
	}
	return tenant, nil
}

func propertyIDs(properties []models.Property) []uint64 {
	ids := make([]uint64, len(properties))
	for i, p := range properties {
		ids[i] = p.ID
	}
	return ids
}

func indexProperties(properties []models.Property) map[uint64]*models.Property {
	byID := make(map[uint64]*models.Property, len(properties))
	for i := range properties {
		byID[properties[i].ID] = &properties[i]
	}
	return byID
}
