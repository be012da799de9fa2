package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/property-management-api/internal/constants"
	"github.com/yukikurage/property-management-api/internal/models"
	"github.com/yukikurage/property-management-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrOwnerNotFound     = errors.New("owner not found")
	ErrPropertyNotFound  = errors.New("property not found")
	ErrHasActiveTenants  = errors.New("cannot delete property with active tenants")
	ErrInvalidTotalUnits = errors.New("total units must be at least 1")
	ErrInvalidRentAmount = errors.New("rent amount cannot be negative")
)

// ActiveTenantsError reports how many tenants block a property removal.
// It matches ErrHasActiveTenants with errors.Is.
type ActiveTenantsError struct {
	Count int64
}

func (e *ActiveTenantsError) Error() string {
	return fmt.Sprintf("%d tenant(s) still assigned to this property", e.Count)
}

func (e *ActiveTenantsError) Is(target error) bool {
	return target == ErrHasActiveTenants
}

// PropertyService provides business logic for property operations.
type PropertyService struct {
	base
}

// NewPropertyService creates a new PropertyService.
func NewPropertyService(store *repository.Store, log *zap.Logger, events EventRecorder) *PropertyService {
	return &PropertyService{base: newBase(store, log, events)}
}

// AddPropertyInput represents parameters to register a property. Zero values
// fall back to the defaults (apartment, one unit, no rent).
type AddPropertyInput struct {
	Name         string
	Address      string
	PropertyType string
	TotalUnits   *int
	RentAmount   *decimal.Decimal
	OwnerEmail   string
}

// AddProperty registers a property for an existing owner account.
func (s *PropertyService) AddProperty(ctx context.Context, input AddPropertyInput) (property *models.Property, err error) {
	defer func() { s.record("add_property", err) }()

	name := strings.TrimSpace(input.Name)
	address := strings.TrimSpace(input.Address)
	ownerEmail := strings.TrimSpace(input.OwnerEmail)
	if name == "" || address == "" || ownerEmail == "" {
		return nil, ErrMissingFields
	}

	propertyType := strings.TrimSpace(input.PropertyType)
	if propertyType == "" {
		propertyType = constants.DefaultPropertyType
	}

	totalUnits := constants.DefaultTotalUnits
	if input.TotalUnits != nil {
		totalUnits = *input.TotalUnits
	}
	if totalUnits < 1 {
		return nil, ErrInvalidTotalUnits
	}

	rent := decimal.Zero
	if input.RentAmount != nil {
		rent = *input.RentAmount
	}
	if rent.IsNegative() {
		return nil, ErrInvalidRentAmount
	}

	repos := s.store.Repos(ctx)
	owner, err := findOwner(repos, ownerEmail)
	if err != nil {
		return nil, err
	}

	property = &models.Property{
		Name:           name,
		Address:        address,
		PropertyType:   propertyType,
		TotalUnits:     totalUnits,
		OccupiedUnits:  0,
		AvailableUnits: totalUnits,
		OwnerID:        owner.ID,
		OwnerEmail:     owner.Email,
		RentAmount:     rent,
	}
	if err := repos.Properties.Create(property); err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	s.log.Info("property added",
		zap.Uint64("property_id", property.ID),
		zap.String("owner_email", property.OwnerEmail),
		zap.Int("total_units", property.TotalUnits),
	)
	return property, nil
}

// ListProperties returns properties recorded under ownerEmail.
func (s *PropertyService) ListProperties(ctx context.Context, ownerEmail string) ([]models.Property, error) {
	properties, err := s.store.Repos(ctx).Properties.ListByOwnerEmail(strings.TrimSpace(ownerEmail))
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

// PropertyRemoval describes a deleted property and what was cleaned up.
type PropertyRemoval struct {
	Property               models.Property
	ConnectionCodesRemoved int64
}

// RemoveProperty deletes a property with no tenants together with its
// connection codes.
func (s *PropertyService) RemoveProperty(ctx context.Context, id uint64) (removal *PropertyRemoval, err error) {
	defer func() { s.record("remove_property", err) }()

	err = s.store.Atomic(ctx, func(r *repository.Repositories) error {
		property, err := r.Properties.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPropertyNotFound
			}
			return fmt.Errorf("failed to find property: %w", err)
		}

		count, err := r.Tenants.CountByProperty(id)
		if err != nil {
			return fmt.Errorf("failed to count tenants: %w", err)
		}
		if count > 0 {
			return &ActiveTenantsError{Count: count}
		}

		if err := r.Properties.Delete(id); err != nil {
			return fmt.Errorf("failed to delete property: %w", err)
		}
		removed, err := r.ConnectionCodes.DeleteByProperty(id)
		if err != nil {
			return fmt.Errorf("failed to delete connection codes: %w", err)
		}

		removal = &PropertyRemoval{Property: *property, ConnectionCodesRemoved: removed}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("property removed",
		zap.Uint64("property_id", id),
		zap.Int64("connection_codes_removed", removal.ConnectionCodesRemoved),
	)
	return removal, nil
}

// OccupiedUnits lists the unit labels currently held by tenants.
func (s *PropertyService) OccupiedUnits(ctx context.Context, propertyID uint64) ([]string, error) {
	units, err := s.store.Repos(ctx).Tenants.ListUnitsByProperty(propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list occupied units: %w", err)
	}
	return units, nil
}

// findOwner resolves an owner account by email. Tenant accounts with the
// same email do not match.
func findOwner(r *repository.Repositories, email string) (*models.User, error) {
	user, err := r.Users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}
	if user.UserType != models.UserTypeOwner {
		return nil, ErrOwnerNotFound
	}
	return user, nil
}

func findProperty(r *repository.Repositories, id uint64) (*models.Property, error) {
	property, err := r.Properties.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	return property, nil
}

func findUser(r *repository.Repositories, email string) (*models.User, error) {
	user, err := r.Users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
