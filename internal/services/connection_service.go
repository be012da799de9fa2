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
	"github.com/yukikurage/property-management-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrCodeNotFound         = errors.New("invalid connection code")
	ErrCodeExpired          = errors.New("connection code has expired")
	ErrCodeAlreadyUsed      = errors.New("connection code has already been used")
	ErrCodeGenerationFailed = errors.New("failed to generate connection code")
	ErrUnitOccupied         = errors.New("unit is already occupied")
	ErrPropertyFull         = errors.New("property has no available units")
	ErrRentNotPositive      = errors.New("rent amount must be positive")
)

// ConnectionService issues connection codes and lets tenants redeem them.
type ConnectionService struct {
	base
	generate func() (string, error)
}

// NewConnectionService creates a new ConnectionService.
func NewConnectionService(store *repository.Store, log *zap.Logger, events EventRecorder) *ConnectionService {
	return &ConnectionService{
		base:     newBase(store, log, events),
		generate: utils.GenerateConnectionCode,
	}
}

// GenerateCodeInput binds a future tenant to a unit at a fixed rent.
type GenerateCodeInput struct {
	PropertyID uint64
	Unit       string
	RentAmount decimal.Decimal
}

// GenerateCode issues a fresh one-time code valid for ConnectionCodeTTL.
func (s *ConnectionService) GenerateCode(ctx context.Context, input GenerateCodeInput) (code *models.ConnectionCode, err error) {
	defer func() { s.record("generate_code", err) }()

	unit := strings.TrimSpace(input.Unit)
	if input.PropertyID == 0 || unit == "" {
		return nil, ErrMissingFields
	}
	if !input.RentAmount.IsPositive() {
		return nil, ErrRentNotPositive
	}

	err = s.store.Atomic(ctx, func(r *repository.Repositories) error {
		if _, err := findProperty(r, input.PropertyID); err != nil {
			return err
		}

		token, err := s.uniqueToken(r)
		if err != nil {
			return err
		}

		now := s.now()
		code = &models.ConnectionCode{
			Code:       token,
			PropertyID: input.PropertyID,
			Unit:       unit,
			RentAmount: input.RentAmount,
			ExpiresAt:  now.Add(constants.ConnectionCodeTTL),
			CreatedAt:  now,
		}
		if err := r.ConnectionCodes.Create(code); err != nil {
			return fmt.Errorf("failed to store connection code: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("connection code issued",
		zap.Uint64("property_id", code.PropertyID),
		zap.String("unit", code.Unit),
		zap.Time("expires_at", code.ExpiresAt),
	)
	return code, nil
}

func (s *ConnectionService) uniqueToken(r *repository.Repositories) (string, error) {
	for attempt := 0; attempt < constants.MaxCodeGenerationAttempts; attempt++ {
		token, err := s.generate()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrCodeGenerationFailed, err)
		}
		exists, err := r.ConnectionCodes.Exists(token)
		if err != nil {
			return "", fmt.Errorf("failed to check connection code: %w", err)
		}
		if !exists {
			return token, nil
		}
	}
	return "", ErrCodeGenerationFailed
}

// ValidatedCode is a redeemable code together with its property.
type ValidatedCode struct {
	Code     models.ConnectionCode
	Property models.Property
}

// ValidateCode reports whether token can still be redeemed.
func (s *ConnectionService) ValidateCode(ctx context.Context, token string) (*ValidatedCode, error) {
	validated, err := s.checkCode(s.store.Repos(ctx), strings.TrimSpace(token), s.now())
	s.record("validate_code", err)
	if err != nil {
		return nil, err
	}
	return validated, nil
}

// checkCode applies the redemption checks in order: unknown code, expiry,
// prior use, then the property lookup.
func (s *ConnectionService) checkCode(r *repository.Repositories, token string, now time.Time) (*ValidatedCode, error) {
	if token == "" {
		return nil, ErrMissingFields
	}

	code, err := r.ConnectionCodes.FindByCode(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, fmt.Errorf("failed to find connection code: %w", err)
	}

	switch code.State(now) {
	case models.CodeStateExpired:
		return nil, ErrCodeExpired
	case models.CodeStateUsed:
		return nil, ErrCodeAlreadyUsed
	}

	property, err := findProperty(r, code.PropertyID)
	if err != nil {
		return nil, err
	}

	return &ValidatedCode{Code: *code, Property: *property}, nil
}

// ConnectInput identifies the code and the tenant account redeeming it.
type ConnectInput struct {
	Code        string
	TenantEmail string
}

// ConnectWithCode redeems a code: the tenant record, the code consumption
// and the occupancy change commit together or not at all.
func (s *ConnectionService) ConnectWithCode(ctx context.Context, input ConnectInput) (result *ValidatedCode, err error) {
	defer func() { s.record("connect_with_code", err) }()

	token := strings.TrimSpace(input.Code)
	email := strings.TrimSpace(input.TenantEmail)
	if token == "" || email == "" {
		return nil, ErrMissingFields
	}

	var tenant *models.Tenant
	err = s.store.Atomic(ctx, func(r *repository.Repositories) error {
		user, err := findUser(r, email)
		if err != nil {
			return err
		}

		now := s.now()
		validated, err := s.checkCode(r, token, now)
		if err != nil {
			return err
		}
		code := validated.Code
		property := validated.Property

		if err := occupyUnit(r, &property, code.Unit); err != nil {
			return err
		}

		tenant = &models.Tenant{
			Email:          email,
			Name:           user.Name,
			PropertyID:     property.ID,
			Unit:           code.Unit,
			RentAmount:     code.RentAmount,
			RentDueDate:    now.Add(constants.DefaultRentPeriod),
			RentStatus:     models.RentStatusPending,
			MoveInDate:     now,
			ConnectionCode: code.Code,
		}
		if err := r.Tenants.Create(tenant); err != nil {
			return fmt.Errorf("failed to create tenant: %w", err)
		}

		code.MarkUsed(email, now)
		if err := r.ConnectionCodes.Update(&code); err != nil {
			return fmt.Errorf("failed to consume connection code: %w", err)
		}

		result = &ValidatedCode{Code: code, Property: property}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("tenant connected with code",
		zap.Uint64("tenant_id", tenant.ID),
		zap.Uint64("property_id", tenant.PropertyID),
		zap.String("unit", tenant.Unit),
	)
	return result, nil
}

// occupyUnit checks that unit is free and the property has room, then
// persists the incremented occupancy. Must run inside Store.Atomic.
func occupyUnit(r *repository.Repositories, property *models.Property, unit string) error {
	if _, err := r.Tenants.FindByPropertyUnit(property.ID, unit); err == nil {
		return ErrUnitOccupied
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check unit: %w", err)
	}

	if !property.Occupy() {
		return ErrPropertyFull
	}
	if err := r.Properties.Update(property); err != nil {
		return fmt.Errorf("failed to update occupancy: %w", err)
	}
	return nil
}
