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
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrPaymentNotFound         = errors.New("payment not found")
	ErrPaymentAlreadyCompleted = errors.New("payment is already completed")
)

const (
	defaultRecordedNote  = "Payment recorded via owner dashboard"
	defaultSubmittedNote = "Payment submitted by tenant"
)

// PaymentService records rent payments and keeps tenant rent status in sync.
type PaymentService struct {
	base
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(store *repository.Store, log *zap.Logger, events EventRecorder) *PaymentService {
	return &PaymentService{base: newBase(store, log, events)}
}

// PaymentInput describes a payment made by a tenant.
type PaymentInput struct {
	TenantEmail   string
	Amount        decimal.Decimal
	PaymentMethod string
	PaidDate      *time.Time
	Notes         string
}

// RecordPayment stores a completed payment entered by the owner. A payment
// covering the full rent marks the tenant paid.
func (s *PaymentService) RecordPayment(ctx context.Context, input PaymentInput) (payment *models.Payment, err error) {
	defer func() { s.record("record_payment", err) }()
	return s.create(ctx, input, models.PaymentStatusCompleted, defaultRecordedNote)
}

// SubmitPayment stores a pending payment entered by the tenant. The rent
// status is left alone until the owner approves it.
func (s *PaymentService) SubmitPayment(ctx context.Context, input PaymentInput) (payment *models.Payment, err error) {
	defer func() { s.record("submit_payment", err) }()
	return s.create(ctx, input, models.PaymentStatusPending, defaultSubmittedNote)
}

func (s *PaymentService) create(ctx context.Context, input PaymentInput, status models.PaymentStatus, defaultNote string) (*models.Payment, error) {
	email := strings.TrimSpace(input.TenantEmail)
	if email == "" {
		return nil, ErrMissingFields
	}
	if !input.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var payment *models.Payment
	var statusChanged bool
	err := s.store.Atomic(ctx, func(r *repository.Repositories) error {
		tenant, err := findTenantByEmail(r, email)
		if err != nil {
			return err
		}

		payment = newPayment(input, tenant, status, defaultNote, s.now())
		if err := r.Payments.Create(payment); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		if status == models.PaymentStatusCompleted {
			statusChanged, err = applyToTenant(r, tenant, payment.Amount)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("payment stored",
		zap.Uint64("payment_id", payment.ID),
		zap.String("tenant_email", payment.TenantEmail),
		zap.String("status", string(payment.Status)),
		zap.Bool("rent_marked_paid", statusChanged),
	)
	return payment, nil
}

// ApprovePayment completes a pending payment and applies it to the tenant's
// rent status.
func (s *PaymentService) ApprovePayment(ctx context.Context, paymentID uint64) (payment *models.Payment, err error) {
	defer func() { s.record("approve_payment", err) }()

	if paymentID == 0 {
		return nil, ErrMissingFields
	}

	err = s.store.Atomic(ctx, func(r *repository.Repositories) error {
		found, err := r.Payments.FindByID(paymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return fmt.Errorf("failed to find payment: %w", err)
		}
		if found.Status == models.PaymentStatusCompleted {
			return ErrPaymentAlreadyCompleted
		}

		found.Status = models.PaymentStatusCompleted
		if err := r.Payments.Update(found); err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}

		tenant, err := findTenantByEmail(r, found.TenantEmail)
		switch {
		case err == nil:
			if _, err := applyToTenant(r, tenant, found.Amount); err != nil {
				return err
			}
		case !errors.Is(err, ErrTenantNotFound):
			return err
		}

		payment = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("payment approved", zap.Uint64("payment_id", payment.ID))
	return payment, nil
}

// PaymentHistory lists a tenant's payments, newest first.
func (s *PaymentService) PaymentHistory(ctx context.Context, tenantEmail string) ([]models.Payment, error) {
	payments, err := s.store.Repos(ctx).Payments.ListByTenantEmail(strings.TrimSpace(tenantEmail))
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// PaymentPage is one slice of a tenant's payment history.
type PaymentPage struct {
	Payments []models.Payment
	Total    int64
}

// PaymentHistoryPage lists limit payments of a tenant starting at offset,
// newest first.
func (s *PaymentService) PaymentHistoryPage(ctx context.Context, tenantEmail string, offset, limit int) (*PaymentPage, error) {
	payments, total, err := s.store.Repos(ctx).Payments.PageByTenantEmail(strings.TrimSpace(tenantEmail), offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return &PaymentPage{Payments: payments, Total: total}, nil
}

func newPayment(input PaymentInput, tenant *models.Tenant, status models.PaymentStatus, defaultNote string, now time.Time) *models.Payment {
	method := strings.TrimSpace(input.PaymentMethod)
	if method == "" {
		method = constants.DefaultPaymentMethod
	}
	notes := strings.TrimSpace(input.Notes)
	if notes == "" {
		notes = defaultNote
	}
	paidDate := now
	if input.PaidDate != nil {
		paidDate = *input.PaidDate
	}

	return &models.Payment{
		TenantEmail:   tenant.Email,
		TenantID:      tenant.ID,
		PropertyID:    tenant.PropertyID,
		Amount:        input.Amount,
		PaymentMethod: method,
		PaidDate:      paidDate,
		Status:        status,
		Notes:         notes,
	}
}

func applyToTenant(r *repository.Repositories, tenant *models.Tenant, amount decimal.Decimal) (bool, error) {
	if !tenant.ApplyPayment(amount) {
		return false, nil
	}
	if err := r.Tenants.Update(tenant); err != nil {
		return false, fmt.Errorf("failed to update rent status: %w", err)
	}
	return true, nil
}
