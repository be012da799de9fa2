package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/property-management-api/internal/constants"
	"github.com/yukikurage/property-management-api/internal/models"
	"github.com/yukikurage/property-management-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrAIUnavailable  = errors.New("reminder drafting is not configured")
	ErrDraftingFailed = errors.New("failed to draft reminder")
)

const relatedTypeReminder = "reminder"

// ReminderService sends reminders to tenants and drafts their text.
type ReminderService struct {
	base
	drafter ReminderDrafter
}

// NewReminderService creates a new ReminderService. drafter may be nil.
func NewReminderService(store *repository.Store, log *zap.Logger, events EventRecorder, drafter ReminderDrafter) *ReminderService {
	return &ReminderService{
		base:    newBase(store, log, events),
		drafter: drafter,
	}
}

// SendReminderInput is a reminder addressed to one tenant.
type SendReminderInput struct {
	TenantID     uint64
	Message      string
	ReminderType string
	DueDate      *time.Time
}

// SendReminder stores a sent reminder and a matching tenant notification.
func (s *ReminderService) SendReminder(ctx context.Context, input SendReminderInput) (reminder *models.Reminder, err error) {
	defer func() { s.record("send_reminder", err) }()

	message := strings.TrimSpace(input.Message)
	if input.TenantID == 0 || message == "" {
		return nil, ErrMissingFields
	}
	reminderType := strings.TrimSpace(input.ReminderType)
	if reminderType == "" {
		reminderType = constants.DefaultReminderType
	}

	err = s.store.Atomic(ctx, func(r *repository.Repositories) error {
		tenant, err := findTenantByID(r, input.TenantID)
		if err != nil {
			return err
		}

		var dueDate *time.Time
		if input.DueDate != nil {
			due := input.DueDate.UTC()
			dueDate = &due
		}

		now := s.now()
		reminder = &models.Reminder{
			TenantID:    tenant.ID,
			TenantEmail: tenant.Email,
			TenantName:  tenant.Name,
			Message:     message,
			Type:        reminderType,
			Status:      models.ReminderStatusSent,
			SentAt:      now,
			DueDate:     dueDate,
		}
		if err := r.Reminders.Create(reminder); err != nil {
			return fmt.Errorf("failed to create reminder: %w", err)
		}

		notification := &models.Notification{
			RecipientEmail: tenant.Email,
			Audience:       models.AudienceTenant,
			Type:           reminderType,
			Title:          "New Reminder from Owner",
			Message:        message,
			RelatedID:      reminder.ID,
			RelatedType:    relatedTypeReminder,
		}
		if err := r.Notifications.Create(notification); err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("reminder sent",
		zap.Uint64("reminder_id", reminder.ID),
		zap.Uint64("tenant_id", reminder.TenantID),
		zap.String("type", reminder.Type),
	)
	return reminder, nil
}

// DraftReminderInput asks for a suggested reminder text.
type DraftReminderInput struct {
	TenantID     uint64
	ReminderType string
	Note         string
}

// DraftReminder returns suggested reminder text. Nothing is stored.
func (s *ReminderService) DraftReminder(ctx context.Context, input DraftReminderInput) (message string, err error) {
	defer func() { s.record("draft_reminder", err) }()

	if input.TenantID == 0 {
		return "", ErrMissingFields
	}
	if s.drafter == nil {
		return "", ErrAIUnavailable
	}

	repos := s.store.Repos(ctx)
	tenant, err := findTenantByID(repos, input.TenantID)
	if err != nil {
		return "", err
	}

	brief := ReminderBrief{
		TenantName:   tenant.Name,
		Unit:         tenant.Unit,
		RentAmount:   tenant.RentAmount,
		RentDueDate:  tenant.RentDueDate,
		RentStatus:   string(tenant.RentStatus),
		ReminderType: input.ReminderType,
		Note:         strings.TrimSpace(input.Note),
	}
	if brief.ReminderType == "" {
		brief.ReminderType = constants.DefaultReminderType
	}

	property, err := repos.Properties.FindByID(tenant.PropertyID)
	switch {
	case err == nil:
		brief.PropertyName = property.Name
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return "", fmt.Errorf("failed to find property: %w", err)
	}

	message, err = s.drafter.DraftReminder(ctx, brief)
	if err != nil {
		s.log.Warn("reminder drafting failed", zap.Uint64("tenant_id", tenant.ID), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrDraftingFailed, err)
	}
	return message, nil
}
