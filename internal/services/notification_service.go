package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/property-management-api/internal/models"
	"github.com/yukikurage/property-management-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService reads and acknowledges stored notifications.
type NotificationService struct {
	base
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(store *repository.Store, log *zap.Logger, events EventRecorder) *NotificationService {
	return &NotificationService{base: newBase(store, log, events)}
}

// Inbox is a recipient's notifications with the number still unread.
type Inbox struct {
	Notifications []models.Notification
	UnreadCount   int
}

// ListNotifications returns the inbox of email for the given audience.
func (s *NotificationService) ListNotifications(ctx context.Context, email string, audience models.NotificationAudience) (*Inbox, error) {
	notifications, err := s.store.Repos(ctx).Notifications.ListForRecipient(strings.TrimSpace(email), audience)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	inbox := &Inbox{Notifications: notifications}
	for _, n := range notifications {
		if !n.Read {
			inbox.UnreadCount++
		}
	}
	return inbox, nil
}

// MarkRead flags a notification as read. Marking twice is harmless.
func (s *NotificationService) MarkRead(ctx context.Context, id uint64) error {
	if id == 0 {
		return ErrMissingFields
	}

	repos := s.store.Repos(ctx)
	if _, err := repos.Notifications.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to find notification: %w", err)
	}
	if err := repos.Notifications.MarkRead(id); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}
