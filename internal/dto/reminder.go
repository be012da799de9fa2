package dto

import (
	"time"

	"github.com/yukikurage/property-management-api/internal/models"
)

type ReminderDTO struct {
	ID          uint64     `json:"id"`
	TenantID    uint64     `json:"tenant_id"`
	TenantEmail string     `json:"tenant_email"`
	TenantName  string     `json:"tenant_name"`
	Message     string     `json:"message"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	SentAt      time.Time  `json:"sent_at"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

func ToReminderDTO(r models.Reminder) ReminderDTO {
	return ReminderDTO{
		ID:          r.ID,
		TenantID:    r.TenantID,
		TenantEmail: r.TenantEmail,
		TenantName:  r.TenantName,
		Message:     r.Message,
		Type:        r.Type,
		Status:      r.Status,
		SentAt:      r.SentAt,
		DueDate:     r.DueDate,
	}
}

func ToReminderDTOs(reminders []models.Reminder) []ReminderDTO {
	result := make([]ReminderDTO, len(reminders))
	for i, r := range reminders {
		result[i] = ToReminderDTO(r)
	}
	return result
}

type NotificationDTO struct {
	ID          uint64    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Priority    string    `json:"priority,omitempty"`
	Read        bool      `json:"read"`
	RelatedID   uint64    `json:"related_id,omitempty"`
	RelatedType string    `json:"related_type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToNotificationDTOs(notifications []models.Notification) []NotificationDTO {
	result := make([]NotificationDTO, len(notifications))
	for i, n := range notifications {
		result[i] = NotificationDTO{
			ID:          n.ID,
			Type:        n.Type,
			Title:       n.Title,
			Message:     n.Message,
			Priority:    n.Priority,
			Read:        n.Read,
			RelatedID:   n.RelatedID,
			RelatedType: n.RelatedType,
			CreatedAt:   n.CreatedAt,
		}
	}
	return result
}
