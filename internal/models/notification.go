package models

import "time"

type NotificationAudience string

const (
	AudienceOwner  NotificationAudience = "owner"
	AudienceTenant NotificationAudience = "tenant"
)

type Notification struct {
	ID             uint64               `gorm:"primarykey" json:"id"`
	RecipientEmail string               `gorm:"type:varchar(255);not null;index:idx_notifications_recipient" json:"recipient_email"`
	Audience       NotificationAudience `gorm:"type:varchar(20);not null;index:idx_notifications_recipient" json:"audience"`
	Type           string               `gorm:"type:varchar(50);not null" json:"type"`
	Title          string               `gorm:"type:varchar(255);not null" json:"title"`
	Message        string               `gorm:"type:text" json:"message"`
	Priority       string               `gorm:"type:varchar(20)" json:"priority,omitempty"`
	Read           bool                 `gorm:"column:is_read;not null" json:"read"`
	RelatedID      uint64               `json:"related_id,omitempty"`
	RelatedType    string               `gorm:"type:varchar(50)" json:"related_type,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}
