package models

import "time"

const ReminderStatusSent = "sent"

type Reminder struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	TenantID    uint64     `gorm:"not null;index" json:"tenant_id"`
	TenantEmail string     `gorm:"type:varchar(255);not null;index" json:"tenant_email"`
	TenantName  string     `gorm:"type:varchar(255)" json:"tenant_name"`
	Message     string     `gorm:"type:text;not null" json:"message"`
	Type        string     `gorm:"type:varchar(50);not null" json:"type"`
	Status      string     `gorm:"type:varchar(20);not null" json:"status"`
	SentAt      time.Time  `json:"sent_at"`
	DueDate     *time.Time `gorm:"index" json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
