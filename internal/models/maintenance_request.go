package models

import "time"

type MaintenancePriority string

const (
	PriorityLow    MaintenancePriority = "low"
	PriorityMedium MaintenancePriority = "medium"
	PriorityHigh   MaintenancePriority = "high"
)

func (p MaintenancePriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type MaintenanceStatus string

const (
	MaintenanceStatusPending    MaintenanceStatus = "pending"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
)

func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenanceStatusPending, MaintenanceStatusInProgress, MaintenanceStatusCompleted:
		return true
	}
	return false
}

type MaintenanceRequest struct {
	ID          uint64              `gorm:"primarykey" json:"id"`
	TenantEmail string              `gorm:"type:varchar(255);not null;index" json:"tenant_email"`
	TenantID    uint64              `gorm:"not null;index" json:"tenant_id"`
	PropertyID  uint64              `gorm:"not null;index" json:"property_id"`
	Title       string              `gorm:"type:varchar(255);not null" json:"title"`
	Description string              `gorm:"type:text;not null" json:"description"`
	Priority    MaintenancePriority `gorm:"type:varchar(20);not null" json:"priority"`
	Status      MaintenanceStatus   `gorm:"type:varchar(20);not null" json:"status"`
	Response    string              `gorm:"type:text" json:"response,omitempty"`
	CreatedAt   time.Time           `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
}

// SetStatus moves the request to status. CompletedAt is stamped the first
// time the request reaches completed and is never cleared afterwards.
func (r *MaintenanceRequest) SetStatus(status MaintenanceStatus, now time.Time) {
	r.Status = status
	if status == MaintenanceStatusCompleted && r.CompletedAt == nil {
		completedAt := now
		r.CompletedAt = &completedAt
	}
}
