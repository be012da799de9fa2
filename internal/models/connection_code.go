package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CodeState string

const (
	CodeStateIssued  CodeState = "issued"
	CodeStateUsed    CodeState = "used"
	CodeStateExpired CodeState = "expired"
)

// ConnectionCode is a one-time token that lets a tenant account claim a
// specific unit of a property at a fixed rent.
type ConnectionCode struct {
	ID         uint64          `gorm:"primarykey" json:"id"`
	Code       string          `gorm:"type:varchar(16);uniqueIndex;not null" json:"code"`
	PropertyID uint64          `gorm:"not null;index" json:"property_id"`
	Unit       string          `gorm:"type:varchar(50);not null" json:"unit"`
	RentAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"rent_amount"`
	IsUsed     bool            `gorm:"not null" json:"is_used"`
	ExpiresAt  time.Time       `gorm:"not null" json:"expires_at"`
	UsedAt     *time.Time      `json:"used_at,omitempty"`
	UsedBy     string          `gorm:"type:varchar(255)" json:"used_by,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// State evaluates the code at now. Expiry is checked before use, so an
// expired code reports expired whether or not it was consumed.
func (c *ConnectionCode) State(now time.Time) CodeState {
	if now.After(c.ExpiresAt) {
		return CodeStateExpired
	}
	if c.IsUsed {
		return CodeStateUsed
	}
	return CodeStateIssued
}

// MarkUsed consumes the code on behalf of email.
func (c *ConnectionCode) MarkUsed(email string, now time.Time) {
	usedAt := now
	c.IsUsed = true
	c.UsedAt = &usedAt
	c.UsedBy = email
}
