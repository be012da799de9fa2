package models

import "time"

type UserType string

const (
	UserTypeOwner  UserType = "owner"
	UserTypeTenant UserType = "tenant"
)

// Valid reports whether t is a known account type.
func (t UserType) Valid() bool {
	return t == UserTypeOwner || t == UserTypeTenant
}

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Phone        string    `gorm:"type:varchar(50)" json:"phone"`
	UserType     UserType  `gorm:"type:varchar(20);not null" json:"user_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
