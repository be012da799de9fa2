package dto

import (
	"time"

	"github.com/yukikurage/property-management-api/internal/models"
)

// UserDTO represents a user in API responses. The password hash never
// leaves the service.
type UserDTO struct {
	ID        uint64          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone,omitempty"`
	UserType  models.UserType `json:"user_type"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToUserDTO converts a user model to DTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		UserType:  user.UserType,
		CreatedAt: user.CreatedAt,
	}
}
