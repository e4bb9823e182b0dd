package dto

import (
	"time"

	"github.com/spec-kit/insurance-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminProfileResponse renders an admin account without its credential.
type AdminProfileResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
}

// NewAdminProfileResponse maps an account.
func NewAdminProfileResponse(admin *domain.Admin) AdminProfileResponse {
	return AdminProfileResponse{
		ID:          admin.ID,
		Username:    admin.Username,
		CreatedAt:   admin.CreatedAt,
		LastLoginAt: admin.LastLoginAt,
	}
}
