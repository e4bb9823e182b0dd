package domain

import "time"

// Field limits shared by the services and the SQL schema.
const (
	InsuranceNameMaxLen        = 200
	InsuranceDescriptionMaxLen = 1000
	PhoneMaxLen                = 15
	UsernameMaxLen             = 50
)

// Insurance is an insurance product offered to the public.
type Insurance struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}
