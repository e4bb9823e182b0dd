package domain

import "time"

// Application is a visitor's request for an insurance product. Applications are append-only.
type Application struct {
	ID           string
	InsuranceID  string
	SelectedDate time.Time
	Phone        string
	CreatedAt    time.Time
}

// ApplicationView is an application joined with the product name for display.
// InsuranceName is empty when the product could not be resolved.
type ApplicationView struct {
	Application
	InsuranceName string
}

// SortOrder orders application listings by creation time.
type SortOrder string

const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)
