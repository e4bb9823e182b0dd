package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventInsuranceCreated       EventType = "insurance_created"
	EventInsuranceUpdated       EventType = "insurance_updated"
	EventInsuranceStatusChanged EventType = "insurance_status_changed"
	EventInsuranceDeleted       EventType = "insurance_deleted"
	EventApplicationSubmitted   EventType = "application_submitted"
)

// AllEventTypes lists every event the services publish.
var AllEventTypes = []EventType{
	EventInsuranceCreated,
	EventInsuranceUpdated,
	EventInsuranceStatusChanged,
	EventInsuranceDeleted,
	EventApplicationSubmitted,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	InsuranceID string      `json:"insurance_id"`
	Actor       Actor       `json:"actor"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// InsuranceChangedPayload is carried by created and updated events.
type InsuranceChangedPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// InsuranceStatusChangedPayload payload.
type InsuranceStatusChangedPayload struct {
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// InsuranceDeletedPayload payload.
type InsuranceDeletedPayload struct {
	Name string `json:"name"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	ApplicationID string    `json:"application_id"`
	InsuranceName string    `json:"insurance_name"`
	SelectedDate  time.Time `json:"selected_date"`
	Phone         string    `json:"phone"`
}
