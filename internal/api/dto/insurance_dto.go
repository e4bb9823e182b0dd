package dto

import (
	"time"

	"github.com/spec-kit/insurance-service/internal/domain"
)

// InsuranceRequest is the create and update payload.
type InsuranceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// InsuranceResponse renders a product.
type InsuranceResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

// NewInsuranceResponse maps a domain product.
func NewInsuranceResponse(ins *domain.Insurance) InsuranceResponse {
	return InsuranceResponse{
		ID:          ins.ID,
		Name:        ins.Name,
		Description: ins.Description,
		IsActive:    ins.IsActive,
		CreatedAt:   ins.CreatedAt,
		UpdatedAt:   ins.UpdatedAt,
	}
}

// NewInsuranceList maps a product listing. The result is never nil.
func NewInsuranceList(list []domain.Insurance) []InsuranceResponse {
	items := make([]InsuranceResponse, 0, len(list))
	for i := range list {
		items = append(items, NewInsuranceResponse(&list[i]))
	}
	return items
}
