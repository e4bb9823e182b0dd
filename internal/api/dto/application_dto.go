package dto

import (
	"time"

	"github.com/spec-kit/insurance-service/internal/domain"
	"github.com/spec-kit/insurance-service/internal/service"
)

// ApplicationRequest is the public intake payload. SelectedDate is YYYY-MM-DD or RFC 3339.
type ApplicationRequest struct {
	InsuranceID  string `json:"insuranceId"`
	SelectedDate string `json:"selectedDate"`
	Phone        string `json:"phone"`
}

// ApplicationResponse renders an application with its product name.
type ApplicationResponse struct {
	ID            string    `json:"id"`
	InsuranceID   string    `json:"insuranceId"`
	InsuranceName string    `json:"insuranceName"`
	SelectedDate  string    `json:"selectedDate"`
	Phone         string    `json:"phone"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ApplicationPageResponse is one page of the admin listing.
type ApplicationPageResponse struct {
	Items    []ApplicationResponse `json:"items"`
	Total    int                   `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"pageSize"`
}

// InsuranceCountResponse is a per-product tally.
type InsuranceCountResponse struct {
	InsuranceID   string `json:"insuranceId"`
	InsuranceName string `json:"insuranceName"`
	IsActive      bool   `json:"isActive"`
	Applications  int    `json:"applications"`
}

// DashboardResponse renders the admin summary.
type DashboardResponse struct {
	TotalInsurances    int                      `json:"totalInsurances"`
	ActiveInsurances   int                      `json:"activeInsurances"`
	TotalApplications  int                      `json:"totalApplications"`
	TodayApplications  int                      `json:"todayApplications"`
	RecentApplications []ApplicationResponse    `json:"recentApplications"`
	PerInsurance       []InsuranceCountResponse `json:"perInsurance"`
}

// NewApplicationResponse maps a view.
func NewApplicationResponse(view *domain.ApplicationView) ApplicationResponse {
	return ApplicationResponse{
		ID:            view.ID,
		InsuranceID:   view.InsuranceID,
		InsuranceName: view.InsuranceName,
		SelectedDate:  view.SelectedDate.Format(service.DateLayout),
		Phone:         view.Phone,
		CreatedAt:     view.CreatedAt,
	}
}

// NewApplicationList maps views. The result is never nil.
func NewApplicationList(views []domain.ApplicationView) []ApplicationResponse {
	items := make([]ApplicationResponse, 0, len(views))
	for i := range views {
		items = append(items, NewApplicationResponse(&views[i]))
	}
	return items
}

// NewDashboardResponse maps the dashboard.
func NewDashboardResponse(d *service.Dashboard) DashboardResponse {
	counts := make([]InsuranceCountResponse, 0, len(d.PerInsurance))
	for _, c := range d.PerInsurance {
		counts = append(counts, InsuranceCountResponse{
			InsuranceID:   c.InsuranceID,
			InsuranceName: c.InsuranceName,
			IsActive:      c.IsActive,
			Applications:  c.Count,
		})
	}
	return DashboardResponse{
		TotalInsurances:    d.TotalInsurances,
		ActiveInsurances:   d.ActiveInsurances,
		TotalApplications:  d.TotalApplications,
		TodayApplications:  d.TodayApplications,
		RecentApplications: NewApplicationList(d.Recent),
		PerInsurance:       counts,
	}
}
