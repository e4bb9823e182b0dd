package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/insurance-service/internal/domain"
	"github.com/spec-kit/insurance-service/internal/repository"
)

const recentApplicationsLimit = 5

// MaxPageSize is the largest page ListApplications returns.
const MaxPageSize = repository.MaxSearchLimit

// ApplicationQuery filters the admin application listing. Zero values mean "no filter".
type ApplicationQuery struct {
	InsuranceID *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Sort        domain.SortOrder
	Limit       int
	Offset      int
}

// ApplicationPage is one page of application views.
type ApplicationPage struct {
	Items  []domain.ApplicationView
	Total  int
	Limit  int
	Offset int
}

// InsuranceApplicationCount is a per-product tally.
type InsuranceApplicationCount struct {
	InsuranceID   string
	InsuranceName string
	IsActive      bool
	Count         int
}

// Dashboard summarizes catalog and intake activity.
type Dashboard struct {
	TotalInsurances   int
	ActiveInsurances  int
	TotalApplications int
	TodayApplications int
	Recent            []domain.ApplicationView
	PerInsurance      []InsuranceApplicationCount
}

// ReportService serves read-only admin views.
type ReportService struct {
	applications repository.ApplicationRepository
	insurances   repository.InsuranceRepository
	logger       *zap.Logger
	clock        Clock
	location     *time.Location
}

// ReportDependencies bundles collaborators for reporting.
type ReportDependencies struct {
	ApplicationRepo repository.ApplicationRepository
	InsuranceRepo   repository.InsuranceRepository
	Logger          *zap.Logger
	Clock           Clock
	Location        *time.Location
}

// NewReportService builds the service.
func NewReportService(deps ReportDependencies) *ReportService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{
		applications: deps.ApplicationRepo,
		insurances:   deps.InsuranceRepo,
		logger:       logger,
		clock:        deps.Clock,
		location:     loc,
	}
}

// ListApplications returns a filtered, sorted page of applications with product names.
func (s *ReportService) ListApplications(ctx context.Context, query ApplicationQuery) (*ApplicationPage, error) {
	switch query.Sort {
	case "", domain.SortAsc, domain.SortDesc:
	default:
		return nil, validation("sort must be asc or desc", KeyReportInvalidSort, map[string]any{"sort": string(query.Sort)})
	}
	if query.CreatedFrom != nil && query.CreatedTo != nil && query.CreatedTo.Before(*query.CreatedFrom) {
		return nil, validation("createdTo must not be before createdFrom", KeyReportInvalidRange, nil)
	}

	filter := repository.NormalizeFilter(repository.ApplicationFilter{
		InsuranceID: query.InsuranceID,
		CreatedFrom: query.CreatedFrom,
		CreatedTo:   query.CreatedTo,
		Sort:        query.Sort,
		Limit:       query.Limit,
		Offset:      query.Offset,
	})

	apps, total, err := s.applications.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ApplicationPage{
		Items:  toViews(apps, resolveNames(ctx, s.insurances, s.logger)),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

// Dashboard computes catalog and intake totals. "Today" follows the business time zone.
func (s *ReportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	products, err := s.insurances.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.applications.CountsPerInsurance(ctx)
	if err != nil {
		return nil, err
	}
	today, err := s.applications.CountCreatedSince(ctx, s.startOfToday())
	if err != nil {
		return nil, err
	}
	recent, _, err := s.applications.Search(ctx, repository.ApplicationFilter{
		Sort:  domain.SortDesc,
		Limit: recentApplicationsLimit,
	})
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(products))
	dash := &Dashboard{
		TotalInsurances:   len(products),
		TodayApplications: today,
		PerInsurance:      make([]InsuranceApplicationCount, 0, len(products)),
	}
	for _, ins := range products {
		names[ins.ID] = ins.Name
		if ins.IsActive {
			dash.ActiveInsurances++
		}
		dash.PerInsurance = append(dash.PerInsurance, InsuranceApplicationCount{
			InsuranceID:   ins.ID,
			InsuranceName: ins.Name,
			IsActive:      ins.IsActive,
			Count:         counts[ins.ID],
		})
	}
	for _, n := range counts {
		dash.TotalApplications += n
	}
	dash.Recent = toViews(recent, names)
	return dash, nil
}

// startOfToday is local midnight in the business time zone.
func (s *ReportService) startOfToday() time.Time {
	now := s.clock.now().In(s.location)
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.location)
}
