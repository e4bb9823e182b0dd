package memory

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/insurance-service/internal/domain"
	"github.com/spec-kit/insurance-service/internal/repository"
)

type applicationRepository struct {
	store *Store
}

// NewApplicationRepository returns an intake repository over store.
func NewApplicationRepository(store *Store) repository.ApplicationRepository {
	return &applicationRepository{store: store}
}

func (r *applicationRepository) Create(_ context.Context, app *domain.Application) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	ins, ok := s.insurances[app.InsuranceID]
	if !ok || !ins.IsActive {
		return repository.ErrInsuranceUnavailable
	}
	app.ID = s.newID()
	s.applications[app.ID] = *app
	return nil
}

func (r *applicationRepository) GetByID(_ context.Context, id string) (*domain.Application, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	app, ok := s.applications[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &app, nil
}

func (r *applicationRepository) ListAll(_ context.Context) ([]domain.Application, error) {
	return r.collect(func(domain.Application) bool { return true }, false), nil
}

func (r *applicationRepository) ListByInsurance(_ context.Context, insuranceID string) ([]domain.Application, error) {
	return r.collect(func(app domain.Application) bool { return app.InsuranceID == insuranceID }, false), nil
}

func (r *applicationRepository) CountByInsurance(_ context.Context, insuranceID string) (int, error) {
	return len(r.collect(func(app domain.Application) bool { return app.InsuranceID == insuranceID }, false)), nil
}

func (r *applicationRepository) CountsPerInsurance(_ context.Context) (map[string]int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[string]int{}
	for _, app := range s.applications {
		counts[app.InsuranceID]++
	}
	return counts, nil
}

func (r *applicationRepository) CountCreatedSince(_ context.Context, since time.Time) (int, error) {
	return len(r.collect(func(app domain.Application) bool { return !app.CreatedAt.Before(since) }, false)), nil
}

func (r *applicationRepository) Search(_ context.Context, filter repository.ApplicationFilter) ([]domain.Application, int, error) {
	filter = repository.NormalizeFilter(filter)
	matched := r.collect(func(app domain.Application) bool {
		if filter.InsuranceID != nil && app.InsuranceID != *filter.InsuranceID {
			return false
		}
		if filter.CreatedFrom != nil && app.CreatedAt.Before(*filter.CreatedFrom) {
			return false
		}
		if filter.CreatedTo != nil && !app.CreatedAt.Before(*filter.CreatedTo) {
			return false
		}
		return true
	}, filter.Sort == domain.SortAsc)

	total := len(matched)
	if filter.Offset >= total {
		return []domain.Application{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}
	return matched[filter.Offset:end], total, nil
}

func (r *applicationRepository) collect(keep func(domain.Application) bool, asc bool) []domain.Application {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []domain.Application{}
	for _, app := range s.applications {
		if keep(app) {
			result = append(result, app)
		}
	}
	sortApplications(result, s.order, asc)
	return result
}
