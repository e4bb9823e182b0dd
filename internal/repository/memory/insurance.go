package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/insurance-service/internal/domain"
	"github.com/spec-kit/insurance-service/internal/repository"
)

type insuranceRepository struct {
	store *Store
}

// NewInsuranceRepository returns a catalog repository over store.
func NewInsuranceRepository(store *Store) repository.InsuranceRepository {
	return &insuranceRepository{store: store}
}

func (r *insuranceRepository) Create(_ context.Context, ins *domain.Insurance) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(ins.Name, "") {
		return repository.ErrDuplicateName
	}
	ins.ID = s.newID()
	s.insurances[ins.ID] = *ins
	return nil
}

func (r *insuranceRepository) Update(_ context.Context, ins *domain.Insurance) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.insurances[ins.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if s.nameTaken(ins.Name, ins.ID) {
		return repository.ErrDuplicateName
	}
	current.Name = ins.Name
	current.Description = ins.Description
	current.UpdatedAt = copyTime(ins.UpdatedAt)
	s.insurances[current.ID] = current
	return nil
}

func (r *insuranceRepository) ToggleActive(_ context.Context, id string, at time.Time) (*domain.Insurance, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.insurances[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	current.IsActive = !current.IsActive
	current.UpdatedAt = &at
	// Callers may pass request-scoped strings; only stored ids become map keys.
	s.insurances[current.ID] = current
	return cloneInsurance(current), nil
}

func (r *insuranceRepository) Delete(_ context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.insurances[id]; !ok {
		return pgx.ErrNoRows
	}
	for _, app := range s.applications {
		if app.InsuranceID == id {
			return repository.ErrHasApplications
		}
	}
	delete(s.insurances, id)
	return nil
}

func (r *insuranceRepository) GetByID(_ context.Context, id string) (*domain.Insurance, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	ins, ok := s.insurances[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return cloneInsurance(ins), nil
}

func (r *insuranceRepository) GetByName(_ context.Context, name string) (*domain.Insurance, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ins := range s.insurances {
		if ins.Name == name {
			return cloneInsurance(ins), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *insuranceRepository) ListAll(_ context.Context) ([]domain.Insurance, error) {
	return r.list(func(domain.Insurance) bool { return true }), nil
}

func (r *insuranceRepository) ListActive(_ context.Context) ([]domain.Insurance, error) {
	return r.list(func(ins domain.Insurance) bool { return ins.IsActive }), nil
}

func (r *insuranceRepository) list(keep func(domain.Insurance) bool) []domain.Insurance {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []domain.Insurance{}
	for _, ins := range s.insurances {
		if keep(ins) {
			result = append(result, *cloneInsurance(ins))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// nameTaken must be called with the lock held.
func (s *Store) nameTaken(name, exceptID string) bool {
	for id, ins := range s.insurances {
		if id != exceptID && ins.Name == name {
			return true
		}
	}
	return false
}

func cloneInsurance(ins domain.Insurance) *domain.Insurance {
	ins.UpdatedAt = copyTime(ins.UpdatedAt)
	return &ins
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
