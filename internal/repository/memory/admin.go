package memory

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/insurance-service/internal/domain"
	"github.com/spec-kit/insurance-service/internal/repository"
)

type adminRepository struct {
	store *Store
}

// NewAdminRepository returns an admin account repository over store.
func NewAdminRepository(store *Store) repository.AdminRepository {
	return &adminRepository{store: store}
}

func (r *adminRepository) Create(_ context.Context, admin *domain.Admin) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.admins {
		if existing.Username == admin.Username {
			return repository.ErrDuplicateUsername
		}
	}
	admin.ID = s.newID()
	s.admins[admin.ID] = *admin
	return nil
}

func (r *adminRepository) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	admin, ok := s.admins[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	admin.LastLoginAt = copyTime(admin.LastLoginAt)
	return &admin, nil
}

func (r *adminRepository) GetByUsername(_ context.Context, username string) (*domain.Admin, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, admin := range s.admins {
		if admin.Username == username {
			admin.LastLoginAt = copyTime(admin.LastLoginAt)
			return &admin, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *adminRepository) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	admin, ok := s.admins[id]
	if !ok {
		return pgx.ErrNoRows
	}
	admin.LastLoginAt = &at
	s.admins[admin.ID] = admin
	return nil
}
