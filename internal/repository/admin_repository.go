package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/insurance-service/internal/domain"
)

// AdminRepository defines persistence access for administrator accounts.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

type adminRepository struct {
	db Querier
}

// NewAdminRepository returns a Postgres-backed implementation.
func NewAdminRepository(db Querier) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	const query = `
        INSERT INTO admin_accounts (username, password_hash, created_at)
        VALUES ($1, $2, $3)
        RETURNING id`

	err := r.db.QueryRow(ctx, query,
		admin.Username,
		admin.PasswordHash,
		admin.CreatedAt,
	).Scan(&admin.ID)
	return mapPgError(err, ErrDuplicateUsername, nil)
}

func (r *adminRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	if !validID(id) {
		return pgx.ErrNoRows
	}
	cmd, err := r.db.Exec(ctx, `UPDATE admin_accounts SET last_login_at=$1 WHERE id=$2`, at, id)
	if err != nil {
		return mapPgError(err, nil, nil)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	if !validID(id) {
		return nil, pgx.ErrNoRows
	}
	const query = `
        SELECT id, username, password_hash, created_at, last_login_at
        FROM admin_accounts WHERE id=$1`
	return scanAdmin(r.db.QueryRow(ctx, query, id))
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	const query = `
        SELECT id, username, password_hash, created_at, last_login_at
        FROM admin_accounts WHERE username=$1`
	return scanAdmin(r.db.QueryRow(ctx, query, username))
}

func scanAdmin(row pgx.Row) (*domain.Admin, error) {
	var admin domain.Admin
	if err := row.Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&admin.CreatedAt,
		&admin.LastLoginAt,
	); err != nil {
		return nil, mapPgError(err, nil, nil)
	}
	return &admin, nil
}
