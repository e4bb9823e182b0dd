package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/insurance-service/internal/domain"
)

// InsuranceRepository manages insurance product persistence.
type InsuranceRepository interface {
	Create(ctx context.Context, ins *domain.Insurance) error
	Update(ctx context.Context, ins *domain.Insurance) error
	ToggleActive(ctx context.Context, id string, at time.Time) (*domain.Insurance, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Insurance, error)
	GetByName(ctx context.Context, name string) (*domain.Insurance, error)
	ListAll(ctx context.Context) ([]domain.Insurance, error)
	ListActive(ctx context.Context) ([]domain.Insurance, error)
}

type insuranceRepository struct {
	db Querier
}

// NewInsuranceRepository builds the repository.
func NewInsuranceRepository(db Querier) InsuranceRepository {
	return &insuranceRepository{db: db}
}

const insuranceColumns = `id, name, description, is_active, created_at, updated_at`

func (r *insuranceRepository) Create(ctx context.Context, ins *domain.Insurance) error {
	const query = `
        INSERT INTO insurance_products (name, description, is_active, created_at)
        VALUES ($1,$2,$3,$4)
        RETURNING id`
	err := r.db.QueryRow(ctx, query,
		ins.Name,
		ins.Description,
		ins.IsActive,
		ins.CreatedAt,
	).Scan(&ins.ID)
	return mapPgError(err, ErrDuplicateName, nil)
}

func (r *insuranceRepository) Update(ctx context.Context, ins *domain.Insurance) error {
	if !validID(ins.ID) {
		return pgx.ErrNoRows
	}
	const query = `
        UPDATE insurance_products SET name=$1, description=$2, updated_at=$3
        WHERE id=$4`
	cmd, err := r.db.Exec(ctx, query,
		ins.Name,
		ins.Description,
		ins.UpdatedAt,
		ins.ID,
	)
	if err != nil {
		return mapPgError(err, ErrDuplicateName, nil)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ToggleActive flips the flag in a single statement so concurrent toggles never lose an update.
func (r *insuranceRepository) ToggleActive(ctx context.Context, id string, at time.Time) (*domain.Insurance, error) {
	if !validID(id) {
		return nil, pgx.ErrNoRows
	}
	const query = `
        UPDATE insurance_products SET is_active = NOT is_active, updated_at=$2
        WHERE id=$1
        RETURNING ` + insuranceColumns
	return scanInsurance(r.db.QueryRow(ctx, query, id, at))
}

func (r *insuranceRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return pgx.ErrNoRows
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM insurance_products WHERE id=$1`, id)
	if err != nil {
		return mapPgError(err, nil, ErrHasApplications)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *insuranceRepository) GetByID(ctx context.Context, id string) (*domain.Insurance, error) {
	if !validID(id) {
		return nil, pgx.ErrNoRows
	}
	const query = `SELECT ` + insuranceColumns + ` FROM insurance_products WHERE id=$1`
	return scanInsurance(r.db.QueryRow(ctx, query, id))
}

func (r *insuranceRepository) GetByName(ctx context.Context, name string) (*domain.Insurance, error) {
	const query = `SELECT ` + insuranceColumns + ` FROM insurance_products WHERE name=$1`
	return scanInsurance(r.db.QueryRow(ctx, query, name))
}

func (r *insuranceRepository) ListAll(ctx context.Context) ([]domain.Insurance, error) {
	const query = `SELECT ` + insuranceColumns + ` FROM insurance_products ORDER BY name COLLATE "C" ASC`
	return r.list(ctx, query)
}

func (r *insuranceRepository) ListActive(ctx context.Context) ([]domain.Insurance, error) {
	const query = `
        SELECT ` + insuranceColumns + `
        FROM insurance_products WHERE is_active = TRUE ORDER BY name COLLATE "C" ASC`
	return r.list(ctx, query)
}

func (r *insuranceRepository) list(ctx context.Context, query string) ([]domain.Insurance, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Insurance{}
	for rows.Next() {
		ins, err := scanInsurance(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ins)
	}
	return result, rows.Err()
}

func scanInsurance(row pgx.Row) (*domain.Insurance, error) {
	var ins domain.Insurance
	if err := row.Scan(
		&ins.ID,
		&ins.Name,
		&ins.Description,
		&ins.IsActive,
		&ins.CreatedAt,
		&ins.UpdatedAt,
	); err != nil {
		return nil, mapPgError(err, nil, nil)
	}
	return &ins, nil
}
