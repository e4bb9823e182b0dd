package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/insurance-service/internal/domain"
)

// ApplicationFilter captures admin search parameters.
type ApplicationFilter struct {
	InsuranceID *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Sort        domain.SortOrder
	Limit       int
	Offset      int
}

// ApplicationRepository encapsulates application persistence. There is no update or delete.
type ApplicationRepository interface {
	// Create inserts only while the referenced insurance exists and is active,
	// otherwise it returns ErrInsuranceUnavailable.
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	ListAll(ctx context.Context) ([]domain.Application, error)
	ListByInsurance(ctx context.Context, insuranceID string) ([]domain.Application, error)
	CountByInsurance(ctx context.Context, insuranceID string) (int, error)
	CountsPerInsurance(ctx context.Context) (map[string]int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
	Search(ctx context.Context, filter ApplicationFilter) ([]domain.Application, int, error)
}

type applicationRepository struct {
	db Querier
}

// NewApplicationRepository instantiates repository.
func NewApplicationRepository(db Querier) ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationColumns = `id, insurance_id, selected_date, phone, created_at`

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	if !validID(app.InsuranceID) {
		return ErrInsuranceUnavailable
	}
	const query = `
        INSERT INTO applications (insurance_id, selected_date, phone, created_at)
        SELECT p.id, $2::date, $3::varchar, $4::timestamptz
        FROM insurance_products p
        WHERE p.id = $1::uuid AND p.is_active = TRUE
        FOR SHARE OF p
        RETURNING id`
	err := r.db.QueryRow(ctx, query,
		app.InsuranceID,
		app.SelectedDate,
		app.Phone,
		app.CreatedAt,
	).Scan(&app.ID)
	if IsNotFound(err) {
		return ErrInsuranceUnavailable
	}
	if err != nil {
		mapped := mapPgError(err, nil, ErrInsuranceUnavailable)
		if IsNotFound(mapped) {
			return ErrInsuranceUnavailable
		}
		return mapped
	}
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	if !validID(id) {
		return nil, pgx.ErrNoRows
	}
	const query = `SELECT ` + applicationColumns + ` FROM applications WHERE id=$1`
	var app domain.Application
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&app.ID,
		&app.InsuranceID,
		&app.SelectedDate,
		&app.Phone,
		&app.CreatedAt,
	); err != nil {
		return nil, mapPgError(err, nil, nil)
	}
	return &app, nil
}

func (r *applicationRepository) ListAll(ctx context.Context) ([]domain.Application, error) {
	const query = `SELECT ` + applicationColumns + ` FROM applications ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplications(rows)
}

func (r *applicationRepository) ListByInsurance(ctx context.Context, insuranceID string) ([]domain.Application, error) {
	if !validID(insuranceID) {
		return []domain.Application{}, nil
	}
	const query = `
        SELECT ` + applicationColumns + `
        FROM applications WHERE insurance_id=$1
        ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query, insuranceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplications(rows)
}

func (r *applicationRepository) CountByInsurance(ctx context.Context, insuranceID string) (int, error) {
	if !validID(insuranceID) {
		return 0, nil
	}
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE insurance_id=$1`, insuranceID).Scan(&count)
	return count, err
}

func (r *applicationRepository) CountsPerInsurance(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT insurance_id, COUNT(*) FROM applications GROUP BY insurance_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var (
			id    string
			count int
		)
		if err := rows.Scan(&id, &count); err != nil {
			return nil, err
		}
		counts[id] = count
	}
	return counts, rows.Err()
}

func (r *applicationRepository) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE created_at >= $1`, since).Scan(&count)
	return count, err
}

func (r *applicationRepository) Search(ctx context.Context, filter ApplicationFilter) ([]domain.Application, int, error) {
	if filter.InsuranceID != nil && !validID(*filter.InsuranceID) {
		return []domain.Application{}, 0, nil
	}
	countSQL, countArgs, err := applicationCountSQL(filter)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args, err := applicationSearchSQL(filter)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	apps, err := scanApplications(rows)
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func scanApplications(rows pgx.Rows) ([]domain.Application, error) {
	result := []domain.Application{}
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID,
			&app.InsuranceID,
			&app.SelectedDate,
			&app.Phone,
			&app.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, nil, nil)
	}
	return result, nil
}
