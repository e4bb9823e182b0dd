package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Constraint outcomes surfaced by the store. Not-found is reported as pgx.ErrNoRows.
var (
	ErrDuplicateName        = errors.New("insurance name already exists")
	ErrHasApplications      = errors.New("insurance has dependent applications")
	ErrInsuranceUnavailable = errors.New("insurance missing or inactive")
	ErrDuplicateUsername    = errors.New("admin username already exists")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidTextRepr     = "22P02"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// mapPgError converts constraint violations into repository errors.
// A malformed UUID can never match a row, so it is reported as not found.
func mapPgError(err error, onUnique, onForeignKey error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		if onUnique != nil {
			return onUnique
		}
	case pgForeignKeyViolation:
		if onForeignKey != nil {
			return onForeignKey
		}
	case pgInvalidTextRepr:
		return pgx.ErrNoRows
	}
	return err
}

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// validID reports whether id can name a row. Keys are UUIDs, so anything else is a miss.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
