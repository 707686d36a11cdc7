package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes commonly translated by MapError.
const (
	CodeUniqueViolation = "23505"
	CodeCheckViolation  = "23514"
)

// Codes maps PostgreSQL SQLSTATE codes to domain errors.
type Codes map[string]error

// MapError translates a database error into a domain error.
// sql.ErrNoRows becomes noRows when noRows is non-nil. A *pgconn.PgError whose
// code is present in codes becomes the mapped error, annotated with the violated
// constraint. Anything else is returned unchanged.
func MapError(err, noRows error, codes Codes) error {
	if err == nil {
		return nil
	}

	if noRows != nil && errors.Is(err, sql.ErrNoRows) {
		return noRows
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	mapped, ok := codes[pgErr.Code]
	if !ok {
		return err
	}
	if pgErr.ConstraintName != "" {
		return fmt.Errorf("%w: %s", mapped, pgErr.ConstraintName)
	}
	return mapped
}
