package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Domain-level errors I prefer to bubble up from repository implementations.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrConflict      = errors.New("conflict")
	// ErrStorage marks a failure of the data source itself (connection, server, timeout).
	ErrStorage = errors.New("storage unavailable")
)

// MapPgError translates common Postgres error codes to domain errors.
// Constraint violations become domain errors; everything else is wrapped with ErrStorage
// so higher layers can tell "bad request" apart from "database is in trouble".
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	// the caller gave up; the database is not at fault
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrAlreadyExists
		case pgerrcode.ForeignKeyViolation:
			return ErrConflict
		}
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
