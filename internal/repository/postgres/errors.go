// internal/repository/postgres/errors.go
package postgres

import (
	"errors"
	"fmt"

	xerrors "garimoto-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// mapError translates driver errors into the application's sentinel errors so
// callers can distinguish an access-control rejection from a generic failure
// and present a specific message instead of a catch-all one.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42501", "28000": // insufficient_privilege, invalid_authorization_specification
			return fmt.Errorf("%s: %w", op, xerrors.ErrPermissionDenied)
		case "23505": // unique_violation
			return fmt.Errorf("%s: %w", op, xerrors.ErrConflict)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
