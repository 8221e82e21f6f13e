package services

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/citylingua/citylingua/pkg/serrors"
)

// mapPgError converts storage-level failures into the structured taxonomy
// before they cross the service boundary. Anything unrecognized is treated as
// a transaction failure: the write rolled back as a unit, so the caller may
// retry it wholesale.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := serrors.AsError(err); ok {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return serrors.NotFound("NOT_FOUND", "not found").WithCause(err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case "23505": // unique_violation
		switch pgErr.ConstraintName {
		case "cities_slug_key":
			return serrors.Conflict("CITY_SLUG_TAKEN", "a city with this slug already exists").WithCause(err)
		case "accounts_email_key":
			return serrors.Conflict("ACCOUNT_EMAIL_TAKEN", "an account with this email already exists").WithCause(err)
		default:
			return serrors.Conflict("ALREADY_EXISTS", "unique constraint violated").WithCause(err)
		}
	case "23503": // foreign_key_violation
		return serrors.Referential("REFERENCED", "cannot delete: still referenced", 0).WithCause(err)
	case "40001", "40P01": // serialization_failure, deadlock_detected
		return serrors.Transaction("TX_RETRYABLE", "transaction conflict, safe to retry", err)
	default:
		if strings.HasPrefix(pgErr.Code, "08") { // connection_exception class
			return serrors.Transaction("TX_CONNECTION", "database connection failure", err)
		}
		return serrors.Transaction("TX_FAILED", "database error ("+pgErr.Code+")", err)
	}
}
