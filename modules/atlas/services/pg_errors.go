package services

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/citylingua/citylingua/pkg/serrors"
)

// mapPgError converts storage failures into the structured taxonomy at the
// service boundary. Constraint names are part of the schema contract.
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
		case "languages_city_id_slug_key":
			return serrors.Conflict("LANGUAGE_SLUG_TAKEN", "a language with this slug already exists").WithCause(err)
		case "districts_city_id_slug_key":
			return serrors.Conflict("DISTRICT_SLUG_TAKEN", "a district with this slug already exists").WithCause(err)
		case "classification_types_city_id_slug_key":
			return serrors.Conflict("TYPE_SLUG_TAKEN", "a classification type with this slug already exists").WithCause(err)
		case "classification_values_type_id_slug_key":
			return serrors.Conflict("VALUE_SLUG_TAKEN", "a classification value with this slug already exists").WithCause(err)
		case "classification_assignments_pkey":
			return serrors.Conflict("ASSIGNMENT_EXISTS", "this value is already assigned").WithCause(err)
		case "entity_translations_pkey":
			return serrors.Conflict("TRANSLATION_EXISTS", "a translation for this locale already exists").WithCause(err)
		default:
			return serrors.Conflict("ALREADY_EXISTS", "unique constraint violated").WithCause(err)
		}
	case "23503": // foreign_key_violation
		switch pgErr.ConstraintName {
		case "districts_primary_language_id_fkey":
			return serrors.Referential("LANGUAGE_IN_USE", "cannot delete: language is referenced by districts", 0).WithCause(err)
		case "classification_values_type_id_fkey":
			return serrors.Referential("TYPE_IN_USE", "cannot delete: type still has values", 0).WithCause(err)
		case "classification_assignments_value_id_fkey":
			return serrors.Referential("VALUE_IN_USE", "cannot delete: value is still assigned", 0).WithCause(err)
		default:
			return serrors.Referential("REFERENCED", "cannot delete: still referenced", 0).WithCause(err)
		}
	case "40001", "40P01": // serialization_failure, deadlock_detected
		return serrors.Transaction("TX_RETRYABLE", "transaction conflict, safe to retry", err)
	default:
		if strings.HasPrefix(pgErr.Code, "08") { // connection_exception class
			return serrors.Transaction("TX_CONNECTION", "database connection failure", err)
		}
		return serrors.Transaction("TX_FAILED", "database error ("+pgErr.Code+")", err)
	}
}
