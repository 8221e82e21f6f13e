package services

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citylingua/citylingua/pkg/serrors"
)

func TestMapPgErrorUniqueViolation(t *testing.T) {
	err := mapPgError(&pgconn.PgError{Code: "23505", ConstraintName: "languages_city_id_slug_key"})
	se, ok := serrors.AsError(err)
	require.True(t, ok)
	assert.Equal(t, serrors.KindConflict, se.Kind)
	assert.Equal(t, "LANGUAGE_SLUG_TAKEN", se.Code)
}

func TestMapPgErrorForeignKeyViolation(t *testing.T) {
	err := mapPgError(&pgconn.PgError{Code: "23503", ConstraintName: "classification_assignments_value_id_fkey"})
	assert.True(t, serrors.IsKind(err, serrors.KindReferential))
}

func TestMapPgErrorRetryable(t *testing.T) {
	for _, code := range []string{"40001", "40P01", "08006"} {
		err := mapPgError(&pgconn.PgError{Code: code})
		assert.True(t, serrors.IsKind(err, serrors.KindTransaction), "code %s", code)
	}
}

func TestMapPgErrorNoRows(t *testing.T) {
	err := mapPgError(pgx.ErrNoRows)
	assert.True(t, serrors.IsKind(err, serrors.KindNotFound))
}

func TestMapPgErrorPassthrough(t *testing.T) {
	structured := serrors.Denied("ACCESS_DENIED", "access denied")
	assert.Equal(t, structured, mapPgError(structured))
	assert.Nil(t, mapPgError(nil))
}
