package serrors_test

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citylingua/citylingua/pkg/serrors"
)

func TestErrorKinds(t *testing.T) {
	err := serrors.Validation("LOCALE_INVALID", "unknown locale code", "translations.xx")
	assert.Equal(t, "LOCALE_INVALID: unknown locale code (field translations.xx)", err.Error())
	assert.True(t, serrors.IsKind(err, serrors.KindValidation))
	assert.False(t, serrors.IsKind(err, serrors.KindConflict))
}

func TestKindOfWrapped(t *testing.T) {
	base := serrors.Conflict("SLUG_TAKEN", "slug already exists")
	wrapped := errors.Wrap(base, "creating language")

	kind, ok := serrors.KindOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, serrors.KindConflict, kind)

	se, ok := serrors.AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "SLUG_TAKEN", se.Code)
}

func TestWithCauseUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := serrors.Transaction("TX_FAILED", "transaction aborted", cause)
	assert.ErrorIs(t, err, cause)
}

func TestReferentialDependents(t *testing.T) {
	err := serrors.Referential("VALUE_IN_USE", "cannot delete: referenced by 3 dependents", 3)
	assert.Equal(t, 3, err.Dependents)
	assert.True(t, serrors.IsKind(err, serrors.KindReferential))
}
