package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citylingua/citylingua/modules/atlas/domain/classification"
	"github.com/citylingua/citylingua/modules/atlas/services"
	"github.com/citylingua/citylingua/pkg/serrors"
)

func defineStatusAxis(t *testing.T, f *fixture) (*classification.Type, *classification.Value, *classification.Value) {
	t.Helper()
	admin := f.env.As(f.env.Admin)
	typ, err := f.classifications.DefineType(admin, f.env.City.ID(), services.TypeWrite{
		Slug: "endangerment-status",
	})
	require.NoError(t, err)
	vulnerable, err := f.classifications.DefineValue(admin, f.env.City.ID(), typ.ID(), services.ValueWrite{
		Slug: "vulnerable", Color: "#ffa500", IconScale: 1.0,
	})
	require.NoError(t, err)
	extinct, err := f.classifications.DefineValue(admin, f.env.City.ID(), typ.ID(), services.ValueWrite{
		Slug: "extinct", Color: "#000", IconScale: 1.5,
	})
	require.NoError(t, err)
	return typ, vulnerable, extinct
}

func TestDefineTypeRequiresAdmin(t *testing.T) {
	f := setup(t)

	_, err := f.classifications.DefineType(f.env.As(f.env.Operator), f.env.City.ID(), services.TypeWrite{Slug: "script"})
	assert.True(t, serrors.IsKind(err, serrors.KindDenied), "schema changes are admin-only")

	_, err = f.classifications.DefineType(f.env.As(f.env.Admin), f.env.City.ID(), services.TypeWrite{Slug: "script"})
	require.NoError(t, err)
}

func TestDefineTypeSlugUniquePerCity(t *testing.T) {
	f := setup(t)
	admin := f.env.As(f.env.Admin)

	_, err := f.classifications.DefineType(admin, f.env.City.ID(), services.TypeWrite{Slug: "script"})
	require.NoError(t, err)
	_, err = f.classifications.DefineType(admin, f.env.City.ID(), services.TypeWrite{Slug: "script"})
	assert.True(t, serrors.IsKind(err, serrors.KindConflict))

	_, err = f.classifications.DefineType(f.env.AsIn(f.env.Superuser, f.env.OtherCity), f.env.OtherCity.ID(), services.TypeWrite{Slug: "script"})
	require.NoError(t, err, "each city defines its own axes")
}

func TestDefineValueValidatesStyling(t *testing.T) {
	f := setup(t)
	admin := f.env.As(f.env.Admin)
	typ, err := f.classifications.DefineType(admin, f.env.City.ID(), services.TypeWrite{Slug: "script"})
	require.NoError(t, err)

	_, err = f.classifications.DefineValue(admin, f.env.City.ID(), typ.ID(), services.ValueWrite{
		Slug: "latin", Color: "orange", IconScale: 1.0,
	})
	assert.True(t, serrors.IsKind(err, serrors.KindValidation), "color must be a hex token")

	_, err = f.classifications.DefineValue(admin, f.env.City.ID(), typ.ID(), services.ValueWrite{
		Slug: "latin", Color: "#abc", IconScale: 9.0,
	})
	assert.True(t, serrors.IsKind(err, serrors.KindValidation), "icon scale is bounded")
}

func TestAssignSingleCardinalityReplaces(t *testing.T) {
	f := setup(t)
	operator := f.env.As(f.env.Operator)
	_, vulnerable, extinct := defineStatusAxis(t, f)
	entityID := uuid.New()

	require.NoError(t, f.classifications.Assign(operator, f.env.City.ID(), entityID, vulnerable.ID()))
	require.NoError(t, f.classifications.Assign(operator, f.env.City.ID(), entityID, extinct.ID()))

	assignments, err := f.classifications.ListAssignments(operator, f.env.City.ID(), entityID)
	require.NoError(t, err)
	require.Len(t, assignments, 1, "the new value replaced the old on the same axis")
	assert.Equal(t, extinct.ID(), assignments[0].ValueID())
}

func TestAssignMultiCardinality(t *testing.T) {
	f := setup(t)
	admin := f.env.As(f.env.Admin)
	operator := f.env.As(f.env.Operator)

	typ, err := f.classifications.DefineType(admin, f.env.City.ID(), services.TypeWrite{
		Slug: "script", AllowMultiple: true,
	})
	require.NoError(t, err)
	latin, err := f.classifications.DefineValue(admin, f.env.City.ID(), typ.ID(), services.ValueWrite{
		Slug: "latin", Color: "#333", IconScale: 1.0,
	})
	require.NoError(t, err)
	arabic, err := f.classifications.DefineValue(admin, f.env.City.ID(), typ.ID(), services.ValueWrite{
		Slug: "arabic", Color: "#363", IconScale: 1.0,
	})
	require.NoError(t, err)

	entityID := uuid.New()
	require.NoError(t, f.classifications.Assign(operator, f.env.City.ID(), entityID, latin.ID()))
	require.NoError(t, f.classifications.Assign(operator, f.env.City.ID(), entityID, arabic.ID()))

	assignments, err := f.classifications.ListAssignments(operator, f.env.City.ID(), entityID)
	require.NoError(t, err)
	assert.Len(t, assignments, 2)

	err = f.classifications.Assign(operator, f.env.City.ID(), entityID, latin.ID())
	require.Error(t, err)
	assert.True(t, serrors.IsKind(err, serrors.KindConflict), "the same pair twice is a conflict")
}

func TestUnassignIsIdempotent(t *testing.T) {
	f := setup(t)
	operator := f.env.As(f.env.Operator)
	_, vulnerable, _ := defineStatusAxis(t, f)
	entityID := uuid.New()

	require.NoError(t, f.classifications.Assign(operator, f.env.City.ID(), entityID, vulnerable.ID()))
	require.NoError(t, f.classifications.Unassign(operator, f.env.City.ID(), entityID, vulnerable.ID()))
	require.NoError(t, f.classifications.Unassign(operator, f.env.City.ID(), entityID, vulnerable.ID()))

	assignments, err := f.classifications.ListAssignments(operator, f.env.City.ID(), entityID)
	require.NoError(t, err)
	assert.Empty(t, assignments)
}

func TestDeleteValueBlockedWhileAssigned(t *testing.T) {
	f := setup(t)
	admin := f.env.As(f.env.Admin)
	operator := f.env.As(f.env.Operator)
	_, vulnerable, _ := defineStatusAxis(t, f)

	require.NoError(t, f.classifications.Assign(operator, f.env.City.ID(), uuid.New(), vulnerable.ID()))

	err := f.classifications.DeleteValue(admin, f.env.City.ID(), vulnerable.ID())
	require.Error(t, err)
	se, ok := serrors.AsError(err)
	require.True(t, ok)
	assert.Equal(t, serrors.KindReferential, se.Kind)
	assert.Equal(t, 1, se.Dependents)
}

func TestDeleteTypeBlockedWhileValuesExist(t *testing.T) {
	f := setup(t)
	admin := f.env.As(f.env.Admin)
	typ, vulnerable, extinct := defineStatusAxis(t, f)

	err := f.classifications.DeleteType(admin, f.env.City.ID(), typ.ID())
	require.Error(t, err)
	se, ok := serrors.AsError(err)
	require.True(t, ok)
	assert.Equal(t, serrors.KindReferential, se.Kind)
	assert.Equal(t, 2, se.Dependents)

	require.NoError(t, f.classifications.DeleteValue(admin, f.env.City.ID(), vulnerable.ID()))
	require.NoError(t, f.classifications.DeleteValue(admin, f.env.City.ID(), extinct.ID()))
	require.NoError(t, f.classifications.DeleteType(admin, f.env.City.ID(), typ.ID()))
}

func TestValidateCompleteness(t *testing.T) {
	f := setup(t)
	admin := f.env.As(f.env.Admin)
	operator := f.env.As(f.env.Operator)

	required, err := f.classifications.DefineType(admin, f.env.City.ID(), services.TypeWrite{
		Slug: "endangerment-status", Required: true,
	})
	require.NoError(t, err)
	_, err = f.classifications.DefineType(admin, f.env.City.ID(), services.TypeWrite{Slug: "script"})
	require.NoError(t, err)

	entityID := uuid.New()
	missing, err := f.classifications.ValidateCompleteness(operator, f.env.City.ID(), entityID)
	require.NoError(t, err)
	require.Len(t, missing, 1, "only required axes are reported")
	assert.Equal(t, required.ID(), missing[0].ID())

	value, err := f.classifications.DefineValue(admin, f.env.City.ID(), required.ID(), services.ValueWrite{
		Slug: "safe", Color: "#0f0", IconScale: 1.0,
	})
	require.NoError(t, err)
	require.NoError(t, f.classifications.Assign(operator, f.env.City.ID(), entityID, value.ID()))

	missing, err = f.classifications.ValidateCompleteness(operator, f.env.City.ID(), entityID)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestAssignRejectsValueFromAnotherCity(t *testing.T) {
	f := setup(t)
	_, vulnerable, _ := defineStatusAxis(t, f)

	err := f.classifications.Assign(
		f.env.AsIn(f.env.Superuser, f.env.OtherCity),
		f.env.OtherCity.ID(),
		uuid.New(),
		vulnerable.ID(),
	)
	require.Error(t, err)
	assert.True(t, serrors.IsKind(err, serrors.KindNotFound), "values are invisible outside their city")
}
