package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citylingua/citylingua/modules/atlas/domain/translation"
	"github.com/citylingua/citylingua/modules/atlas/services"
	"github.com/citylingua/citylingua/pkg/serrors"
)

func TestDistrictCreateWithTranslations(t *testing.T) {
	f := setup(t)
	ctx := f.env.As(f.env.Operator)

	created, err := f.districts.CreateWithTranslations(ctx, f.env.City.ID(), services.DistrictWrite{
		Slug: "centrum",
		Translations: map[string]translation.Record{
			"en": {Name: "City Centre"},
			"nl": {Name: "Centrum"},
		},
	})
	require.NoError(t, err)

	view, err := f.districts.Get(ctx, f.env.City.ID(), created.ID(), "nl")
	require.NoError(t, err)
	assert.Equal(t, "Centrum", view.DisplayName)
}

func TestDistrictRejectsPrimaryLanguageFromAnotherCity(t *testing.T) {
	f := setup(t)

	foreign, err := f.languages.CreateWithTranslations(
		f.env.AsIn(f.env.Superuser, f.env.OtherCity),
		f.env.OtherCity.ID(),
		dutch(),
	)
	require.NoError(t, err)

	foreignID := foreign.ID()
	_, err = f.districts.CreateWithTranslations(f.env.As(f.env.Operator), f.env.City.ID(), services.DistrictWrite{
		Slug:              "centrum",
		PrimaryLanguageID: &foreignID,
	})
	require.Error(t, err)
	assert.True(t, serrors.IsKind(err, serrors.KindValidation), "tenant boundaries hold for references too")
}

func TestDistrictRejectsUnknownPrimaryLanguage(t *testing.T) {
	f := setup(t)

	bogus := uuid.New()
	_, err := f.districts.CreateWithTranslations(f.env.As(f.env.Operator), f.env.City.ID(), services.DistrictWrite{
		Slug:              "centrum",
		PrimaryLanguageID: &bogus,
	})
	require.Error(t, err)
	assert.True(t, serrors.IsKind(err, serrors.KindValidation))
}

func TestDistrictDeleteBlockedByAssignments(t *testing.T) {
	f := setup(t)
	admin := f.env.As(f.env.Admin)
	operator := f.env.As(f.env.Operator)

	created, err := f.districts.CreateWithTranslations(operator, f.env.City.ID(), services.DistrictWrite{Slug: "centrum"})
	require.NoError(t, err)

	typ, err := f.classifications.DefineType(admin, f.env.City.ID(), services.TypeWrite{Slug: "zone-kind"})
	require.NoError(t, err)
	value, err := f.classifications.DefineValue(admin, f.env.City.ID(), typ.ID(), services.ValueWrite{
		Slug: "historic", Color: "#8b4513", IconScale: 1.0,
	})
	require.NoError(t, err)
	require.NoError(t, f.classifications.Assign(operator, f.env.City.ID(), created.ID(), value.ID()))

	err = f.districts.Delete(operator, f.env.City.ID(), created.ID())
	require.Error(t, err)
	se, ok := serrors.AsError(err)
	require.True(t, ok)
	assert.Equal(t, serrors.KindReferential, se.Kind)
	assert.Equal(t, 1, se.Dependents)

	// Unassigning unblocks the delete, and with no stranded assignment rows
	// the value itself stays deletable afterwards.
	require.NoError(t, f.classifications.Unassign(operator, f.env.City.ID(), created.ID(), value.ID()))
	require.NoError(t, f.districts.Delete(operator, f.env.City.ID(), created.ID()))
	require.NoError(t, f.classifications.DeleteValue(admin, f.env.City.ID(), value.ID()))
}

func TestDistrictDeleteCascadesTranslations(t *testing.T) {
	f := setup(t)
	ctx := f.env.As(f.env.Operator)

	created, err := f.districts.CreateWithTranslations(ctx, f.env.City.ID(), services.DistrictWrite{
		Slug:         "centrum",
		Translations: map[string]translation.Record{"en": {Name: "City Centre"}},
	})
	require.NoError(t, err)
	require.NoError(t, f.districts.Delete(ctx, f.env.City.ID(), created.ID()))

	_, err = f.districts.Get(ctx, f.env.City.ID(), created.ID(), "en")
	assert.True(t, serrors.IsKind(err, serrors.KindNotFound))
}

func TestDistrictSlugConflict(t *testing.T) {
	f := setup(t)
	ctx := f.env.As(f.env.Operator)

	_, err := f.districts.CreateWithTranslations(ctx, f.env.City.ID(), services.DistrictWrite{Slug: "centrum"})
	require.NoError(t, err)
	_, err = f.districts.CreateWithTranslations(ctx, f.env.City.ID(), services.DistrictWrite{Slug: "centrum"})
	assert.True(t, serrors.IsKind(err, serrors.KindConflict))
}
