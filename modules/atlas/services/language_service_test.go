package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citylingua/citylingua/modules/atlas/domain/language"
	"github.com/citylingua/citylingua/modules/atlas/domain/translation"
	"github.com/citylingua/citylingua/modules/atlas/services"
	"github.com/citylingua/citylingua/pkg/serrors"
)

func dutch() services.LanguageWrite {
	return services.LanguageWrite{
		Slug:       "dutch",
		NativeName: "Nederlands",
		Translations: map[string]translation.Record{
			"en": {Name: "Dutch", Description: "West Germanic language"},
			"nl": {Name: "Nederlands"},
			"fr": {Name: "Néerlandais"},
		},
	}
}

func TestLanguageCreateWithTranslations(t *testing.T) {
	f := setup(t)
	ctx := f.env.As(f.env.Operator)

	created, err := f.languages.CreateWithTranslations(ctx, f.env.City.ID(), dutch())
	require.NoError(t, err)
	assert.Equal(t, language.StatusDraft, created.Status(), "new entities start as drafts")

	view, err := f.languages.Get(ctx, f.env.City.ID(), created.ID(), "fr")
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "fr", "nl"}, view.Translations.Locales())
	assert.Equal(t, "Néerlandais", view.DisplayName)
}

func TestLanguageCreateRollsBackTranslationsOnConflict(t *testing.T) {
	f := setup(t)
	ctx := f.env.As(f.env.Operator)

	first, err := f.languages.CreateWithTranslations(ctx, f.env.City.ID(), dutch())
	require.NoError(t, err)

	dup := dutch()
	dup.Translations = map[string]translation.Record{"de": {Name: "Niederländisch"}}
	_, err = f.languages.CreateWithTranslations(ctx, f.env.City.ID(), dup)
	require.Error(t, err)
	assert.True(t, serrors.IsKind(err, serrors.KindConflict))

	// The failed unit must leave nothing behind: the survivor still has its
	// original three locales and no german record exists anywhere.
	view, err := f.languages.Get(ctx, f.env.City.ID(), first.ID(), "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "fr", "nl"}, view.Translations.Locales())
}

func TestLanguageSameSlugInDifferentCities(t *testing.T) {
	f := setup(t)

	_, err := f.languages.CreateWithTranslations(f.env.As(f.env.Operator), f.env.City.ID(), dutch())
	require.NoError(t, err)

	_, err = f.languages.CreateWithTranslations(f.env.AsIn(f.env.Superuser, f.env.OtherCity), f.env.OtherCity.ID(), dutch())
	require.NoError(t, err, "slug uniqueness is per city")
}

func TestLanguageUpdateReplacesTranslationSet(t *testing.T) {
	f := setup(t)
	ctx := f.env.As(f.env.Operator)

	created, err := f.languages.CreateWithTranslations(ctx, f.env.City.ID(), dutch())
	require.NoError(t, err)

	update := dutch()
	update.Translations = map[string]translation.Record{"en": {Name: "Dutch"}}
	_, err = f.languages.UpdateWithTranslations(ctx, f.env.City.ID(), created.ID(), update)
	require.NoError(t, err)

	view, err := f.languages.Get(ctx, f.env.City.ID(), created.ID(), "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"en"}, view.Translations.Locales(), "omitted locales are deleted, not kept")
}

func TestLanguageDisplayNameFallback(t *testing.T) {
	f := setup(t)
	ctx := f.env.As(f.env.Operator)

	data := dutch()
	data.Translations = map[string]translation.Record{"nl": {Name: "Nederlands"}}
	created, err := f.languages.CreateWithTranslations(ctx, f.env.City.ID(), data)
	require.NoError(t, err)

	// Requested locale missing, default locale missing too: fall through to
	// the native self-name.
	view, err := f.languages.Get(ctx, f.env.City.ID(), created.ID(), "fr")
	require.NoError(t, err)
	assert.Equal(t, "Nederlands", view.DisplayName)
}

func TestLanguageCreateRejectsInvalidLocale(t *testing.T) {
	f := setup(t)

	data := dutch()
	data.Translations["no-such-locale!"] = translation.Record{Name: "???"}
	_, err := f.languages.CreateWithTranslations(f.env.As(f.env.Operator), f.env.City.ID(), data)
	require.Error(t, err)
	assert.True(t, serrors.IsKind(err, serrors.KindValidation))
}

func TestLanguageDeleteBlockedByDistrict(t *testing.T) {
	f := setup(t)
	ctx := f.env.As(f.env.Operator)

	created, err := f.languages.CreateWithTranslations(ctx, f.env.City.ID(), dutch())
	require.NoError(t, err)

	languageID := created.ID()
	_, err = f.districts.CreateWithTranslations(ctx, f.env.City.ID(), services.DistrictWrite{
		Slug:              "centrum",
		PrimaryLanguageID: &languageID,
	})
	require.NoError(t, err)

	err = f.languages.Delete(ctx, f.env.City.ID(), created.ID())
	require.Error(t, err)
	se, ok := serrors.AsError(err)
	require.True(t, ok)
	assert.Equal(t, serrors.KindReferential, se.Kind)
	assert.Equal(t, 1, se.Dependents, "the error reports how many rows block the delete")

	// Detaching the district unblocks the delete.
	districts, err := f.districts.List(ctx, f.env.City.ID())
	require.NoError(t, err)
	_, err = f.districts.UpdateWithTranslations(ctx, f.env.City.ID(), districts[0].ID(), services.DistrictWrite{Slug: "centrum"})
	require.NoError(t, err)
	require.NoError(t, f.languages.Delete(ctx, f.env.City.ID(), created.ID()))
}

func TestLanguageDeleteBlockedByAssignments(t *testing.T) {
	f := setup(t)
	admin := f.env.As(f.env.Admin)
	operator := f.env.As(f.env.Operator)

	created, err := f.languages.CreateWithTranslations(operator, f.env.City.ID(), dutch())
	require.NoError(t, err)

	typ, err := f.classifications.DefineType(admin, f.env.City.ID(), services.TypeWrite{Slug: "endangerment-status"})
	require.NoError(t, err)
	value, err := f.classifications.DefineValue(admin, f.env.City.ID(), typ.ID(), services.ValueWrite{
		Slug: "vulnerable", Color: "#ffa500", IconScale: 1.0,
	})
	require.NoError(t, err)
	require.NoError(t, f.classifications.Assign(operator, f.env.City.ID(), created.ID(), value.ID()))

	err = f.languages.Delete(operator, f.env.City.ID(), created.ID())
	require.Error(t, err)
	se, ok := serrors.AsError(err)
	require.True(t, ok)
	assert.Equal(t, serrors.KindReferential, se.Kind)
	assert.Equal(t, 1, se.Dependents)

	// Unassigning clears the block.
	require.NoError(t, f.classifications.Unassign(operator, f.env.City.ID(), created.ID(), value.ID()))
	require.NoError(t, f.languages.Delete(operator, f.env.City.ID(), created.ID()))
}

func TestLanguageDeleteCascadesTranslations(t *testing.T) {
	f := setup(t)
	ctx := f.env.As(f.env.Operator)

	created, err := f.languages.CreateWithTranslations(ctx, f.env.City.ID(), dutch())
	require.NoError(t, err)
	require.NoError(t, f.languages.Delete(ctx, f.env.City.ID(), created.ID()))

	set, err := f.env.Store.Translations().ListFor(context.Background(), created.ID())
	require.NoError(t, err)
	assert.Empty(t, set, "translations die with their parent entity")
}

func TestLanguagePublishGatedOnRequiredClassifications(t *testing.T) {
	f := setup(t)
	admin := f.env.As(f.env.Admin)
	operator := f.env.As(f.env.Operator)

	created, err := f.languages.CreateWithTranslations(operator, f.env.City.ID(), dutch())
	require.NoError(t, err)

	typ, err := f.classifications.DefineType(admin, f.env.City.ID(), services.TypeWrite{
		Slug:     "endangerment-status",
		Required: true,
	})
	require.NoError(t, err)

	_, err = f.languages.Publish(operator, f.env.City.ID(), created.ID())
	require.Error(t, err)
	se, ok := serrors.AsError(err)
	require.True(t, ok)
	assert.Equal(t, serrors.KindValidation, se.Kind)
	assert.Contains(t, se.Message, "endangerment-status", "the gate names what is missing")

	value, err := f.classifications.DefineValue(admin, f.env.City.ID(), typ.ID(), services.ValueWrite{
		Slug: "vulnerable", Color: "#ffa500", IconScale: 1.0,
	})
	require.NoError(t, err)
	require.NoError(t, f.classifications.Assign(operator, f.env.City.ID(), created.ID(), value.ID()))

	published, err := f.languages.Publish(operator, f.env.City.ID(), created.ID())
	require.NoError(t, err)
	assert.Equal(t, language.StatusPublished, published.Status())
}

func TestLanguageOperationsDeniedToStrangers(t *testing.T) {
	f := setup(t)

	_, err := f.languages.CreateWithTranslations(f.env.As(f.env.Stranger), f.env.City.ID(), dutch())
	assert.True(t, serrors.IsKind(err, serrors.KindDenied))

	_, err = f.languages.List(f.env.As(f.env.Stranger), f.env.City.ID(), nil)
	assert.True(t, serrors.IsKind(err, serrors.KindDenied), "reads are gated too")
}
