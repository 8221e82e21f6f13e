package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citylingua/citylingua/modules/atlas/domain/language"
	"github.com/citylingua/citylingua/modules/atlas/domain/translation"
	"github.com/citylingua/citylingua/modules/atlas/services"
	coreservices "github.com/citylingua/citylingua/modules/core/services"
	"github.com/citylingua/citylingua/pkg/composables"
	"github.com/citylingua/citylingua/pkg/serrors"
)

// TestCityContentLifecycle walks the whole platform through one tenant's
// life: provisioning, staffing, schema definition, content authoring,
// classification and publication, with the denials and blocks checked along
// the way.
func TestCityContentLifecycle(t *testing.T) {
	f := setup(t)
	cities := coreservices.NewCityService(
		f.env.Store.Cities(), f.env.Store.Accounts(), f.env.Store.Grants(), f.env.Tx, f.access, f.env.Bus,
	)
	accounts := coreservices.NewAccountService(f.env.Store.Accounts(), f.env.Tx, f.access, f.env.Bus)

	root := f.env.As(f.env.Superuser)

	// Provision the tenant and staff it.
	cityObj, err := cities.Create(root, "den-haag", "Den Haag")
	require.NoError(t, err)

	curator, err := accounts.Create(root, "curator@denhaag.example", "Curator")
	require.NoError(t, err)
	_, err = f.access.Grant(root, cityObj.ID(), curator.ID(), "operator")
	require.NoError(t, err)

	asCurator := composables.WithPrincipalID(
		composables.WithTenantID(f.env.Anonymous(), cityObj.ID()),
		curator.ID(),
	)

	// The curator cannot define schema; the superuser can.
	_, err = f.classifications.DefineType(asCurator, cityObj.ID(), services.TypeWrite{
		Slug: "endangerment-status", Required: true,
	})
	assert.True(t, serrors.IsKind(err, serrors.KindDenied))

	typ, err := f.classifications.DefineType(root, cityObj.ID(), services.TypeWrite{
		Slug: "endangerment-status", Required: true,
	})
	require.NoError(t, err)
	vulnerable, err := f.classifications.DefineValue(root, cityObj.ID(), typ.ID(), services.ValueWrite{
		Slug: "vulnerable", Color: "#ffa500", IconScale: 1.2,
	})
	require.NoError(t, err)

	// The curator authors content in their own city.
	lang, err := f.languages.CreateWithTranslations(asCurator, cityObj.ID(), services.LanguageWrite{
		Slug:       "sranan",
		NativeName: "Sranantongo",
		Translations: map[string]translation.Record{
			"en": {Name: "Sranan Tongo", Description: "Creole spoken by the Surinamese community"},
			"nl": {Name: "Sranantongo"},
		},
	})
	require.NoError(t, err)

	// Publication is gated until the required axis is filled in.
	_, err = f.languages.Publish(asCurator, cityObj.ID(), lang.ID())
	assert.True(t, serrors.IsKind(err, serrors.KindValidation))

	require.NoError(t, f.classifications.Assign(asCurator, cityObj.ID(), lang.ID(), vulnerable.ID()))
	published, err := f.languages.Publish(asCurator, cityObj.ID(), lang.ID())
	require.NoError(t, err)
	assert.Equal(t, language.StatusPublished, published.Status())

	// Display names resolve per locale with fallback.
	view, err := f.languages.Get(asCurator, cityObj.ID(), lang.ID(), "nl")
	require.NoError(t, err)
	assert.Equal(t, "Sranantongo", view.DisplayName)
	view, err = f.languages.Get(asCurator, cityObj.ID(), lang.ID(), "fr")
	require.NoError(t, err)
	assert.Equal(t, "Sranan Tongo", view.DisplayName, "missing locale falls back to the default locale")

	// The value cannot be deleted while the language wears it.
	err = f.classifications.DeleteValue(root, cityObj.ID(), vulnerable.ID())
	require.Error(t, err)
	assert.True(t, serrors.IsKind(err, serrors.KindReferential))

	// The curator's grant does not leak into the fixture city.
	_, err = f.languages.List(composables.WithPrincipalID(f.env.Anonymous(), curator.ID()), f.env.City.ID(), nil)
	assert.True(t, serrors.IsKind(err, serrors.KindDenied))

	// Revoking the grant shuts the door.
	require.NoError(t, f.access.Revoke(root, cityObj.ID(), curator.ID()))
	_, err = f.languages.List(asCurator, cityObj.ID(), nil)
	assert.True(t, serrors.IsKind(err, serrors.KindDenied))
}
