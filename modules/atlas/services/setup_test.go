package services_test

import (
	"testing"

	coreservices "github.com/citylingua/citylingua/modules/core/services"

	"github.com/citylingua/citylingua/modules/atlas/services"
	"github.com/citylingua/citylingua/pkg/itf"
)

// fixture wires the full atlas service stack over the in-memory store, with
// the real authorization engine as the guard.
type fixture struct {
	env             *itf.TestEnvironment
	access          *coreservices.AccessService
	languages       *services.LanguageService
	districts       *services.DistrictService
	classifications *services.ClassificationService
}

func setup(t *testing.T) *fixture {
	t.Helper()
	env := itf.NewTestContext().Build(t)
	access := coreservices.NewAccessService(env.Store.Accounts(), env.Store.Grants(), env.Tx, env.Bus)
	return &fixture{
		env:    env,
		access: access,
		languages: services.NewLanguageService(
			env.Store.Languages(),
			env.Store.Translations(),
			env.Store.Classifications(),
			env.Store.Districts(),
			env.Tx,
			access,
			env.Bus,
		),
		districts: services.NewDistrictService(
			env.Store.Districts(),
			env.Store.Languages(),
			env.Store.Translations(),
			env.Store.Classifications(),
			env.Tx,
			access,
			env.Bus,
		),
		classifications: services.NewClassificationService(
			env.Store.Classifications(),
			env.Tx,
			access,
			env.Bus,
		),
	}
}
