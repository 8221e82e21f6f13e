// Package atlas holds the city content: languages, districts, their
// translations and the per-city classification taxonomy.
package atlas

import (
	"github.com/citylingua/citylingua/modules/atlas/infrastructure/persistence"
	"github.com/citylingua/citylingua/modules/atlas/presentation/controllers"
	"github.com/citylingua/citylingua/modules/atlas/services"
	coreservices "github.com/citylingua/citylingua/modules/core/services"
	"github.com/citylingua/citylingua/pkg/application"
	"github.com/citylingua/citylingua/pkg/composables"
)

type Module struct{}

func NewModule() application.Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "atlas"
}

// Register wires the content services against the core authorization engine;
// the core module must be registered first.
func (m *Module) Register(app application.Application) error {
	languages := persistence.NewLanguageRepository()
	districts := persistence.NewDistrictRepository()
	classifications := persistence.NewClassificationRepository()
	translations := persistence.NewTranslationRepository()
	tx := composables.NewPgxTransactor()

	access := app.Service(coreservices.AccessService{}).(*coreservices.AccessService)

	app.RegisterServices(
		services.NewLanguageService(languages, translations, classifications, districts, tx, access, app.EventPublisher()),
		services.NewDistrictService(districts, languages, translations, classifications, tx, access, app.EventPublisher()),
		services.NewClassificationService(classifications, tx, access, app.EventPublisher()),
	)
	app.RegisterControllers(
		controllers.NewLanguageController(app),
		controllers.NewDistrictController(app),
		controllers.NewClassificationController(app),
	)
	return nil
}
