// Package core provides the platform backbone: tenants (cities), global
// accounts and the tenant-scoped authorization engine every other module
// consults.
package core

import (
	"github.com/citylingua/citylingua/modules/core/infrastructure/persistence"
	"github.com/citylingua/citylingua/modules/core/presentation/controllers"
	"github.com/citylingua/citylingua/modules/core/services"
	"github.com/citylingua/citylingua/pkg/application"
	"github.com/citylingua/citylingua/pkg/composables"
)

type Module struct{}

func NewModule() application.Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "core"
}

func (m *Module) Register(app application.Application) error {
	cities := persistence.NewCityRepository()
	accounts := persistence.NewAccountRepository()
	grants := persistence.NewGrantRepository()
	tx := composables.NewPgxTransactor()

	access := services.NewAccessService(accounts, grants, tx, app.EventPublisher())
	app.RegisterServices(
		access,
		services.NewCityService(cities, accounts, grants, tx, access, app.EventPublisher()),
		services.NewAccountService(accounts, tx, access, app.EventPublisher()),
	)
	app.RegisterControllers(
		controllers.NewCityController(app),
		controllers.NewAccountController(app),
		controllers.NewAccessController(app),
	)
	return nil
}
