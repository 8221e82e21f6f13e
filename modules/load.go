package modules

import (
	"github.com/citylingua/citylingua/modules/atlas"
	"github.com/citylingua/citylingua/modules/core"
	"github.com/citylingua/citylingua/pkg/application"
)

// BuiltInModules lists every module in registration order. Core comes first:
// atlas resolves the authorization engine out of the service registry.
var BuiltInModules = []application.Module{
	core.NewModule(),
	atlas.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range append(BuiltInModules, externalModules...) {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
