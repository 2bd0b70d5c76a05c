package app

import (
	"github.com/samber/do/v2"

	"github.com/pyowdigitals/optin/internal/config"
	"github.com/pyowdigitals/optin/internal/module"
	"github.com/pyowdigitals/optin/internal/modules/leads"
	"github.com/pyowdigitals/optin/internal/modules/livecountdown"
	"github.com/pyowdigitals/optin/internal/rendering"
)

// NewModules returns every feature module of the page, in boot order.
func NewModules(i do.Injector) []module.Module {
	cfg := do.MustInvoke[config.Provider](i)
	renderer := do.MustInvoke[rendering.Renderer](i)
	bus := do.MustInvoke[*Bus](i)

	return []module.Module{
		livecountdown.New(livecountdown.Dependencies{
			Renderer: renderer,
			Start:    cfg.GetCountdownStart(),
			Interval: cfg.GetCountdownInterval(),
		}),
		leads.New(leads.Dependencies{
			Publisher:  bus,
			Subscriber: bus,
			Renderer:   renderer,
		}),
	}
}
