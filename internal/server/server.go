package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do/v2"

	"github.com/pyowdigitals/optin/internal/app"
	"github.com/pyowdigitals/optin/internal/config"
	"github.com/pyowdigitals/optin/internal/content"
	appmiddleware "github.com/pyowdigitals/optin/internal/middleware"
	"github.com/pyowdigitals/optin/internal/module"
	"github.com/pyowdigitals/optin/internal/optin"
	"github.com/pyowdigitals/optin/internal/pubsub"
	"github.com/pyowdigitals/optin/internal/registry"
	"github.com/pyowdigitals/optin/internal/rendering"
)

// Server holds the HTTP server and the services behind it.
type Server struct {
	E        *echo.Echo
	Cfg      config.Provider
	Injector *do.RootScope
	Registry *registry.Registry
	Content  *content.Store
	Forms    *optin.Store
	Bus      *app.Bus
	Renderer rendering.Renderer

	modules []module.Module
}

// Dependencies configures New. Echo is optional.
type Dependencies struct {
	Injector *do.RootScope
	Echo     *echo.Echo
}

// New resolves the core services from the injector and sets up the
// middleware chain. Call InitModules and RegisterRoutes before serving.
func New(deps Dependencies) (*Server, error) {
	cfg, err := do.Invoke[config.Provider](deps.Injector)
	if err != nil {
		return nil, err
	}
	contentStore, err := do.Invoke[*content.Store](deps.Injector)
	if err != nil {
		return nil, err
	}
	forms, err := do.Invoke[*optin.Store](deps.Injector)
	if err != nil {
		return nil, err
	}
	bus, err := do.Invoke[*app.Bus](deps.Injector)
	if err != nil {
		return nil, err
	}
	renderer, err := do.Invoke[rendering.Renderer](deps.Injector)
	if err != nil {
		return nil, err
	}

	e := deps.Echo
	if e == nil {
		e = echo.New()
	}
	e.HideBanner = true
	if r, ok := renderer.(echo.Renderer); ok {
		e.Renderer = r
	} else {
		return nil, fmt.Errorf("renderer %T does not implement echo.Renderer", renderer)
	}

	store := sessions.NewCookieStore([]byte(cfg.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(requestLogger())
	e.Use(session.Middleware(store))
	e.Use(appmiddleware.Visitor)
	e.Use(appmiddleware.Logger)
	setupErrorHandling(e)

	reg := registry.New(cfg)
	registry.Set(reg, registry.ContentStoreKey, contentStore)
	registry.Set(reg, registry.FormStoreKey, forms)
	registry.Set[pubsub.Publisher](reg, registry.PublisherKey, bus)
	registry.Set[pubsub.Subscriber](reg, registry.SubscriberKey, bus)
	registry.Set(reg, registry.RendererKey, renderer)

	return &Server{
		E:        e,
		Cfg:      cfg,
		Injector: deps.Injector,
		Registry: reg,
		Content:  contentStore,
		Forms:    forms,
		Bus:      bus,
		Renderer: renderer,
	}, nil
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			slog.LogAttrs(c.Request().Context(), level, "Request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	})
}

// setupErrorHandling logs unexpected errors with a stack trace before
// handing them to echo's default handler.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		logger := appmiddleware.FromContext(c.Request().Context())
		if he, ok := err.(*echo.HTTPError); ok {
			if he.Code >= http.StatusInternalServerError {
				logger.Error("Server error", "error", err, "path", c.Path())
			} else {
				logger.Debug("Client error", "error", err, "path", c.Path())
			}
		} else {
			logger.Error("Internal Server Error (Unhandled)",
				"error", err,
				"path", c.Path(),
				"stack_trace", string(debug.Stack()),
			)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
