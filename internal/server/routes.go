package server

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/pyowdigitals/optin/internal/assets"
	"github.com/pyowdigitals/optin/internal/handlers"
	"github.com/pyowdigitals/optin/internal/modules/livecountdown"
)

// RegisterRoutes sets up the page, health and static asset routes.
func (s *Server) RegisterRoutes() error {
	homeHandler := handlers.NewHomeHandler(handlers.HomeDependencies{
		Content:        s.Content,
		Forms:          s.Forms,
		CountdownStart: s.Cfg.GetCountdownStart(),
		CountdownWS:    livecountdown.Path,
	})

	staticFs, err := assets.New(s.Cfg.GetStaticDir())
	if err != nil {
		return fmt.Errorf("static assets: %w", err)
	}

	s.E.GET("/", homeHandler.HomeGet)
	s.E.GET("/health", homeHandler.HealthGet)
	s.E.GET("/static/*", echo.WrapHandler(assets.Handler(staticFs)), stripStatic)
	return nil
}

func stripStatic(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		req.URL.Path = "/" + c.Param("*")
		return next(c)
	}
}
