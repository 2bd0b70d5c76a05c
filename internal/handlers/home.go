package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pyowdigitals/optin/internal/content"
	"github.com/pyowdigitals/optin/internal/countdown"
	"github.com/pyowdigitals/optin/internal/middleware"
	"github.com/pyowdigitals/optin/internal/optin"
	"github.com/pyowdigitals/optin/internal/view"
	"github.com/pyowdigitals/optin/web/src/templates/layouts"
	"github.com/pyowdigitals/optin/web/src/templates/pages"
)

// HomeHandler serves the opt-in page.
type HomeHandler struct {
	content        *content.Store
	forms          *optin.Store
	countdownStart countdown.Value
	countdownWS    string
	now            func() time.Time
}

// HomeDependencies are the services the page needs.
type HomeDependencies struct {
	Content        *content.Store
	Forms          *optin.Store
	CountdownStart countdown.Value
	// CountdownWS is the path the page opens for live countdown updates.
	CountdownWS string
	Now         func() time.Time
}

// NewHomeHandler creates the page handler.
func NewHomeHandler(deps HomeDependencies) *HomeHandler {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &HomeHandler{
		content:        deps.Content,
		forms:          deps.Forms,
		countdownStart: deps.CountdownStart,
		countdownWS:    deps.CountdownWS,
		now:            now,
	}
}

// HomeGet renders the full page. Each load mounts a fresh, empty form for the visitor.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	doc := h.content.Current()
	form := h.forms.Mount(middleware.VisitorID(c))

	page := pages.Optin(pages.OptinData{
		Content:     doc,
		Countdown:   h.countdownStart,
		CountdownWS: h.countdownWS,
		Form:        form.State(),
		Year:        h.now().Year(),
	})

	component := layouts.Base(layouts.BaseProps{
		Title:       doc.Title,
		Brand:       doc.Brand,
		Description: doc.Description,
		Flashes:     view.Notifications(c),
	}, view.AdaptGomponentToTempl(page))

	return c.Render(http.StatusOK, "", component)
}

// HealthGet reports liveness.
func (h *HomeHandler) HealthGet(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:      "ok",
		Brand:       h.content.Current().Brand,
		ActiveForms: h.forms.Len(),
	})
}
