package leads

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pyowdigitals/optin/internal/content"
	"github.com/pyowdigitals/optin/internal/middleware"
	"github.com/pyowdigitals/optin/internal/notify"
	"github.com/pyowdigitals/optin/internal/optin"
	"github.com/pyowdigitals/optin/internal/pubsub"
	"github.com/pyowdigitals/optin/internal/rendering"
	"github.com/pyowdigitals/optin/internal/view"
	"github.com/pyowdigitals/optin/web/src/templates/partials"
)

// Handler serves the form endpoints.
type Handler struct {
	forms     *optin.Store
	content   *content.Store
	publisher pubsub.Publisher
	renderer  rendering.Renderer
	now       func() time.Time
}

// HandlerDependencies holds what the form endpoints need. Now defaults to time.Now.
type HandlerDependencies struct {
	Forms     *optin.Store
	Content   *content.Store
	Publisher pubsub.Publisher
	Renderer  rendering.Renderer
	Now       func() time.Time
}

// NewHandler creates the form endpoints handler.
func NewHandler(deps HandlerDependencies) *Handler {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Handler{
		forms:     deps.Forms,
		content:   deps.Content,
		publisher: deps.Publisher,
		renderer:  deps.Renderer,
		now:       now,
	}
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// SubscribePost runs a submission for the visitor's form. HTMX callers get
// the re-rendered form and a toast; plain form posts are redirected back to
// the page with the toast as a flash.
func (h *Handler) SubscribePost(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	var req optin.SubscribeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}

	form := h.forms.Get(middleware.VisitorID(c))
	n, err := form.Submit(ctx, req.Name, req.Email)

	status := http.StatusOK
	var verr *optin.ValidationError
	switch {
	case err == nil:
		logger.Info("Opt-in submitted")
	case errors.As(err, &verr):
		logger.Info("Opt-in rejected", "code", verr.Code)
		status = http.StatusUnprocessableEntity
	case errors.Is(err, optin.ErrSubmissionInProgress):
		status = http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		logger.Info("Opt-in abandoned by client", "error", err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "submission interrupted")
	default:
		return err
	}

	if !isHTMX(c) {
		return h.redirectWith(c, n, "/#home")
	}
	return h.renderer.RenderFragments(c, status,
		partials.OptinForm(h.content.Current().Form, form.State()),
		partials.ToastOOB(n),
	)
}

// DownloadPost announces a request for the free resource. No file is sent.
func (h *Handler) DownloadPost(c echo.Context) error {
	ctx := c.Request().Context()
	visitorID := middleware.VisitorID(c)

	err := pubsub.Publish(ctx, h.publisher, optin.ResourceRequested, visitorID, optin.ResourceRequest{
		VisitorID:   visitorID,
		RequestedAt: h.now().UTC(),
	})
	if err != nil {
		// The visitor still gets their confirmation.
		middleware.FromContext(ctx).Error("Failed to publish resource request", "error", err)
	}

	n := notify.DownloadStarted()
	if !isHTMX(c) {
		return h.redirectWith(c, n, "/#about")
	}
	return h.renderer.RenderFragments(c, http.StatusOK, partials.ToastOOB(n))
}

func (h *Handler) redirectWith(c echo.Context, n notify.Notification, target string) error {
	if err := view.AddNotification(c, n); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, target)
}
