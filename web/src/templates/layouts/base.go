package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/pyowdigitals/optin/internal/notify"
	"github.com/pyowdigitals/optin/internal/view"
	"github.com/pyowdigitals/optin/web/src/templates/partials"
)

const (
	htmxSrc   = "https://unpkg.com/htmx.org@2.0.4"
	htmxWSSrc = "https://unpkg.com/htmx-ext-ws@2.0.2/ws.js"
	// Rejected submissions (409, 422) still swap so the form and its toast update.
	htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"409|422","swap":true},{"code":"[45]..","swap":false,"error":true}]}`
)

// BaseProps configures the document shell.
type BaseProps struct {
	Title       string
	Brand       string
	Description string
	// Flashes are notifications carried over a redirect; they render as toasts.
	Flashes []notify.Notification
}

// Base wraps content in the HTML document: head, scripts and the toast region.
func Base(props BaseProps, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return document(props, view.AdaptTemplToGomponent(content)).Render(w)
	})
}

func document(props BaseProps, content g.Node) g.Node {
	return h.Doctype(
		h.HTML(
			h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1.0")),
				h.TitleEl(g.Text(CalculateTitle(props.Title, props.Brand))),
				g.If(props.Description != "", h.Meta(h.Name("description"), h.Content(props.Description))),
				h.Meta(h.Name("htmx-config"), h.Content(htmxConfig)),
				h.Link(h.Rel("stylesheet"), h.Href("/static/css/optin.css")),
				h.Script(h.Src(htmxSrc)),
				h.Script(h.Src(htmxWSSrc)),
				h.Script(h.Src("/static/js/optin.js"), h.Defer()),
			),
			h.Body(
				content,
				partials.Toasts(props.Flashes),
			),
		),
	)
}
