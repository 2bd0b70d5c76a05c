package pages

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/pyowdigitals/optin/internal/content"
	"github.com/pyowdigitals/optin/internal/countdown"
	"github.com/pyowdigitals/optin/internal/optin"
	"github.com/pyowdigitals/optin/web/src/templates/partials"
)

// OptinData is everything the opt-in page needs to render.
type OptinData struct {
	Content     *content.Document
	Countdown   countdown.Value
	CountdownWS string
	Form        optin.State
	Year        int
}

// Optin is the single landing page.
func Optin(data OptinData) g.Node {
	doc := data.Content
	return h.Main(
		partials.Nav(doc),
		partials.Hero(doc,
			partials.CountdownStream(data.CountdownWS, data.Countdown),
			partials.OptinForm(doc.Form, data.Form),
		),
		partials.Offer(doc),
		partials.Features(doc),
		partials.About(doc),
		partials.FAQs(doc),
		partials.Footer(doc, data.Year),
	)
}
