package partials

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"

	"github.com/pyowdigitals/optin/internal/content"
	"github.com/pyowdigitals/optin/internal/optin"
)

const (
	// FormID identifies the opt-in form; HTMX responses replace it.
	FormID = "optin-form"
	// SubscribePath is where the form posts.
	SubscribePath = "/subscribe"
)

// OptinForm renders the lead-capture form for the given state. The submit
// button is disabled while a submission is in flight, both from the server
// state and by HTMX for the duration of the request.
func OptinForm(fc content.FormCopy, state optin.State) g.Node {
	label := fc.SubmitLabel
	if state.IsSubmitting {
		label = fc.SubmittingLabel
	}

	return h.Form(
		h.ID(FormID),
		h.Class("optin-form"),
		h.Method("post"),
		h.Action(SubscribePath),
		g.Attr("novalidate"),
		hx.Post(SubscribePath),
		hx.Target("this"),
		hx.Swap("outerHTML"),
		g.Attr("hx-disabled-elt", "find button[type='submit']"),
		h.Input(
			h.Type("text"),
			h.Name("name"),
			h.Placeholder(fc.NamePlaceholder),
			h.Value(state.Name),
			h.AutoComplete("name"),
		),
		h.Input(
			h.Type("email"),
			h.Name("email"),
			h.Placeholder(fc.EmailPlaceholder),
			h.Value(state.Email),
			h.AutoComplete("email"),
		),
		h.Button(
			h.Type("submit"),
			h.Class("btn btn-accent"),
			g.If(state.IsSubmitting, h.Disabled()),
			g.Attr("data-submitting-label", fc.SubmittingLabel),
			g.Text(label),
		),
	)
}
