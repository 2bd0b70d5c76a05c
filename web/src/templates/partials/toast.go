package partials

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"

	"github.com/pyowdigitals/optin/internal/notify"
)

// ToastsID is the id of the region toasts are appended to.
const ToastsID = "toasts"

// Toasts renders the toast region with any initial notifications.
func Toasts(initial []notify.Notification) g.Node {
	return h.Div(
		h.ID(ToastsID),
		g.Attr("aria-live", "polite"),
		g.Map(initial, Toast),
	)
}

// Toast renders one notification.
func Toast(n notify.Notification) g.Node {
	class := "toast"
	role := "status"
	if n.IsError() {
		class += " toast-destructive"
		role = "alert"
	}
	return h.Div(
		h.Class(class),
		h.Role(role),
		h.Div(h.Class("toast-title"), g.Text(n.Title)),
		h.Div(h.Class("toast-description"), g.Text(n.Description)),
	)
}

// ToastOOB appends a notification to the toast region from any HTMX response.
func ToastOOB(n notify.Notification) g.Node {
	return h.Div(
		hx.SwapOOB("beforeend:#"+ToastsID),
		Toast(n),
	)
}
