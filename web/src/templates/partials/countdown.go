package partials

import (
	"fmt"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/pyowdigitals/optin/internal/countdown"
)

// CountdownID is the element id the live countdown stream swaps into.
const CountdownID = "countdown"

// Countdown renders the four countdown cells. The same markup is pushed over
// the WebSocket on every tick and swapped by id.
func Countdown(v countdown.Value) g.Node {
	return h.Div(
		h.ID(CountdownID),
		h.Class("countdown"),
		g.Attr("data-remaining", fmt.Sprintf("%d", v.TotalSeconds())),
		g.Map(v.Cells(), func(c countdown.Cell) g.Node {
			return h.Div(
				h.Class("countdown-cell"),
				h.Div(h.Class("countdown-value"), g.Text(c.Value)),
				h.Span(h.Class("countdown-label"), g.Text(c.Label)),
			)
		}),
	)
}

// CountdownStream wraps the countdown in the element that opens the live
// WebSocket connection.
func CountdownStream(wsPath string, v countdown.Value) g.Node {
	return h.Div(
		g.Attr("hx-ext", "ws"),
		g.Attr("ws-connect", wsPath),
		Countdown(v),
	)
}
