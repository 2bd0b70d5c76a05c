package view

import (
	"fmt"
	"log/slog"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/pyowdigitals/optin/internal/notify"
)

const (
	flashSessionName = "flash-session"
	flashKey         = "notifications"
)

// AddNotification stores n in the session so the next page render can show it.
// It is the fallback path for form posts made without HTMX.
func AddNotification(c echo.Context, n notify.Notification) error {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return fmt.Errorf("get flash session: %w", err)
	}
	encoded, err := n.Encode()
	if err != nil {
		return err
	}
	sess.AddFlash(encoded, flashKey)
	return sess.Save(c.Request(), c.Response())
}

// Notifications retrieves and clears the pending notifications.
func Notifications(c echo.Context) []notify.Notification {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		slog.Warn("Could not read flash session", "error", err)
		return nil
	}

	flashes := sess.Flashes(flashKey)
	if len(flashes) == 0 {
		return nil
	}
	// Flashes() clears them; saving persists the clearing.
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		slog.Warn("Could not clear flash session", "error", err)
	}

	out := make([]notify.Notification, 0, len(flashes))
	for _, f := range flashes {
		s, ok := f.(string)
		if !ok {
			continue
		}
		n, err := notify.Decode(s)
		if err != nil {
			slog.Warn("Dropping malformed flash notification", "error", err)
			continue
		}
		out = append(out, n)
	}
	return out
}
