package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	// VisitorContextKey is the echo context key holding the visitor ID.
	VisitorContextKey = "visitor_id"

	visitorSessionName = "optin-visitor"
	visitorSessionKey  = "id"
)

// Visitor gives every browser a stable anonymous ID, kept in a cookie
// session. Per-visitor page state is keyed by it. Requires the session middleware.
func Visitor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := session.Get(visitorSessionName, c)
		if err != nil {
			// A cookie signed with an old secret decodes with an error but a usable new session.
			slog.Debug("Resetting unreadable visitor session", "error", err)
		}
		if sess == nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
		}

		id, _ := sess.Values[visitorSessionKey].(string)
		if _, parseErr := uuid.Parse(id); parseErr != nil {
			id = uuid.NewString()
			sess.Values[visitorSessionKey] = id
			if err := sess.Save(c.Request(), c.Response()); err != nil {
				return err
			}
		}

		c.Set(VisitorContextKey, id)
		return next(c)
	}
}

// VisitorID returns the ID set by Visitor, or "" outside of it.
func VisitorID(c echo.Context) string {
	id, _ := c.Get(VisitorContextKey).(string)
	return id
}
