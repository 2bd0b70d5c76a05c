package livecountdown

import (
	"context"
	"errors"
	"time"

	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"

	"github.com/pyowdigitals/optin/internal/countdown"
	"github.com/pyowdigitals/optin/internal/middleware"
	"github.com/pyowdigitals/optin/web/src/templates/partials"
)

const writeTimeout = 5 * time.Second

// ServeWS upgrades the request and streams countdown fragments until the
// client leaves, the countdown reaches zero, or the module shuts down.
func (m *Module) ServeWS(c echo.Context) error {
	logger := middleware.FromContext(c.Request().Context())

	conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
		// The page is served from the same origin; any origin is accepted for local tooling.
		InsecureSkipVerify: true,
	})
	if err != nil {
		// Accept has already written the HTTP error.
		logger.Warn("Failed to upgrade countdown connection", "error", err)
		return nil
	}
	defer conn.CloseNow()

	// The page never sends anything; CloseRead cancels ctx when the client goes away.
	ctx := conn.CloseRead(c.Request().Context())

	tk := m.newTicker()
	defer m.release(tk)
	if err := tk.Start(ctx); err != nil {
		conn.Close(websocket.StatusInternalError, "countdown unavailable")
		return nil
	}
	logger.Debug("Countdown connection opened", "start", tk.Snapshot().String())

	if err := m.send(ctx, conn, tk.Snapshot()); err != nil {
		logger.Debug("Countdown client gone before first frame", "error", err)
		return nil
	}

	for {
		select {
		case v, ok := <-tk.Updates():
			if !ok {
				if tk.Halted() {
					logger.Debug("Countdown finished")
					conn.Close(websocket.StatusNormalClosure, "countdown finished")
				} else {
					conn.Close(websocket.StatusGoingAway, "server shutting down")
				}
				return nil
			}
			if err := m.send(ctx, conn, v); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.Debug("Countdown write failed", "error", err)
				}
				return nil
			}
		case <-ctx.Done():
			logger.Debug("Countdown client disconnected")
			return nil
		}
	}
}

func (m *Module) send(ctx context.Context, conn *websocket.Conn, v countdown.Value) error {
	frame, err := m.renderer.RenderComponent(ctx, partials.Countdown(v))
	if err != nil {
		return err
	}
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(wctx, websocket.MessageText, frame)
}
