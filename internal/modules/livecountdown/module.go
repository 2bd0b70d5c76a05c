package livecountdown

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pyowdigitals/optin/internal/countdown"
	"github.com/pyowdigitals/optin/internal/module"
	"github.com/pyowdigitals/optin/internal/registry"
	"github.com/pyowdigitals/optin/internal/rendering"
)

// Path is where the page opens its live countdown connection.
const Path = "/countdown/ws"

// Module streams a per-connection countdown over WebSocket.
type Module struct {
	module.BaseModule
	renderer rendering.Renderer
	start    countdown.Value
	interval time.Duration
	opts     []countdown.Option

	mu   sync.Mutex
	live map[*countdown.Ticker]struct{}
}

// Dependencies holds what the countdown module needs.
type Dependencies struct {
	Renderer rendering.Renderer
	Start    countdown.Value
	Interval time.Duration
	// TickerOptions are applied to every connection's ticker.
	TickerOptions []countdown.Option
}

// New creates the countdown module. Each WebSocket connection gets its own
// ticker starting at deps.Start.
func New(deps Dependencies) *Module {
	return &Module{
		renderer: deps.Renderer,
		start:    deps.Start,
		interval: deps.Interval,
		opts:     deps.TickerOptions,
		live:     make(map[*countdown.Ticker]struct{}),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "countdown"
}

// Boot registers the WebSocket route.
func (m *Module) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	slog.Info("Booting countdown module", "path", Path, "start", m.start.String(), "interval", m.interval)
	g.GET(Path, m.ServeWS)
	return nil
}

// Shutdown stops every live ticker, which ends their connections.
func (m *Module) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	tickers := make([]*countdown.Ticker, 0, len(m.live))
	for tk := range m.live {
		tickers = append(tickers, tk)
	}
	m.mu.Unlock()

	slog.Info("Shutting down countdown module", "live_connections", len(tickers))
	for _, tk := range tickers {
		tk.Stop()
	}
	return nil
}

// Live returns the number of connected countdowns.
func (m *Module) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.live)
}

func (m *Module) newTicker() *countdown.Ticker {
	tk := countdown.NewTicker(m.start, m.interval, m.opts...)
	m.mu.Lock()
	m.live[tk] = struct{}{}
	m.mu.Unlock()
	return tk
}

func (m *Module) release(tk *countdown.Ticker) {
	tk.Stop()
	m.mu.Lock()
	delete(m.live, tk)
	m.mu.Unlock()
}
