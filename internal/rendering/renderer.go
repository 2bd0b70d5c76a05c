package rendering

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	g "maragu.dev/gomponents"
)

// Renderer renders templ components and gomponents nodes.
type Renderer interface {
	// RenderComponent renders to bytes, for WebSocket frames and fragments.
	RenderComponent(ctx context.Context, component any) ([]byte, error)
	// RenderPage writes a complete HTML response.
	RenderPage(c echo.Context, status int, component any) error
	// RenderFragments writes several components into one HTML response,
	// typically a swap target followed by out-of-band nodes.
	RenderFragments(c echo.Context, status int, components ...any) error
}

// UniversalRenderer is the Renderer used by every module. It also satisfies echo.Renderer.
type UniversalRenderer struct{}

// NewUniversalRenderer creates a renderer for templ and gomponents components.
func NewUniversalRenderer() *UniversalRenderer {
	return &UniversalRenderer{}
}

func (r *UniversalRenderer) render(ctx context.Context, component any, w io.Writer) error {
	switch c := component.(type) {
	case templ.Component:
		return c.Render(ctx, w)
	case g.Node:
		return c.Render(w)
	default:
		return fmt.Errorf("unsupported component type %T", component)
	}
}

// RenderComponent renders component to bytes.
func (r *UniversalRenderer) RenderComponent(ctx context.Context, component any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.render(ctx, component, &buf); err != nil {
		return nil, fmt.Errorf("render component: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *UniversalRenderer) RenderPage(c echo.Context, status int, component any) error {
	return r.RenderFragments(c, status, component)
}

// RenderFragments buffers every component and writes them as one HTML response.
func (r *UniversalRenderer) RenderFragments(c echo.Context, status int, components ...any) error {
	// Render into a buffer first so a failure can still produce a clean error response.
	var buf bytes.Buffer
	for _, component := range components {
		if err := r.render(c.Request().Context(), component, &buf); err != nil {
			slog.ErrorContext(c.Request().Context(), "Failed to render component", "error", err)
			return err
		}
	}
	return c.HTMLBlob(status, buf.Bytes())
}

// Render implements echo.Renderer; the component travels in data and name is ignored.
func (r *UniversalRenderer) Render(w io.Writer, _ string, data any, c echo.Context) error {
	if c.Response().Header().Get(echo.HeaderContentType) == "" {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	}
	return r.render(c.Request().Context(), data, w)
}
