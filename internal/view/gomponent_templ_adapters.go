package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

type gomponentComponent struct {
	node g.Node
}

func (a gomponentComponent) Render(_ context.Context, w io.Writer) error {
	return a.node.Render(w)
}

// AdaptGomponentToTempl lets a gomponents node be passed where a templ.Component is expected.
func AdaptGomponentToTempl(node g.Node) templ.Component {
	return gomponentComponent{node: node}
}

type templNode struct {
	component templ.Component
}

// gomponents does not pass a context through Render, so the templ side gets a background one.
func (a templNode) Render(w io.Writer) error {
	return a.component.Render(context.Background(), w)
}

// AdaptTemplToGomponent embeds a templ.Component in a gomponents tree.
func AdaptTemplToGomponent(component templ.Component) g.Node {
	return templNode{component: component}
}
