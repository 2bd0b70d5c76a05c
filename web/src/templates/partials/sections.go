package partials

import (
	"fmt"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"

	"github.com/pyowdigitals/optin/internal/content"
)

// DownloadPath is where the free-resource button posts.
const DownloadPath = "/resource/download"

// Nav renders the fixed top bar.
func Nav(doc *content.Document) g.Node {
	return h.Nav(
		h.Class("nav"),
		h.Div(
			h.Class("container nav-inner"),
			h.Span(h.Class("brand"), g.Text(doc.Brand)),
			h.Div(h.Class("nav-links"), navLinks(doc)),
			h.A(h.Class("btn btn-accent"), h.Href("#home"), g.Text(doc.GetStartedLabel)),
		),
	)
}

func navLinks(doc *content.Document) g.Node {
	return g.Map(doc.NavLinks(), func(l content.NavLink) g.Node {
		return h.A(h.Href("#"+l.Anchor), g.Text(l.Label))
	})
}

// Hero renders the headline, the live countdown and the opt-in form.
func Hero(doc *content.Document, countdown, form g.Node) g.Node {
	return h.Section(
		h.ID("home"),
		h.Class("hero"),
		h.Div(
			h.Class("narrow"),
			h.H1(
				h.Class("headline"),
				g.Map(doc.Headline, func(s content.HeadlineSegment) g.Node {
					return h.Span(g.If(s.Highlight, h.Class("hl")), g.Text(s.Text))
				}),
			),
			countdown,
			form,
		),
	)
}

// Offer renders the offer pitch.
func Offer(doc *content.Document) g.Node {
	return h.Section(
		h.ID("offer"),
		h.Class("alt"),
		h.Div(
			h.Class("container split"),
			h.P(h.Class("offer-text"), g.Text(doc.Offer.Text)),
			g.If(doc.Offer.Image != "",
				h.Img(h.Class("rounded-img"), h.Src(doc.Offer.Image), h.Alt(doc.Offer.ImageAlt)),
			),
		),
	)
}

// Features renders the "what will you get" cards.
func Features(doc *content.Document) g.Node {
	cards := make([]g.Node, 0, len(doc.Features))
	for i, f := range doc.Features {
		cards = append(cards, h.Div(
			h.Class("card"),
			g.If(f.Image != "", h.Img(h.Src(f.Image), h.Alt(fmt.Sprintf("Feature %d", i+1)))),
			h.P(g.Text(f.Title)),
		))
	}
	return h.Section(
		h.Div(
			h.Class("container"),
			h.H2(h.Class("section-title"), g.Text(doc.FeaturesHeading)),
			h.Div(h.Class("cards"), g.Group(cards)),
		),
	)
}

// About renders the introduction and the free-resource action. The action
// only produces a notification; no file is transferred.
func About(doc *content.Document) g.Node {
	return h.Section(
		h.ID("about"),
		h.Class("alt about"),
		h.Div(
			h.Class("container split"),
			g.If(doc.About.Image != "",
				h.Img(h.Class("rounded-img"), h.Src(doc.About.Image), h.Alt(doc.About.ImageAlt)),
			),
			h.Div(
				h.H2(g.Text(doc.About.Heading)),
				g.If(doc.About.Subheading != "", h.P(g.Text(doc.About.Subheading))),
				h.Form(
					h.Method("post"),
					h.Action(DownloadPath),
					hx.Post(DownloadPath),
					hx.Swap("none"),
					h.Button(h.Type("submit"), h.Class("btn btn-cyan"), g.Text(doc.About.CTA)),
				),
			),
		),
	)
}

// FAQs renders the accordion. Only one entry stays open at a time (see optin.js).
func FAQs(doc *content.Document) g.Node {
	return h.Section(
		h.ID("faqs"),
		h.Div(
			h.Class("faqs"),
			h.H2(h.Class("section-title"), g.Text(doc.FAQsHeading)),
			g.Map(doc.FAQs, func(f content.FAQ) g.Node {
				return h.Details(
					h.Class("faq"),
					h.Summary(g.Text(f.Question)),
					h.P(g.Text(f.Answer)),
				)
			}),
		),
	)
}

// Footer renders logo, navigation, contact details, socials and the copyright line.
func Footer(doc *content.Document, year int) g.Node {
	ft := doc.Footer
	return h.Footer(
		h.Class("footer"),
		h.Div(
			h.Class("container"),
			h.Div(
				h.Class("footer-grid"),
				h.Div(g.If(ft.Logo != "", h.Img(h.Src(ft.Logo), h.Alt("Logo"), h.Class("rounded-img")))),
				h.Div(
					h.H3(g.Text("Navigation")),
					h.Ul(g.Map(doc.NavLinks(), func(l content.NavLink) g.Node {
						return h.Li(h.A(h.Href("#"+l.Anchor), g.Text(l.Label)))
					})),
				),
				h.Div(
					h.H3(g.Text("Contact Us")),
					h.Address(
						h.P(g.Text("Email: "+ft.Contact.Email)),
						g.If(ft.Contact.Phone != "", h.P(g.Text("Phone: "+ft.Contact.Phone))),
					),
				),
				h.Div(
					h.H3(g.Text("Socials")),
					g.Map(ft.Socials, func(s content.Social) g.Node {
						return h.A(
							h.Class("social"),
							h.Href(s.URL),
							g.If(s.Icon != "", h.Img(h.Src(s.Icon), h.Alt(s.Name))),
							h.Span(g.Text(s.Handle)),
						)
					}),
				),
			),
			h.Div(
				h.Class("copyright"),
				h.P(g.Textf("© %d %s. All rights reserved.", year, ft.CopyrightHolder)),
			),
		),
	)
}
