// Package content holds the static, read-only copy of the page: navigation,
// feature cards, FAQs and footer details.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Anchors are the in-page targets navigation may scroll to.
var Anchors = []string{"home", "offer", "about", "faqs"}

// ErrInvalidDocument is returned when a content document fails validation.
var ErrInvalidDocument = errors.New("invalid content document")

type HeadlineSegment struct {
	Text      string `yaml:"text" validate:"required"`
	Highlight bool   `yaml:"highlight"`
}

type FormCopy struct {
	NamePlaceholder  string `yaml:"name_placeholder" validate:"required"`
	EmailPlaceholder string `yaml:"email_placeholder" validate:"required"`
	SubmitLabel      string `yaml:"submit_label" validate:"required"`
	SubmittingLabel  string `yaml:"submitting_label" validate:"required"`
}

type Offer struct {
	Text     string `yaml:"text" validate:"required"`
	Image    string `yaml:"image"`
	ImageAlt string `yaml:"image_alt"`
}

// Feature is one "what will you get" card.
type Feature struct {
	Image string `yaml:"image"`
	Title string `yaml:"title" validate:"required"`
}

type About struct {
	Heading    string `yaml:"heading" validate:"required"`
	Subheading string `yaml:"subheading"`
	CTA        string `yaml:"cta" validate:"required"`
	Image      string `yaml:"image"`
	ImageAlt   string `yaml:"image_alt"`
}

// FAQ is one accordion entry.
type FAQ struct {
	Question string `yaml:"question" validate:"required"`
	Answer   string `yaml:"answer" validate:"required"`
}

type Contact struct {
	Email string `yaml:"email" validate:"required,email"`
	Phone string `yaml:"phone"`
}

type Social struct {
	Name   string `yaml:"name" validate:"required"`
	Handle string `yaml:"handle" validate:"required"`
	Icon   string `yaml:"icon"`
	URL    string `yaml:"url" validate:"required"`
}

type Footer struct {
	Logo            string   `yaml:"logo"`
	Contact         Contact  `yaml:"contact"`
	Socials         []Social `yaml:"socials" validate:"dive"`
	CopyrightHolder string   `yaml:"copyright_holder" validate:"required"`
}

// Document is the full page copy.
type Document struct {
	Brand           string            `yaml:"brand" validate:"required"`
	Title           string            `yaml:"title"`
	Description     string            `yaml:"description"`
	Headline        []HeadlineSegment `yaml:"headline" validate:"required,min=1,dive"`
	Form            FormCopy          `yaml:"form"`
	GetStartedLabel string            `yaml:"get_started_label" validate:"required"`
	Offer           Offer             `yaml:"offer"`
	FeaturesHeading string            `yaml:"features_heading" validate:"required"`
	Features        []Feature         `yaml:"features" validate:"required,min=1,dive"`
	About           About             `yaml:"about"`
	FAQsHeading     string            `yaml:"faqs_heading" validate:"required"`
	FAQs            []FAQ             `yaml:"faqs" validate:"dive"`
	Nav             []string          `yaml:"nav" validate:"required,min=1,dive,required"`
	Footer          Footer            `yaml:"footer"`
}

// NavLink is a navigation label and the anchor it scrolls to.
type NavLink struct {
	Label  string
	Anchor string
}

var lower = cases.Lower(language.English)

// AnchorFor derives the in-page anchor for a navigation label ("FAQs" -> "faqs").
func AnchorFor(label string) string {
	return lower.String(label)
}

// NavLinks returns the navigation entries with their anchors.
func (d *Document) NavLinks() []NavLink {
	links := make([]NavLink, 0, len(d.Nav))
	for _, label := range d.Nav {
		links = append(links, NavLink{Label: label, Anchor: AnchorFor(label)})
	}
	return links
}

var validate = validator.New()

// Validate checks required copy and that every navigation label resolves to
// a known anchor.
func (d *Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	for _, label := range d.Nav {
		if !slices.Contains(Anchors, AnchorFor(label)) {
			return fmt.Errorf("%w: nav label %q has no matching section", ErrInvalidDocument, label)
		}
	}
	return nil
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Default returns the built-in page copy.
func Default() *Document {
	doc, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("content: built-in document is invalid: %v", err))
	}
	return doc
}
