package content

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
brand: ACME
headline:
  - text: "GROW "
  - text: "FAST"
    highlight: true
form:
  name_placeholder: Name
  email_placeholder: Email
  submit_label: JOIN
  submitting_label: Joining...
get_started_label: Start
offer:
  text: Join us.
features_heading: PERKS
features:
  - title: Free guide
about:
  heading: Hello
  cta: GET IT
faqs_heading: FAQ
faqs:
  - question: Free?
    answer: Yes.
nav: [Home, FAQs]
footer:
  contact:
    email: hi@acme.test
  copyright_holder: ACME Inc
`

func TestDefault(t *testing.T) {
	doc := Default()

	assert.Equal(t, "PYOW", doc.Brand)
	assert.Len(t, doc.Features, 3)
	assert.Len(t, doc.FAQs, 3)
	assert.Equal(t, "Is your product free?", doc.FAQs[1].Question)
	assert.Equal(t, "contact@pyowdigitals.com", doc.Footer.Contact.Email)
	assert.Equal(t, []NavLink{
		{Label: "Home", Anchor: "home"},
		{Label: "Offer", Anchor: "offer"},
		{Label: "About", Anchor: "about"},
		{Label: "FAQs", Anchor: "faqs"},
	}, doc.NavLinks())
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"not yaml":       "brand: [",
		"missing brand":  "nav: [Home]",
		"unknown anchor": minimalYAMLWith("nav: [Home, FAQs]", "nav: [Home, Pricing]"),
		"bad email":      minimalYAMLWith("email: hi@acme.test", "email: nope"),
		"no features":    minimalYAMLWith("  - title: Free guide", "  []"),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}

func minimalYAMLWith(old, replacement string) string {
	if !strings.Contains(minimalYAML, old) {
		panic("fixture fragment not found: " + old)
	}
	return strings.Replace(minimalYAML, old, replacement, 1)
}

func TestStore_LoadAndReload(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFs, "/site/content.yaml", []byte(minimalYAML), 0644))

	store, err := NewStore(memFs, "/site/content.yaml")
	require.NoError(t, err)
	assert.Equal(t, "ACME", store.Current().Brand)

	t.Run("valid change is applied", func(t *testing.T) {
		updated := minimalYAMLWith("brand: ACME", "brand: ACME 2")
		require.NoError(t, afero.WriteFile(memFs, "/site/content.yaml", []byte(updated), 0644))
		require.NoError(t, store.Reload())
		assert.Equal(t, "ACME 2", store.Current().Brand)
	})

	t.Run("invalid change keeps the current document", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(memFs, "/site/content.yaml", []byte("brand: ["), 0644))
		assert.Error(t, store.Reload())
		assert.Equal(t, "ACME 2", store.Current().Brand)
	})
}

func TestNewStore_Errors(t *testing.T) {
	_, err := NewStore(afero.NewMemMapFs(), "/missing.yaml")
	assert.Error(t, err)

	store, err := NewStore(afero.NewMemMapFs(), "")
	require.NoError(t, err)
	assert.Equal(t, "PYOW", store.Current().Brand)
	assert.NoError(t, store.Watch(context.Background()), "watching the built-in document is a no-op")
}

func TestStore_WatchHotReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalYAML), 0644))

	store, err := NewStore(afero.NewOsFs(), path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, store.Watch(ctx))

	updated := minimalYAMLWith("brand: ACME", "brand: Hot Reloaded")
	require.NoError(t, os.WriteFile(path, []byte(updated), 0644))

	assert.Eventually(t, func() bool {
		return store.Current().Brand == "Hot Reloaded"
	}, 3*time.Second, 20*time.Millisecond)
}
