package leads

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyowdigitals/optin/internal/config"
	"github.com/pyowdigitals/optin/internal/content"
	"github.com/pyowdigitals/optin/internal/middleware"
	"github.com/pyowdigitals/optin/internal/optin"
	"github.com/pyowdigitals/optin/internal/pubsub"
	"github.com/pyowdigitals/optin/internal/registry"
	"github.com/pyowdigitals/optin/internal/rendering"
)

type fixture struct {
	e     *echo.Echo
	bus   *pubsub.WatermillBridge
	forms *optin.Store
	mod   *LeadsModule
}

func newFixture(t *testing.T, sleep optin.SleepFunc) *fixture {
	t.Helper()
	bus := pubsub.NewWatermillBridge()
	t.Cleanup(func() { bus.Close() })

	forms, err := optin.NewStore(16, optin.Settings{Sleep: sleep, OnSubscribed: optin.AnnounceTo(bus)})
	require.NoError(t, err)
	contentStore, err := content.NewStore(afero.NewMemMapFs(), "")
	require.NoError(t, err)

	reg := registry.New(config.Default())
	registry.Set(reg, registry.FormStoreKey, forms)
	registry.Set(reg, registry.ContentStoreKey, contentStore)

	e := echo.New()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte("a-very-secret-key-for-testing-!"))))
	e.Use(middleware.Visitor)

	mod := New(Dependencies{Publisher: bus, Subscriber: bus, Renderer: rendering.NewUniversalRenderer()})
	require.NoError(t, mod.Boot(context.Background(), e.Group(""), reg))
	t.Cleanup(func() { mod.Shutdown(context.Background()) })

	return &fixture{e: e, bus: bus, forms: forms, mod: mod}
}

func noSleep(context.Context, time.Duration) error { return nil }

func post(e *echo.Echo, path string, form url.Values, htmx bool, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSubscribePost_HTMX(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		wantStatus int
		wantToast  string
		wantValues []string
	}{
		{
			name:       "missing name",
			form:       url.Values{"name": {"  "}, "email": {"jo@example.com"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantToast:  "Please fill in all fields",
			wantValues: []string{`value="jo@example.com"`},
		},
		{
			name:       "invalid email",
			form:       url.Values{"name": {"Jo"}, "email": {"jo@example"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantToast:  "Invalid email",
			wantValues: []string{`value="Jo"`, `value="jo@example"`},
		},
		{
			name:       "success",
			form:       url.Values{"name": {"Jo"}, "email": {"jo@example.com"}},
			wantStatus: http.StatusOK,
			wantToast:  "Check your email for the free resource!",
			wantValues: []string{`value=""`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, noSleep)
			rec := post(f.e, "/subscribe", tt.form, true)

			require.Equal(t, tt.wantStatus, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, `id="optin-form"`)
			assert.Contains(t, body, `hx-swap-oob="beforeend:#toasts"`)
			assert.Contains(t, body, tt.wantToast)
			for _, v := range tt.wantValues {
				assert.Contains(t, body, v)
			}
		})
	}
}

func TestSubscribePost_PlainFormRedirectsWithFlash(t *testing.T) {
	f := newFixture(t, noSleep)

	rec := post(f.e, "/subscribe", url.Values{"name": {"Jo"}, "email": {"jo@example.com"}}, false)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/#home", rec.Header().Get(echo.HeaderLocation))
	var names []string
	for _, ck := range rec.Result().Cookies() {
		names = append(names, ck.Name)
	}
	assert.Contains(t, names, "flash-session")
}

func TestSubscribePost_InFlightIsRejected(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	sleep := func(ctx context.Context, d time.Duration) error {
		close(entered)
		<-release
		return nil
	}
	f := newFixture(t, sleep)

	// The first request establishes the visitor cookie and blocks in the delay.
	first := make(chan *httptest.ResponseRecorder, 1)
	warmup := post(f.e, "/resource/download", url.Values{}, true)
	cookies := warmup.Result().Cookies()
	go func() {
		first <- post(f.e, "/subscribe", url.Values{"name": {"Jo"}, "email": {"jo@example.com"}}, true, cookies...)
	}()
	<-entered

	second := post(f.e, "/subscribe", url.Values{"name": {"Al"}, "email": {"al@example.com"}}, true, cookies...)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), `class="btn btn-accent" disabled`, "the form still shows the in-flight submission")

	close(release)
	select {
	case rec := <-first:
		assert.Equal(t, http.StatusOK, rec.Code)
	case <-time.After(2 * time.Second):
		t.Fatal("first submission did not finish")
	}
}

func TestSubscribePost_PublishesLead(t *testing.T) {
	f := newFixture(t, noSleep)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan optin.Lead, 1)
	require.NoError(t, pubsub.Subscribe(ctx, f.bus, optin.LeadSubscribed, func(_ context.Context, _ string, lead optin.Lead) error {
		got <- lead
		return nil
	}))

	rec := post(f.e, "/subscribe", url.Values{"name": {"Jo"}, "email": {"jo@example.com"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	select {
	case lead := <-got:
		assert.Equal(t, "jo@example.com", lead.Email)
		assert.NotEmpty(t, lead.VisitorID)
	case <-time.After(2 * time.Second):
		t.Fatal("no lead published")
	}
}

func TestDownloadPost(t *testing.T) {
	f := newFixture(t, noSleep)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan optin.ResourceRequest, 1)
	require.NoError(t, pubsub.Subscribe(ctx, f.bus, optin.ResourceRequested, func(_ context.Context, _ string, req optin.ResourceRequest) error {
		got <- req
		return nil
	}))

	rec := post(f.e, "/resource/download", url.Values{}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Download Started!")
	assert.Contains(t, rec.Body.String(), "Your free resource is being prepared.")

	select {
	case req := <-got:
		assert.NotEmpty(t, req.VisitorID)
	case <-time.After(2 * time.Second):
		t.Fatal("no resource request published")
	}

	plain := post(f.e, "/resource/download", url.Values{}, false)
	assert.Equal(t, http.StatusSeeOther, plain.Code)
	assert.Equal(t, "/#about", plain.Header().Get(echo.HeaderLocation))
}
