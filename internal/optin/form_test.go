package optin

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyowdigitals/optin/internal/notify"
)

// gate is a SleepFunc that blocks until released, so tests can observe the
// in-flight state without waiting on a real delay.
type gate struct {
	entered chan time.Duration
	release chan struct{}
}

func newGate() *gate {
	return &gate{entered: make(chan time.Duration, 1), release: make(chan struct{})}
}

func (g *gate) sleep(ctx context.Context, d time.Duration) error {
	g.entered <- d
	select {
	case <-g.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func noSleep(context.Context, time.Duration) error { return nil }

func TestForm_SubmitMissingField(t *testing.T) {
	f := NewForm("v1", Settings{Sleep: noSleep})

	n, err := f.Submit(context.Background(), "", "jo@example.com")

	require.ErrorIs(t, err, ErrMissingField)
	assert.Equal(t, notify.MissingFields(), n)
	assert.Equal(t, State{Name: "", Email: "jo@example.com"}, f.State(), "fields must not be cleared")
}

func TestForm_SubmitInvalidEmail(t *testing.T) {
	f := NewForm("v1", Settings{Sleep: noSleep})

	n, err := f.Submit(context.Background(), "Jo", "not-an-email")

	require.ErrorIs(t, err, ErrInvalidEmail)
	assert.Equal(t, notify.InvalidEmail(), n)
	assert.Equal(t, State{Name: "Jo", Email: "not-an-email"}, f.State())
}

func TestForm_SubmitSuccess(t *testing.T) {
	g := newGate()
	var (
		mu    sync.Mutex
		leads []Lead
	)
	fixed := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	f := NewForm("visitor-7", Settings{
		Delay: time.Second,
		Sleep: g.sleep,
		Now:   func() time.Time { return fixed },
		OnSubscribed: func(_ context.Context, lead Lead) error {
			mu.Lock()
			defer mu.Unlock()
			leads = append(leads, lead)
			return nil
		},
	})

	type result struct {
		n   notify.Notification
		err error
	}
	done := make(chan result, 1)
	go func() {
		n, err := f.Submit(context.Background(), "Jo", "jo@example.com")
		done <- result{n, err}
	}()

	assert.Equal(t, time.Second, <-g.entered, "the configured delay is used")
	assert.Equal(t, State{Name: "Jo", Email: "jo@example.com", IsSubmitting: true}, f.State())

	// A second rapid attempt is refused while the first is in flight.
	n, err := f.Submit(context.Background(), "Other", "other@example.com")
	require.ErrorIs(t, err, ErrSubmissionInProgress)
	assert.Equal(t, notify.SubmissionInProgress(), n)
	assert.Equal(t, "Jo", f.State().Name, "a refused attempt leaves the form untouched")

	close(g.release)
	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, notify.Subscribed(), res.n)
	assert.Equal(t, State{}, f.State(), "fields are cleared and submitting reset")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, leads, 1)
	assert.Equal(t, "visitor-7", leads[0].VisitorID)
	assert.Equal(t, "Jo", leads[0].Name)
	assert.Equal(t, "jo@example.com", leads[0].Email)
	assert.Equal(t, fixed, leads[0].SubmittedAt)
	assert.NotEmpty(t, leads[0].SubmissionID)
}

func TestForm_SubmitInterrupted(t *testing.T) {
	g := newGate()
	f := NewForm("v1", Settings{Sleep: g.sleep})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(ctx, "Jo", "jo@example.com")
		done <- err
	}()
	<-g.entered
	cancel()

	err := <-done
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, State{Name: "Jo", Email: "jo@example.com"}, f.State(), "fields kept, submitting reset")
}

func TestForm_AnnounceFailureStillSucceeds(t *testing.T) {
	f := NewForm("v1", Settings{
		Sleep:        noSleep,
		OnSubscribed: func(context.Context, Lead) error { return errors.New("bus closed") },
	})

	n, err := f.Submit(context.Background(), "Jo", "jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, notify.Subscribed(), n)
}

func TestForm_CanSubmitAgainAfterSuccess(t *testing.T) {
	f := NewForm("v1", Settings{Sleep: noSleep})
	ctx := context.Background()

	_, err := f.Submit(ctx, "Jo", "jo@example.com")
	require.NoError(t, err)
	_, err = f.Submit(ctx, "Ann", "ann@example.com")
	require.NoError(t, err)
}

func TestSleep(t *testing.T) {
	require.NoError(t, Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
}
