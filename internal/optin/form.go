package optin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pyowdigitals/optin/internal/logging"
	"github.com/pyowdigitals/optin/internal/notify"
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the SleepFunc backed by a timer.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Lead is a successfully submitted sign-up. It is announced, never stored.
type Lead struct {
	SubmissionID string    `json:"submission_id"`
	VisitorID    string    `json:"visitor_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// Settings are shared by every form a Store creates.
type Settings struct {
	// Delay stands in for the network round trip of a real submission.
	Delay time.Duration
	// Sleep waits out Delay; defaults to Sleep.
	Sleep SleepFunc
	// OnSubscribed is called after the delay for each accepted lead.
	// Its error is logged; the submission still succeeds.
	OnSubscribed func(ctx context.Context, lead Lead) error
	// Now defaults to time.Now.
	Now func() time.Time
}

func (s Settings) withDefaults() Settings {
	if s.Sleep == nil {
		s.Sleep = Sleep
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	return s
}

// State is a point-in-time copy of a form.
type State struct {
	Name         string
	Email        string
	IsSubmitting bool
}

// Form is the lead-capture form of one mounted page. Submitting is true only
// while a single accepted submission waits out its delay.
type Form struct {
	owner    string
	settings Settings

	mu         sync.Mutex
	name       string
	email      string
	submitting bool
}

// NewForm creates an empty form owned by visitorID.
func NewForm(visitorID string, settings Settings) *Form {
	return &Form{owner: visitorID, settings: settings.withDefaults()}
}

// State returns the current fields and submitting flag.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return State{Name: f.name, Email: f.email, IsSubmitting: f.submitting}
}

// Submit records the input, validates it and runs the simulated submission.
//
// A rejected submission keeps the input. An accepted one sets submitting for
// the duration of the delay, then clears both fields. While one submission is
// in flight further calls fail with ErrSubmissionInProgress without touching
// the form. If ctx ends during the delay the fields are kept and the ctx error
// is returned.
func (f *Form) Submit(ctx context.Context, name, email string) (notify.Notification, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return notify.SubmissionInProgress(), ErrSubmissionInProgress
	}
	f.name, f.email = name, email
	if err := Validate(name, email); err != nil {
		f.mu.Unlock()
		var verr *ValidationError
		if errors.As(err, &verr) {
			return verr.Notification, verr
		}
		return notify.Notification{}, err
	}
	f.submitting = true
	f.mu.Unlock()

	err := f.settings.Sleep(ctx, f.settings.Delay)
	if err == nil {
		f.announce(ctx, name, email)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		return notify.Notification{}, fmt.Errorf("submission interrupted: %w", err)
	}
	f.name, f.email = "", ""
	return notify.Subscribed(), nil
}

func (f *Form) announce(ctx context.Context, name, email string) {
	if f.settings.OnSubscribed == nil {
		return
	}
	lead := Lead{
		SubmissionID: uuid.NewString(),
		VisitorID:    f.owner,
		Name:         name,
		Email:        email,
		SubmittedAt:  f.settings.Now().UTC(),
	}
	if err := f.settings.OnSubscribed(ctx, lead); err != nil {
		slog.Error("Failed to announce lead", "submission_id", lead.SubmissionID, "email", logging.MaskEmail(email), "error", err)
	}
}
