package countdown

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var (
	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("countdown ticker already started")
	// ErrStopped is returned when Start is called after Stop.
	ErrStopped = errors.New("countdown ticker stopped")
)

// TickSource creates the periodic signal driving a Ticker. The returned
// function releases it.
type TickSource func(interval time.Duration) (<-chan time.Time, func())

// SystemTicks is the TickSource backed by time.Ticker.
func SystemTicks(interval time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(interval)
	return t.C, t.Stop
}

// Option configures a Ticker.
type Option func(*Ticker)

// WithTickSource replaces the system ticker, mainly for tests.
func WithTickSource(src TickSource) Option {
	return func(t *Ticker) { t.source = src }
}

type tickerState int

const (
	stateIdle tickerState = iota
	stateRunning
	stateStopped
)

// Ticker owns one countdown Value and decrements it once per interval.
// It stops by itself when the countdown halts at zero; Stop must be called
// when the owner goes away so the goroutine does not outlive it.
type Ticker struct {
	interval time.Duration
	source   TickSource

	mu     sync.Mutex
	value  Value
	state  tickerState
	halted bool

	updates  chan Value
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewTicker creates an idle ticker starting at start.
func NewTicker(start Value, interval time.Duration, opts ...Option) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	t := &Ticker{
		interval: interval,
		source:   SystemTicks,
		value:    Normalize(start),
		updates:  make(chan Value, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start launches the ticking goroutine. It returns once the goroutine is
// running; ctx cancellation stops the ticker like Stop does.
func (t *Ticker) Start(ctx context.Context) error {
	t.mu.Lock()
	switch t.state {
	case stateRunning:
		t.mu.Unlock()
		return ErrAlreadyStarted
	case stateStopped:
		t.mu.Unlock()
		return ErrStopped
	}
	t.state = stateRunning
	t.mu.Unlock()

	ticks, release := t.source(t.interval)
	go t.run(ctx, ticks, release)
	return nil
}

func (t *Ticker) run(ctx context.Context, ticks <-chan time.Time, release func()) {
	defer func() {
		release()
		t.mu.Lock()
		t.state = stateStopped
		t.mu.Unlock()
		close(t.updates)
		close(t.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.stop:
			return
		case <-ticks:
			next, ok := t.advance()
			if !ok {
				slog.Debug("Countdown reached zero, stopping ticker")
				return
			}
			t.deliver(next)
		}
	}
}

func (t *Ticker) advance() (Value, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	next, ok := Tick(t.value)
	if !ok {
		t.halted = true
		return t.value, false
	}
	t.value = next
	return next, true
}

// deliver hands v to the consumer without blocking. If the consumer has not
// read the previous value yet it is replaced.
func (t *Ticker) deliver(v Value) {
	select {
	case t.updates <- v:
		return
	default:
	}
	select {
	case <-t.updates:
	default:
	}
	t.updates <- v
}

// Stop cancels the ticker. It is safe to call more than once and before Start.
func (t *Ticker) Stop() {
	t.stopOnce.Do(func() {
		t.mu.Lock()
		idle := t.state == stateIdle
		t.state = stateStopped
		t.mu.Unlock()

		close(t.stop)
		if idle {
			close(t.updates)
			close(t.done)
		}
	})
}

// Snapshot returns the current value.
func (t *Ticker) Snapshot() Value {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value
}

// Halted reports whether the ticker stopped because the countdown hit zero.
func (t *Ticker) Halted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.halted
}

// Updates delivers each new value. It is closed when the ticker stops.
func (t *Ticker) Updates() <-chan Value {
	return t.updates
}

// Done is closed once the ticker has fully stopped.
func (t *Ticker) Done() <-chan struct{} {
	return t.done
}
