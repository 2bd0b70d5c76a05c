package countdown

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualTicks is a TickSource the test drives by hand.
type manualTicks struct {
	ch       chan time.Time
	released atomic.Bool
}

func newManualTicks() *manualTicks {
	return &manualTicks{ch: make(chan time.Time)}
}

func (m *manualTicks) source(time.Duration) (<-chan time.Time, func()) {
	return m.ch, func() { m.released.Store(true) }
}

func (m *manualTicks) tick(t *testing.T) {
	t.Helper()
	select {
	case m.ch <- time.Now():
	case <-time.After(time.Second):
		t.Fatal("ticker goroutine did not accept tick")
	}
}

func receive(t *testing.T, tk *Ticker) Value {
	t.Helper()
	select {
	case v, ok := <-tk.Updates():
		require.True(t, ok, "updates closed unexpectedly")
		return v
	case <-time.After(time.Second):
		t.Fatal("no update received")
	}
	return Value{}
}

func waitDone(t *testing.T, tk *Ticker) {
	t.Helper()
	select {
	case <-tk.Done():
	case <-time.After(time.Second):
		t.Fatal("ticker did not stop")
	}
}

func TestTicker_DecrementsOncePerTick(t *testing.T) {
	src := newManualTicks()
	tk := NewTicker(Initial, time.Second, WithTickSource(src.source))
	require.NoError(t, tk.Start(context.Background()))
	defer tk.Stop()

	for i := 1; i <= 25; i++ {
		src.tick(t)
		v := receive(t, tk)
		assert.Equal(t, Initial.TotalSeconds()-int64(i), v.TotalSeconds())
	}
	assert.Equal(t, Value{Days: 3, Hours: 22, Mins: 13, Secs: 59}, tk.Snapshot())
}

func TestTicker_HaltsAtZero(t *testing.T) {
	src := newManualTicks()
	tk := NewTicker(Value{Secs: 2}, time.Second, WithTickSource(src.source))
	require.NoError(t, tk.Start(context.Background()))

	src.tick(t)
	assert.Equal(t, Value{Secs: 1}, receive(t, tk))
	src.tick(t)
	assert.Equal(t, Value{}, receive(t, tk))

	// The next tick needs a borrow from zero days: the ticker cancels itself.
	src.tick(t)
	waitDone(t, tk)

	assert.True(t, tk.Halted())
	assert.True(t, tk.Snapshot().IsZero())
	assert.True(t, src.released.Load(), "tick source must be released")

	_, ok := <-tk.Updates()
	assert.False(t, ok, "updates must be closed after halting")
}

func TestTicker_StopReleasesResources(t *testing.T) {
	src := newManualTicks()
	tk := NewTicker(Initial, time.Second, WithTickSource(src.source))
	require.NoError(t, tk.Start(context.Background()))

	tk.Stop()
	tk.Stop()
	waitDone(t, tk)

	assert.False(t, tk.Halted())
	assert.True(t, src.released.Load())
	assert.Equal(t, Initial, tk.Snapshot())
	assert.ErrorIs(t, tk.Start(context.Background()), ErrStopped)
}

func TestTicker_ContextCancelStops(t *testing.T) {
	src := newManualTicks()
	tk := NewTicker(Initial, time.Second, WithTickSource(src.source))
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, tk.Start(ctx))

	cancel()
	waitDone(t, tk)
	assert.True(t, src.released.Load())
}

func TestTicker_StartTwice(t *testing.T) {
	src := newManualTicks()
	tk := NewTicker(Initial, time.Second, WithTickSource(src.source))
	require.NoError(t, tk.Start(context.Background()))
	defer tk.Stop()

	assert.ErrorIs(t, tk.Start(context.Background()), ErrAlreadyStarted)
}

func TestTicker_StopBeforeStart(t *testing.T) {
	tk := NewTicker(Initial, time.Second)
	tk.Stop()
	waitDone(t, tk)

	_, ok := <-tk.Updates()
	assert.False(t, ok)
}

func TestTicker_SlowConsumerGetsLatestValue(t *testing.T) {
	src := newManualTicks()
	tk := NewTicker(Value{Mins: 1}, time.Second, WithTickSource(src.source))
	require.NoError(t, tk.Start(context.Background()))
	defer tk.Stop()

	for i := 0; i < 5; i++ {
		src.tick(t)
	}
	// Wait for the fifth tick to be applied before reading.
	require.Eventually(t, func() bool {
		return tk.Snapshot() == Value{Secs: 55}
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, Value{Secs: 55}, receive(t, tk))
}

func TestTicker_SystemTicks(t *testing.T) {
	tk := NewTicker(Value{Secs: 3}, 10*time.Millisecond)
	require.NoError(t, tk.Start(context.Background()))

	waitDone(t, tk)
	assert.True(t, tk.Halted())
	assert.True(t, tk.Snapshot().IsZero())
}
