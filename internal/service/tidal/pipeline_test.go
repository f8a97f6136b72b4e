package tidal

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExecutor_BoundedConcurrency verifies that the number of units in flight
// never exceeds the configured concurrency.
func TestExecutor_BoundedConcurrency(t *testing.T) {
	t.Parallel()

	const (
		concurrency = 3
		unitCount   = 20
	)

	var (
		inFlight atomic.Int64
		peak     atomic.Int64
	)

	exec := newExecutor("test", concurrency, nil)
	units := make(chan WorkUnit, unitCount)

	for range unitCount {
		units <- func(_ context.Context) (bool, error) {
			current := inFlight.Add(1)
			defer inFlight.Add(-1)

			// Record the highest number of concurrent units observed.
			for {
				observed := peak.Load()
				if current <= observed || peak.CompareAndSwap(observed, current) {
					break
				}
			}

			time.Sleep(5 * time.Millisecond)

			return true, nil
		}
	}

	close(units)
	exec.run(context.Background(), units)

	assert.LessOrEqual(t, peak.Load(), int64(concurrency))
	assert.Positive(t, peak.Load())
}

// TestExecutor_DeliversResults verifies that every unit's outcome reaches
// the result callback exactly once.
func TestExecutor_DeliversResults(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	var (
		mutex     sync.Mutex
		succeeded int
		skipped   int
		failed    int
	)

	exec := newExecutor("test", 2, func(didWork bool, err error) {
		mutex.Lock()
		defer mutex.Unlock()

		switch {
		case err != nil:
			failed++
		case didWork:
			succeeded++
		default:
			skipped++
		}
	})

	units := make(chan WorkUnit, 3)
	units <- func(_ context.Context) (bool, error) { return true, nil }
	units <- func(_ context.Context) (bool, error) { return false, nil }
	units <- func(_ context.Context) (bool, error) { return false, errBoom }
	close(units)

	exec.run(context.Background(), units)

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 1, failed)
}

// TestExecutor_FailureNeverCancelsSiblings verifies that a failing unit
// does not prevent the remaining units from running.
func TestExecutor_FailureNeverCancelsSiblings(t *testing.T) {
	t.Parallel()

	var ran atomic.Int64

	exec := newExecutor("test", 1, nil)
	units := make(chan WorkUnit, 3)

	units <- func(_ context.Context) (bool, error) { return false, errors.New("first fails") }
	units <- func(_ context.Context) (bool, error) { ran.Add(1); return true, nil }
	units <- func(_ context.Context) (bool, error) { ran.Add(1); return true, nil }
	close(units)

	exec.run(context.Background(), units)

	assert.Equal(t, int64(2), ran.Load())
}

// TestExecutor_CanceledContextDrainsChannel verifies that units received
// after cancellation complete immediately with the context error instead
// of blocking the producer forever.
func TestExecutor_CanceledContextDrainsChannel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var failures atomic.Int64

	exec := newExecutor("test", 2, func(_ bool, err error) {
		if errors.Is(err, context.Canceled) {
			failures.Add(1)
		}
	})

	units := make(chan WorkUnit, 5)
	for range 5 {
		units <- func(_ context.Context) (bool, error) {
			t.Error("unit body must not run after cancellation")

			return true, nil
		}
	}

	close(units)
	exec.run(ctx, units)

	assert.Equal(t, int64(5), failures.Load())
}

// TestNewExecutor_ClampsConcurrency verifies the minimum concurrency of one.
func TestNewExecutor_ClampsConcurrency(t *testing.T) {
	t.Parallel()

	exec := newExecutor("test", 0, nil)
	assert.Equal(t, 1, exec.concurrency)

	exec = newExecutor("test", -5, nil)
	assert.Equal(t, 1, exec.concurrency)
}

// TestSendUnit tests unit delivery to the pipeline channel.
func TestSendUnit(t *testing.T) {
	t.Parallel()

	t.Run("delivers to open channel", func(t *testing.T) {
		t.Parallel()

		units := make(chan WorkUnit, 1)
		unit := func(_ context.Context) (bool, error) { return true, nil }

		err := sendUnit(context.Background(), units, unit)
		require.NoError(t, err)
		assert.Len(t, units, 1)
	})

	t.Run("closed channel yields error instead of panic", func(t *testing.T) {
		t.Parallel()

		units := make(chan WorkUnit)
		close(units)

		err := sendUnit(context.Background(), units, func(_ context.Context) (bool, error) {
			return true, nil
		})
		require.ErrorIs(t, err, ErrChannelClosed)
	})

	t.Run("canceled context unblocks a full channel", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		units := make(chan WorkUnit, 1)
		units <- func(_ context.Context) (bool, error) { return true, nil }

		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()

		err := sendUnit(ctx, units, func(_ context.Context) (bool, error) {
			return true, nil
		})
		require.ErrorIs(t, err, context.Canceled)
	})
}

// TestExecutor_Backpressure verifies that a busy stage stalls its producer:
// the executor must not admit units beyond its concurrency, so the bounded
// channel fills up and blocks further sends.
func TestExecutor_Backpressure(t *testing.T) {
	t.Parallel()

	const (
		concurrency = 1
		capacity    = 2
		produced    = 20
	)

	gate := make(chan struct{})
	exec := newExecutor("test", concurrency, nil)
	units := make(chan WorkUnit, capacity)

	drained := make(chan struct{})

	go func() {
		exec.run(context.Background(), units)
		close(drained)
	}()

	var sent atomic.Int64

	producerDone := make(chan struct{})

	go func() {
		defer close(producerDone)

		for range produced {
			err := sendUnit(context.Background(), units, func(_ context.Context) (bool, error) {
				<-gate

				return true, nil
			})
			if err != nil {
				return
			}

			sent.Add(1)
		}

		close(units)
	}()

	time.Sleep(50 * time.Millisecond)

	// With the only worker slot occupied, the stage holds one running unit
	// plus one waiting for the slot, and the channel buffers up to its
	// capacity; the producer must stall there instead of draining freely.
	assert.LessOrEqual(t, sent.Load(), int64(concurrency+capacity+1))

	close(gate)

	select {
	case <-producerDone:
	case <-time.After(5 * time.Second):
		t.Fatal("producer did not finish after the stage unblocked")
	}

	select {
	case <-drained:
	case <-time.After(5 * time.Second):
		t.Fatal("executor did not drain after the stage unblocked")
	}

	assert.Equal(t, int64(produced), sent.Load())
}
