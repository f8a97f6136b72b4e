package tidal

import (
	"context"
	"sync"

	"github.com/tidal-grabber/tidal-grabber/internal/logger"
)

// WorkUnit is a deferred piece of pipeline work. The boolean result reports
// whether the unit actually did work (false means it was skipped).
type WorkUnit func(ctx context.Context) (bool, error)

// executor drains a channel of work units, running each unit in its own
// goroutine with the number in flight bounded by a semaphore. A unit's
// failure never cancels its siblings; the per-unit outcome is delivered
// to the onResult callback instead.
type executor struct {
	// name identifies the pipeline stage in logs.
	name string
	// concurrency is the maximum number of units in flight.
	concurrency int
	// onResult receives each unit's outcome, nil to discard outcomes.
	onResult func(didWork bool, err error)
}

// newExecutor creates an executor for one pipeline stage.
func newExecutor(name string, concurrency int, onResult func(didWork bool, err error)) *executor {
	if concurrency < 1 {
		concurrency = 1
	}

	return &executor{
		name:        name,
		concurrency: concurrency,
		onResult:    onResult,
	}
}

// run consumes units until the channel is closed and every in-flight unit
// has finished. Units received after the context is canceled are still
// drained so the channel's producers never block forever, but they complete
// immediately with the context error.
func (e *executor) run(ctx context.Context, units <-chan WorkUnit) {
	// Create a semaphore channel to limit concurrent units.
	semaphore := make(chan struct{}, e.concurrency)

	var waitGroup sync.WaitGroup

	for unit := range units {
		// Acquire the slot before receiving the next unit. Admission is what
		// keeps the bounded channel full and producers blocked; spawning
		// first would drain the channel as fast as producers can send.
		semaphore <- struct{}{}

		waitGroup.Add(1)

		go func(unit WorkUnit) {
			defer waitGroup.Done()

			defer func() {
				// Release semaphore slot when done.
				<-semaphore
			}()

			didWork, err := e.runUnit(ctx, unit)
			if e.onResult != nil {
				e.onResult(didWork, err)
			}
		}(unit)
	}

	// Wait for all in-flight units to complete.
	waitGroup.Wait()

	logger.Debugf(ctx, "%s stage drained", e.name)
}

func (e *executor) runUnit(ctx context.Context, unit WorkUnit) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	return unit(ctx)
}

// sendUnit offers a unit to a pipeline channel, blocking until the channel
// accepts it or the context is canceled. Offering to a closed channel is a
// pipeline lifecycle bug; it is surfaced as ErrChannelClosed, never a panic.
func sendUnit(ctx context.Context, units chan<- WorkUnit, unit WorkUnit) (err error) {
	defer func() {
		if recover() != nil {
			err = ErrChannelClosed
		}
	}()

	select {
	case units <- unit:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
