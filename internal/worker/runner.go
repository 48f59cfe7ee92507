package worker

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Runner spawns detached continuations: work that proceeds after the HTTP
// response has already been sent. Tasks run on a fresh context with no
// cancellation or timeout; failures and panics are captured and logged with
// the operation name, never surfaced.
type Runner struct {
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewRunner creates a runner.
func NewRunner(logger *zap.Logger) *Runner {
	return &Runner{logger: logger}
}

// Go runs fn in the background. The request lifecycle must not influence the
// task, so fn receives a fresh background context.
func (r *Runner) Go(operation string, fn func(ctx context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error("background task panicked",
					zap.String("operation", operation),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()))
			}
		}()
		if err := fn(context.Background()); err != nil {
			r.logger.Error("background task failed",
				zap.String("operation", operation),
				zap.Error(err))
		}
	}()
}

// Drain blocks until in-flight tasks finish or the grace period elapses.
// It reports whether the drain completed cleanly.
func (r *Runner) Drain(grace time.Duration) bool {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	if grace <= 0 {
		<-done
		return true
	}
	select {
	case <-done:
		return true
	case <-time.After(grace):
		r.logger.Warn("shutdown grace elapsed with background tasks still running")
		return false
	}
}
