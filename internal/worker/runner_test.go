package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestRunner() (*Runner, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewRunner(zap.New(core)), logs
}

func TestGoRunsTaskWithBackgroundContext(t *testing.T) {
	r, _ := newTestRunner()

	var sawDeadline atomic.Bool
	var ran atomic.Bool
	r.Go("probe", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		sawDeadline.Store(ok)
		ran.Store(true)
		return nil
	})

	require.True(t, r.Drain(2*time.Second))
	assert.True(t, ran.Load())
	assert.False(t, sawDeadline.Load(), "detached task must not inherit a deadline")
}

func TestGoLogsTaskError(t *testing.T) {
	r, logs := newTestRunner()

	r.Go("failing", func(ctx context.Context) error {
		return errors.New("boom")
	})

	require.True(t, r.Drain(2*time.Second))
	errorLogs := logs.FilterLevelExact(zapcore.ErrorLevel)
	require.Equal(t, 1, errorLogs.Len())
	assert.Equal(t, "failing", errorLogs.All()[0].ContextMap()["operation"])
}

func TestGoRecoversPanic(t *testing.T) {
	r, logs := newTestRunner()

	r.Go("panicking", func(ctx context.Context) error {
		panic("unexpected state")
	})

	require.True(t, r.Drain(2*time.Second))
	errorLogs := logs.FilterLevelExact(zapcore.ErrorLevel)
	require.Equal(t, 1, errorLogs.Len())
	assert.Equal(t, "background task panicked", errorLogs.All()[0].Message)
}

func TestDrainTimesOutOnStuckTask(t *testing.T) {
	r, _ := newTestRunner()

	release := make(chan struct{})
	r.Go("stuck", func(ctx context.Context) error {
		<-release
		return nil
	})

	assert.False(t, r.Drain(50*time.Millisecond))
	close(release)
	assert.True(t, r.Drain(2*time.Second))
}
