package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/techjobs/harvester/internal/harvest"
)

type countingRunner struct {
	runs atomic.Int64
	err  error
}

func (r *countingRunner) Run(context.Context) (harvest.RunOutcome, error) {
	r.runs.Add(1)
	if r.err != nil {
		return harvest.RunOutcome{}, r.err
	}
	return harvest.RunOutcome{RunID: "run-1"}, nil
}

func TestStartFiresImmediateRun(t *testing.T) {
	t.Parallel()

	runner := &countingRunner{}
	s := New(runner, "@every 6h", zap.NewNop())
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool { return runner.runs.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestStartRejectsBadSpec(t *testing.T) {
	t.Parallel()

	s := New(&countingRunner{}, "not a cron spec", zap.NewNop())
	require.Error(t, s.Start(context.Background()))
}

func TestInFlightSkipIsNotAnError(t *testing.T) {
	t.Parallel()

	runner := &countingRunner{err: harvest.ErrRunInFlight}
	s := New(runner, "@every 6h", zap.NewNop())
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	// The skip is logged and swallowed; the scheduler keeps ticking.
	assert.Eventually(t, func() bool { return runner.runs.Load() == 1 }, time.Second, 5*time.Millisecond)
}
