package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTicksUntilCanceled(t *testing.T) {
	var runs atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		Name:     "count",
		Interval: 5 * time.Millisecond,
		Task: func(context.Context) error {
			if runs.Add(1) == 3 {
				cancel()
			}
			return nil
		},
	}
	err := s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, runs.Load(), int32(3))
}

func TestRunLogsFailuresAndContinues(t *testing.T) {
	log, hook := test.NewNullLogger()
	var runs atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		Name:     "refresh",
		Interval: 5 * time.Millisecond,
		Log:      log,
		Task: func(context.Context) error {
			if runs.Add(1) == 2 {
				cancel()
				return nil
			}
			return errors.New("backend down")
		},
	}
	require.ErrorIs(t, s.Run(ctx), context.Canceled)
	require.NotEmpty(t, hook.AllEntries())
	entry := hook.AllEntries()[0]
	assert.Equal(t, "scheduled run failed", entry.Message)
	assert.Equal(t, "refresh", entry.Data["task"])
}
