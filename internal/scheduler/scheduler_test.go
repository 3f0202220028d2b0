package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexis/internal/daily"
)

type checkerFunc func(ctx context.Context) (daily.StreakState, error)

func (f checkerFunc) CheckNewDay(ctx context.Context) (daily.StreakState, error) { return f(ctx) }

func TestScheduleRollover(t *testing.T) {
	loc := time.FixedZone("test", 2*3600)
	s := New(loc, nil)

	calls := make(chan struct{}, 4)
	require.NoError(t, s.ScheduleRollover(checkerFunc(func(ctx context.Context) (daily.StreakState, error) {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("job context has no deadline")
		}
		calls <- struct{}{}
		return daily.StreakState{Streak: 2}, nil
	})))

	s.Start()
	defer s.Stop()

	next, ok := s.NextRun(RolloverTag)
	require.True(t, ok)
	local := next.In(loc)
	assert.Equal(t, 0, local.Hour())
	assert.Equal(t, 0, local.Minute())

	require.NoError(t, s.RunNow(RolloverTag))
	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatal("rollover job did not run")
	}
}

func TestEvery(t *testing.T) {
	s := New(time.UTC, nil)
	var n atomic.Int32
	require.NoError(t, s.Every(time.Hour, "sweep", func(context.Context) error {
		n.Add(1)
		return nil
	}))
	s.Start()
	defer s.Stop()

	require.NoError(t, s.RunNow("sweep"))
	assert.Eventually(t, func() bool { return n.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	_, ok := s.NextRun("missing")
	assert.False(t, ok)
}
