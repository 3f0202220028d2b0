package daily

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexis/internal/grading"
	"github.com/abhisek/lexis/internal/metrics"
	"github.com/abhisek/lexis/internal/store"
	"github.com/abhisek/lexis/internal/vocab"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func at(date string) *clock {
	t, err := time.Parse("2006-01-02 15:04", date+" 10:00")
	if err != nil {
		panic(err)
	}
	return &clock{t: t}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Set(date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = at(date).t
}

func newController(t *testing.T, kv store.KV, clk *clock, opts ...Option) *Controller {
	t.Helper()
	base := []Option{
		WithClock(clk.Now),
		WithLocation(time.UTC),
		WithRand(rand.New(rand.NewPCG(7, 11))),
	}
	return NewController(kv, append(base, opts...)...)
}

func seedState(t *testing.T, kv store.KV, st StreakState) {
	t.Helper()
	require.NoError(t, store.PutJSON(context.Background(), kv, StreakKey, st))
}

func TestCompleteChallenge_ConsecutiveDay(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	seedState(t, kv, StreakState{
		Streak:            4,
		LastCompletedDate: "2024-01-01",
		IsTodayCompleted:  true,
		BestStreak:        4,
		TotalCompleted:    9,
	})
	c := newController(t, kv, at("2024-01-02"))

	st, err := c.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, st.Streak, "one-day gap keeps the streak")
	assert.False(t, st.IsTodayCompleted, "new day clears the completion flag")

	st, ok, err := c.CompleteChallenge(ctx, &grading.Result{Percentage: 80})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 5, st.Streak)
	assert.Equal(t, Date("2024-01-02"), st.LastCompletedDate)
	assert.True(t, st.IsTodayCompleted)
	assert.Equal(t, 5, st.BestStreak)
	assert.Equal(t, 10, st.TotalCompleted)
	require.NotNil(t, st.LastScore)
	assert.Equal(t, 80.0, *st.LastScore)
}

func TestCompleteChallenge_GapResetsStreak(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	seedState(t, kv, StreakState{
		Streak:            4,
		LastCompletedDate: "2024-01-01",
		IsTodayCompleted:  true,
		BestStreak:        6,
	})
	c := newController(t, kv, at("2024-01-05"))

	st, err := c.CheckNewDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Streak)

	st, ok, err := c.CompleteChallenge(ctx, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, st.Streak)
	assert.Equal(t, 6, st.BestStreak, "best streak survives a reset")
	assert.Nil(t, st.LastScore)
}

func TestCompleteChallenge_OncePerDay(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	c := newController(t, kv, at("2024-03-10"), WithMetrics(m))

	first, ok, err := c.CompleteChallenge(ctx, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, first.Streak)

	second, ok, err := c.CompleteChallenge(ctx, nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, first, second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DailyCompletions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Streak))
}

func TestCompleteChallenge_Concurrent(t *testing.T) {
	ctx := context.Background()
	c := newController(t, store.NewMemoryKV(), at("2024-03-10"))

	var wg sync.WaitGroup
	var mu sync.Mutex
	completed := 0
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := c.CompleteChallenge(ctx, nil)
			if err != nil {
				t.Error(err)
				return
			}
			if ok {
				mu.Lock()
				completed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, completed)

	st, err := c.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Streak)
}

func TestGetOrCreateTodayChallenge(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	clk := at("2024-01-02")
	c := newController(t, kv, clk)
	pool := vocab.Builtin()

	first, err := c.GetOrCreateTodayChallenge(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, "daily-2024-01-02", first.ID)
	assert.Equal(t, first.ID, first.Exercise.ID)
	assert.Len(t, first.Words, DefaultWordCount)
	assert.Equal(t, DefaultWordCount, first.Exercise.QuestionCount())

	again, err := c.GetOrCreateTodayChallenge(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, first.Words, again.Words)
	assert.Equal(t, first.Exercise, again.Exercise)

	st, err := c.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, st.TodayChallengeID)

	// A fresh controller over the same store sees the persisted challenge.
	other := newController(t, kv, clk, WithRand(rand.New(rand.NewPCG(99, 1))))
	persisted, err := other.GetOrCreateTodayChallenge(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, first.Words, persisted.Words)

	clk.Set("2024-01-03")
	next, err := c.GetOrCreateTodayChallenge(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, "daily-2024-01-03", next.ID)
}

func TestCheckNewDay_ClearsStaleChallenge(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	clk := at("2024-01-02")
	c := newController(t, kv, clk)

	_, err := c.GetOrCreateTodayChallenge(ctx, vocab.Builtin())
	require.NoError(t, err)
	_, _, err = c.CompleteChallenge(ctx, nil)
	require.NoError(t, err)

	clk.Set("2024-01-03")
	st, err := c.CheckNewDay(ctx)
	require.NoError(t, err)
	assert.False(t, st.IsTodayCompleted)
	assert.Empty(t, st.TodayChallengeID)
	assert.Equal(t, 1, st.Streak)

	_, ok, err := kv.Get(ctx, ChallengeKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	c := newController(t, kv, at("2024-01-02"))

	_, err := c.GetOrCreateTodayChallenge(ctx, vocab.Builtin())
	require.NoError(t, err)
	_, _, err = c.CompleteChallenge(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, c.Reset(ctx))
	assert.Equal(t, 0, kv.Keys())

	st, err := c.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, StreakState{}, st)
}

func TestMotivation(t *testing.T) {
	tests := []struct {
		streak int
		want   string
	}{
		{0, Motivation(0)},
		{1, Motivation(2)},
		{3, Motivation(6)},
		{7, Motivation(29)},
		{30, Motivation(365)},
	}
	for _, tt := range tests {
		if got := Motivation(tt.streak); got != tt.want {
			t.Errorf("Motivation(%d) = %q, want %q", tt.streak, got, tt.want)
		}
	}

	seen := map[string]bool{}
	for _, s := range []int{0, 1, 3, 7, 30} {
		seen[Motivation(s)] = true
	}
	if len(seen) != 5 {
		t.Errorf("expected 5 distinct motivation tiers, got %d", len(seen))
	}
}

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		from, to Date
		want     int
	}{
		{"2024-01-01", "2024-01-01", 0},
		{"2024-01-01", "2024-01-02", 1},
		{"2024-01-01", "2024-01-05", 4},
		{"2024-02-28", "2024-03-01", 2},
		{"2023-12-31", "2024-01-01", 1},
	}
	for _, tt := range tests {
		got, err := tt.from.DaysUntil(tt.to)
		if err != nil {
			t.Fatalf("DaysUntil(%s, %s): %v", tt.from, tt.to, err)
		}
		if got != tt.want {
			t.Errorf("DaysUntil(%s, %s) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}

	if _, err := Date("yesterday").DaysUntil("2024-01-01"); err == nil {
		t.Error("expected parse error")
	}
}

func TestDateOf(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	ts := time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC)
	assert.Equal(t, Date("2024-01-02"), DateOf(ts, time.UTC))
	assert.Equal(t, Date("2024-01-01"), DateOf(ts, ny))
}
