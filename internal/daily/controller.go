// Package daily runs the daily challenge: one small vocabulary exercise per
// calendar date and a streak of consecutive completed days.
package daily

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/lexis/internal/grading"
	"github.com/abhisek/lexis/internal/logging"
	"github.com/abhisek/lexis/internal/metrics"
	"github.com/abhisek/lexis/internal/store"
	"github.com/abhisek/lexis/internal/vocab"
)

// Defaults for the challenge size.
const (
	DefaultWordCount    = 5
	DefaultMaxQuestions = 10
)

// Controller owns the streak state and today's challenge. All methods are
// safe for concurrent use and run the new-day check first.
type Controller struct {
	kv           store.KV
	now          func() time.Time
	loc          *time.Location
	rng          *rand.Rand
	wordCount    int
	maxQuestions int
	log          *zap.Logger
	metrics      *metrics.Metrics

	mu sync.Mutex
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLocation sets the time zone that defines a calendar day.
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithRand sets the source used for word selection and option order.
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) { c.rng = r }
}

// WithSize sets the word count and question cap. Non-positive values keep the defaults.
func WithSize(wordCount, maxQuestions int) Option {
	return func(c *Controller) {
		if wordCount > 0 {
			c.wordCount = wordCount
		}
		if maxQuestions > 0 {
			c.maxQuestions = maxQuestions
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.log = logging.OrNop(l) }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// NewController creates a controller persisting to kv.
func NewController(kv store.KV, opts ...Option) *Controller {
	c := &Controller{
		kv:           kv,
		now:          time.Now,
		loc:          time.Local,
		wordCount:    DefaultWordCount,
		maxQuestions: DefaultMaxQuestions,
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		seed := uint64(c.now().UnixNano())
		c.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return c
}

// Today returns the current calendar date in the controller's location.
func (c *Controller) Today() Date {
	return DateOf(c.now(), c.loc)
}

// State returns the current streak state.
func (c *Controller) State(ctx context.Context) (StreakState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checkNewDay(ctx, c.Today())
}

// CheckNewDay rolls the state over to today. If the cached challenge is
// from another date the completion flag and challenge are cleared; if more
// than one day has passed since the last completion the streak resets to 0.
func (c *Controller) CheckNewDay(ctx context.Context) (StreakState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checkNewDay(ctx, c.Today())
}

// GetOrCreateTodayChallenge returns today's challenge, generating and
// persisting one from pool if none exists yet.
func (c *Controller) GetOrCreateTodayChallenge(ctx context.Context, pool []vocab.Word) (*Challenge, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	today := c.Today()
	state, err := c.checkNewDay(ctx, today)
	if err != nil {
		return nil, err
	}

	ch, err := c.loadChallenge(ctx)
	if err != nil {
		return nil, err
	}
	if ch != nil && ch.Date == today {
		return ch, nil
	}

	ex, words, err := Generate(today, pool, c.wordCount, c.maxQuestions, c.rng)
	if err != nil {
		return nil, err
	}
	ch = &Challenge{
		ID:        ChallengeID(today),
		Date:      today,
		Words:     words,
		Exercise:  ex,
		CreatedAt: c.now(),
	}
	if err := store.PutJSON(ctx, c.kv, ChallengeKey, ch); err != nil {
		return nil, fmt.Errorf("save challenge: %w", err)
	}

	state.TodayChallengeID = ch.ID
	if err := c.saveState(ctx, state); err != nil {
		return nil, err
	}

	c.log.Info("daily challenge created",
		zap.String("challenge_id", ch.ID),
		zap.Int("words", len(words)),
		zap.Int("questions", ex.QuestionCount()),
	)
	return ch, nil
}

// CompleteChallenge records today's completion. It is a no-op returning
// false if today is already completed.
func (c *Controller) CompleteChallenge(ctx context.Context, res *grading.Result) (StreakState, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	today := c.Today()
	state, err := c.checkNewDay(ctx, today)
	if err != nil {
		return StreakState{}, false, err
	}
	if state.IsTodayCompleted {
		return state, false, nil
	}

	state.Streak++
	state.LastCompletedDate = today
	state.IsTodayCompleted = true
	state.TotalCompleted++
	state.BestStreak = max(state.BestStreak, state.Streak)
	if state.TodayChallengeID == "" {
		state.TodayChallengeID = ChallengeID(today)
	}
	if res != nil {
		pct := res.Percentage
		state.LastScore = &pct
	}

	if err := c.saveState(ctx, state); err != nil {
		return StreakState{}, false, err
	}
	c.metrics.ObserveDaily(state.Streak)
	c.log.Info("daily challenge completed",
		zap.String("date", today.String()),
		zap.Int("streak", state.Streak),
	)
	return state, true, nil
}

// Reset deletes the streak and cached challenge.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.kv.Delete(ctx, StreakKey); err != nil {
		return err
	}
	if err := c.kv.Delete(ctx, ChallengeKey); err != nil {
		return err
	}
	c.metrics.SetStreak(0)
	return nil
}

func (c *Controller) checkNewDay(ctx context.Context, today Date) (StreakState, error) {
	state, err := c.loadState(ctx)
	if err != nil {
		return StreakState{}, err
	}
	ch, err := c.loadChallenge(ctx)
	if err != nil {
		return StreakState{}, err
	}

	changed := false

	stale := ch != nil && ch.Date != today
	if state.IsTodayCompleted && state.LastCompletedDate != today {
		stale = true
	}
	if stale {
		state.IsTodayCompleted = false
		state.TodayChallengeID = ""
		if err := c.kv.Delete(ctx, ChallengeKey); err != nil {
			return StreakState{}, fmt.Errorf("clear challenge: %w", err)
		}
		changed = true
	}

	if state.LastCompletedDate != "" && state.Streak > 0 {
		gap, err := state.LastCompletedDate.DaysUntil(today)
		if err != nil {
			return StreakState{}, err
		}
		if gap > 1 {
			c.log.Info("daily streak reset",
				zap.String("last_completed", state.LastCompletedDate.String()),
				zap.Int("previous_streak", state.Streak),
			)
			state.Streak = 0
			c.metrics.SetStreak(0)
			changed = true
		}
	}

	if changed {
		if err := c.saveState(ctx, state); err != nil {
			return StreakState{}, err
		}
	}
	return state, nil
}

func (c *Controller) loadState(ctx context.Context) (StreakState, error) {
	var state StreakState
	if _, err := store.GetJSON(ctx, c.kv, StreakKey, &state); err != nil {
		return StreakState{}, fmt.Errorf("load streak: %w", err)
	}
	return state, nil
}

func (c *Controller) saveState(ctx context.Context, state StreakState) error {
	if err := store.PutJSON(ctx, c.kv, StreakKey, state); err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	return nil
}

func (c *Controller) loadChallenge(ctx context.Context) (*Challenge, error) {
	var ch Challenge
	ok, err := store.GetJSON(ctx, c.kv, ChallengeKey, &ch)
	if err != nil {
		return nil, fmt.Errorf("load challenge: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &ch, nil
}
