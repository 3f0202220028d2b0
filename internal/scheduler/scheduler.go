// Package scheduler runs the background jobs: the midnight streak rollover
// and periodic housekeeping.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/abhisek/lexis/internal/daily"
	"github.com/abhisek/lexis/internal/logging"
)

// RolloverTag names the day-rollover job.
const RolloverTag = "daily-rollover"

const jobTimeout = 30 * time.Second

// DayChecker is implemented by *daily.Controller.
type DayChecker interface {
	CheckNewDay(ctx context.Context) (daily.StreakState, error)
}

// Scheduler wraps a gocron scheduler running in loc.
type Scheduler struct {
	scheduler *gocron.Scheduler
	log       *zap.Logger
}

// New creates a scheduler whose calendar is loc.
func New(loc *time.Location, log *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(loc),
		log:       logging.OrNop(log),
	}
}

// ScheduleRollover runs checker.CheckNewDay at local midnight.
func (s *Scheduler) ScheduleRollover(checker DayChecker) error {
	_, err := s.scheduler.Every(1).Day().At("00:00").Tag(RolloverTag).SingletonMode().
		Do(s.wrap(RolloverTag, func(ctx context.Context) error {
			st, err := checker.CheckNewDay(ctx)
			if err != nil {
				return err
			}
			s.log.Info("day rollover", zap.Int("streak", st.Streak))
			return nil
		}))
	if err != nil {
		return fmt.Errorf("schedule %s: %w", RolloverTag, err)
	}
	return nil
}

// Every runs fn at a fixed interval under tag.
func (s *Scheduler) Every(interval time.Duration, tag string, fn func(ctx context.Context) error) error {
	_, err := s.scheduler.Every(interval).Tag(tag).SingletonMode().Do(s.wrap(tag, fn))
	if err != nil {
		return fmt.Errorf("schedule %s: %w", tag, err)
	}
	return nil
}

// RunNow triggers the jobs tagged tag immediately.
func (s *Scheduler) RunNow(tag string) error {
	return s.scheduler.RunByTag(tag)
}

// NextRun reports when the job tagged tag fires next.
func (s *Scheduler) NextRun(tag string) (time.Time, bool) {
	jobs, err := s.scheduler.FindJobsByTag(tag)
	if err != nil || len(jobs) == 0 {
		return time.Time{}, false
	}
	return jobs[0].NextRun(), true
}

// Start runs the scheduler without blocking.
func (s *Scheduler) Start() {
	s.scheduler.StartAsync()
}

// Stop terminates all jobs.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) wrap(tag string, fn func(ctx context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			s.log.Error("scheduled job failed", zap.String("job", tag), zap.Error(err))
		}
	}
}
