package grading

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/lexis/internal/exercise"
	"github.com/abhisek/lexis/internal/llm"
	"github.com/abhisek/lexis/internal/metrics"
	"github.com/abhisek/lexis/internal/session"
	"github.com/abhisek/lexis/internal/store"
)

// Grader produces a Result for a set of answers.
type Grader interface {
	Grade(ctx context.Context, ex *exercise.Exercise, answers map[string]exercise.AnswerValue) (*Result, error)
}

// Service runs the grading pipeline: remote first when configured, the
// offline grader on any failure. Grade never fails.
type Service struct {
	remote  Grader
	timeout time.Duration
	history store.HistoryRepo
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithRemote enables remote grading bounded by timeout (0 = no bound
// beyond the caller's context).
func WithRemote(g Grader, timeout time.Duration) Option {
	return func(s *Service) {
		s.remote = g
		s.timeout = timeout
	}
}

// WithHistory records graded attempts.
func WithHistory(h store.HistoryRepo) Option {
	return func(s *Service) { s.history = h }
}

// WithLogger sets the logger for grading events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics records graded attempts and remote failures.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the clock used to stamp results.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a grading service. Without options it grades offline only.
func NewService(opts ...Option) *Service {
	s := &Service{log: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Grade scores sub against ex. Remote failures are logged and counted,
// never returned.
func (s *Service) Grade(ctx context.Context, ex *exercise.Exercise, sub *session.Submission) *Result {
	var res *Result
	if s.remote != nil {
		var err error
		res, err = s.gradeRemote(ctx, ex, sub.Answers)
		if err != nil {
			reason := failureReason(err)
			s.log.Warn("remote grading failed, using offline grader",
				zap.String("exercise_id", ex.ID),
				zap.String("submission_id", sub.ID),
				zap.String("reason", reason),
				zap.Error(err),
			)
			s.metrics.ObserveRemoteFailure(reason)
			res = nil
		}
	}
	if res == nil {
		res = Offline(ex, sub.Answers)
	}

	res.ExerciseID = ex.ID
	res.SubmissionID = sub.ID
	res.GradedAt = s.now()
	res.finalize(ex)

	s.metrics.ObserveGrading(string(res.Source), res.Percentage)
	s.log.Info("attempt graded",
		zap.String("exercise_id", ex.ID),
		zap.String("submission_id", sub.ID),
		zap.String("source", string(res.Source)),
		zap.Int("score", res.TotalScore),
		zap.Int("max_score", res.MaxScore),
		zap.Float64("percentage", res.Percentage),
		zap.String("band", res.Band),
	)
	return res
}

func failureReason(err error) string {
	if errors.Is(err, ErrMalformedPayload) {
		return "malformed"
	}
	return llm.Reason(err)
}

func (s *Service) gradeRemote(ctx context.Context, ex *exercise.Exercise, answers map[string]exercise.AnswerValue) (*Result, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.remote.Grade(ctx, ex, answers)
}

// Record appends a graded attempt to history. Without a history repo it
// is a no-op.
func (s *Service) Record(ctx context.Context, ex *exercise.Exercise, res *Result, daily bool) error {
	if s.history == nil {
		return nil
	}
	body, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return s.history.Append(ctx, store.HistoryEntry{
		AttemptID:  res.SubmissionID,
		ExerciseID: ex.ID,
		Title:      ex.Title,
		Percentage: res.Percentage,
		Band:       res.Band,
		Source:     string(res.Source),
		Daily:      daily,
		Result:     string(body),
	})
}
