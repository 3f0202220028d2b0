package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/lexis/internal/exercise"
	"github.com/abhisek/lexis/internal/metrics"
	"github.com/abhisek/lexis/internal/store"
)

// Session owns the lifecycle of one exercise attempt at a time:
// Empty → Loaded → (TimerArmed) → Submitted. A new Load starts a fresh
// attempt and discards the previous one.
//
// The timer goroutine and the caller may race to submit; the submitted
// latch is checked and set under the session mutex, so at most one
// Submission is ever produced per attempt.
type Session struct {
	mu sync.Mutex

	phase         Phase
	exercise      *exercise.Exercise
	types         map[string]exercise.QuestionType
	answers       *AnswerStore
	hints         map[string]bool
	config        Config
	startedAt     time.Time
	elapsedBefore int
	submission    *Submission
	timerGen      uint64

	timer     *Timer
	listeners []Listener

	now       func() time.Time
	kv        store.KV
	log       *zap.Logger
	metrics   *metrics.Metrics
	newTicker TickerFunc
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithStore persists an AttemptSnapshot after every mutation so the
// attempt can be resumed.
func WithStore(kv store.KV) Option {
	return func(s *Session) { s.kv = kv }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics records loads and submissions.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// WithTicker replaces the one-second ticker driving the countdown.
func WithTicker(f TickerFunc) Option {
	return func(s *Session) { s.newTicker = f }
}

// New creates an empty session.
func New(opts ...Option) *Session {
	s := &Session{
		answers: NewAnswerStore(),
		hints:   make(map[string]bool),
		now:     time.Now,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.timer = NewTimer(s.onTimer, s.newTicker)
	return s
}

// Subscribe registers a listener for every subsequent event.
func (s *Session) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Load starts a fresh attempt on ex. A structurally invalid exercise is
// rejected with exercise.ErrInvalidExercise and the session is unchanged.
func (s *Session) Load(ex *exercise.Exercise, cfg Config) error {
	prepared, err := exercise.Prepare(ex)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.reset(prepared, cfg)
	s.arm(cfg.TimeLimitSeconds)
	s.persistLocked()
	events := []Event{s.progressEventLocked()}
	s.mu.Unlock()

	s.metrics.ObserveLoad()
	s.log.Info("exercise loaded",
		zap.String("exercise_id", prepared.ID),
		zap.Int("questions", prepared.QuestionCount()),
		zap.Int("time_limit_seconds", cfg.TimeLimitSeconds),
	)
	s.dispatch(events)
	return nil
}

// SetAnswer upserts the answer for questionID and returns the new progress.
func (s *Session) SetAnswer(questionID string, v exercise.AnswerValue) (Progress, error) {
	s.mu.Lock()
	if err := s.checkMutableLocked(questionID); err != nil {
		s.mu.Unlock()
		return Progress{}, err
	}
	if v.Kind == "" {
		v.Kind = exercise.KindText
	}
	qt := s.types[questionID]
	if !qt.AcceptsKind(v.Kind) {
		s.mu.Unlock()
		return Progress{}, &AnswerShapeError{QuestionID: questionID, Type: qt, Kind: v.Kind}
	}

	s.answers.Set(questionID, v)
	s.persistLocked()
	ev := s.progressEventLocked()
	s.mu.Unlock()

	s.dispatch([]Event{ev})
	return ev.Progress, nil
}

// RevealHint marks the hint for questionID as used and returns the hints.
func (s *Session) RevealHint(questionID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkMutableLocked(questionID); err != nil {
		return nil, err
	}
	loc, _ := s.exercise.Lookup(questionID)
	s.hints[questionID] = true
	s.persistLocked()
	hints := make([]string, len(loc.Question.Hints))
	copy(hints, loc.Question.Hints)
	return hints, nil
}

// Submit ends the attempt on the learner's behalf. It returns (nil, nil)
// if the attempt was already submitted. Unless force is set, an attempt
// with unanswered questions is not submitted and an *IncompleteError
// carrying the counts is returned so the caller can ask for confirmation.
func (s *Session) Submit(force bool) (*Submission, error) {
	return s.submit(force, TriggerLearner)
}

func (s *Session) submit(force bool, trigger Trigger) (*Submission, error) {
	s.mu.Lock()
	switch s.phase {
	case PhaseEmpty:
		s.mu.Unlock()
		return nil, ErrNotLoaded
	case PhaseSubmitted:
		s.mu.Unlock()
		return nil, nil
	}

	p := s.progressLocked()
	if !force && !p.Complete() {
		s.mu.Unlock()
		return nil, &IncompleteError{Answered: p.Answered, Total: p.Total}
	}

	s.timer.Stop()
	sub := s.newSubmissionLocked(s.now(), trigger)
	s.submission = sub
	s.phase = PhaseSubmitted
	s.persistLocked()
	s.mu.Unlock()

	s.metrics.ObserveSubmission(string(trigger))
	s.log.Info("attempt submitted",
		zap.String("exercise_id", sub.ExerciseID),
		zap.String("submission_id", sub.ID),
		zap.String("trigger", string(trigger)),
		zap.Int("answered", p.Answered),
		zap.Int("total", p.Total),
		zap.Int("elapsed_seconds", sub.ElapsedSeconds),
	)
	s.dispatch([]Event{{
		Kind:       EventSubmitted,
		ExerciseID: sub.ExerciseID,
		Progress:   p,
		Submission: sub,
	}})
	return sub, nil
}

// onTimer translates countdown events into session events. Events from a
// countdown that no longer belongs to the current attempt are dropped.
func (s *Session) onTimer(ev TimerEvent) {
	s.mu.Lock()
	if ev.Gen != s.timerGen || s.phase != PhaseTimerArmed {
		s.mu.Unlock()
		return
	}
	if ev.Kind == TimerTick {
		s.persistLocked()
	}
	base := Event{ExerciseID: s.exercise.ID, Progress: s.progressLocked(), Remaining: ev.Remaining}
	s.mu.Unlock()

	switch ev.Kind {
	case TimerTick:
		base.Kind = EventTimerTick
	case TimerWarning:
		base.Kind = EventTimerWarning
	case TimerDanger:
		base.Kind = EventTimerDanger
	case TimerExpired:
		s.log.Info("time limit reached", zap.String("exercise_id", base.ExerciseID))
		_, _ = s.submit(true, TriggerTimer)
		return
	}
	s.dispatch([]Event{base})
}

// Close stops the countdown of an abandoned attempt. The attempt's state
// is kept, but the timer will no longer submit it.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer.running() {
		s.log.Debug("countdown stopped", zap.Int("remaining_seconds", s.timer.Remaining()))
	}
	s.timer.Stop()
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Progress returns the answered/total counts.
func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progressLocked()
}

// Exercise returns the loaded exercise, or nil. Callers must not modify it.
func (s *Session) Exercise() *exercise.Exercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exercise
}

// Submission returns the attempt's submission, or nil before submit.
func (s *Session) Submission() *Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submission
}

// Remaining returns the seconds left on the countdown, 0 when untimed.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remainingLocked()
}

// Answer returns the current answer for a question.
func (s *Session) Answer(questionID string) (exercise.AnswerValue, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Get(questionID)
}

func (s *Session) reset(ex *exercise.Exercise, cfg Config) {
	s.timer.Stop()
	s.exercise = ex
	s.types = make(map[string]exercise.QuestionType, ex.QuestionCount())
	for _, loc := range ex.Flatten() {
		s.types[loc.Question.ID] = loc.Question.Type
	}
	s.answers.Reset()
	s.hints = make(map[string]bool)
	s.config = cfg
	s.startedAt = s.now()
	s.elapsedBefore = 0
	s.submission = nil
	s.timerGen = 0
	s.phase = PhaseLoaded
}

func (s *Session) newSubmissionLocked(now time.Time, trigger Trigger) *Submission {
	return &Submission{
		ID:             uuid.NewString(),
		ExerciseID:     s.exercise.ID,
		Answers:        s.answers.Snapshot(),
		HintsUsed:      s.hintListLocked(),
		ElapsedSeconds: s.elapsedLocked(now),
		SubmittedAt:    now,
		Trigger:        trigger,
	}
}

func (s *Session) arm(seconds int) {
	if seconds > 0 {
		s.timerGen = s.timer.Start(seconds)
		s.phase = PhaseTimerArmed
	}
}

func (s *Session) checkMutableLocked(questionID string) error {
	switch s.phase {
	case PhaseEmpty:
		return ErrNotLoaded
	case PhaseSubmitted:
		return ErrSubmitted
	}
	if _, ok := s.types[questionID]; !ok {
		return &UnknownQuestionError{QuestionID: questionID}
	}
	return nil
}

func (s *Session) progressLocked() Progress {
	if s.exercise == nil {
		return Progress{}
	}
	return Progress{Answered: s.answers.AnsweredCount(), Total: len(s.types)}
}

func (s *Session) progressEventLocked() Event {
	return Event{Kind: EventProgress, ExerciseID: s.exercise.ID, Progress: s.progressLocked()}
}

func (s *Session) remainingLocked() int {
	if s.config.TimeLimitSeconds <= 0 {
		return 0
	}
	return s.timer.Remaining()
}

func (s *Session) elapsedLocked(now time.Time) int {
	e := s.elapsedBefore + int(now.Sub(s.startedAt).Seconds())
	if e < 0 {
		return 0
	}
	return e
}

func (s *Session) hintListLocked() []string {
	out := make([]string, 0, len(s.hints))
	for id := range s.hints {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s *Session) persistLocked() {
	if s.kv == nil || s.exercise == nil {
		return
	}
	snap := s.snapshotLocked()
	if err := store.PutJSON(context.Background(), s.kv, SnapshotKey(snap.ExerciseID), snap); err != nil {
		s.log.Warn("persist attempt snapshot failed",
			zap.String("exercise_id", snap.ExerciseID), zap.Error(err))
	}
}

func (s *Session) dispatch(events []Event) {
	s.mu.Lock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, ev := range events {
		for _, l := range listeners {
			l(ev)
		}
	}
}
