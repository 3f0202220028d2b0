package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/lexis/internal/exercise"
	"github.com/abhisek/lexis/internal/store"
)

// AttemptSnapshot is the persisted form of an in-progress or submitted
// attempt.
type AttemptSnapshot struct {
	ExerciseID       string                          `json:"exerciseId"`
	Answers          map[string]exercise.AnswerValue `json:"answers"`
	HintsUsed        []string                        `json:"hintsUsed,omitempty"`
	TimeLimitSeconds int                             `json:"timeLimitSeconds,omitempty"`
	RemainingSeconds int                             `json:"remainingSeconds"`
	ElapsedSeconds   int                             `json:"elapsedSeconds"`
	Submitted        bool                            `json:"submitted"`
	Submission       *Submission                     `json:"submission,omitempty"`
	SavedAt          time.Time                       `json:"savedAt"`
}

// SnapshotKey is the KV key an attempt on exerciseID is saved under.
func SnapshotKey(exerciseID string) string {
	return "attempt:" + exerciseID
}

// Snapshot captures the current attempt.
func (s *Session) Snapshot() AttemptSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() AttemptSnapshot {
	now := s.now()
	snap := AttemptSnapshot{
		Answers:          s.answers.Snapshot(),
		HintsUsed:        s.hintListLocked(),
		TimeLimitSeconds: s.config.TimeLimitSeconds,
		RemainingSeconds: s.remainingLocked(),
		Submitted:        s.phase == PhaseSubmitted,
		Submission:       s.submission,
		SavedAt:          now,
	}
	if s.exercise != nil {
		snap.ExerciseID = s.exercise.ID
	}
	if s.submission != nil {
		snap.ElapsedSeconds = s.submission.ElapsedSeconds
	} else if s.phase != PhaseEmpty {
		snap.ElapsedSeconds = s.elapsedLocked(now)
	}
	return snap
}

// Resume restores a saved attempt on ex when one exists and otherwise
// behaves like Load. It reports whether a snapshot was restored. Answers
// and hints for questions no longer in the exercise are dropped. A timed
// attempt whose countdown ran out while it was not loaded is submitted
// by the timer immediately; an untimed one resumed with a limit gets a
// fresh countdown. A submitted attempt resumes in PhaseSubmitted with its
// Submission, which the caller still has to grade.
func (s *Session) Resume(ctx context.Context, ex *exercise.Exercise, cfg Config) (bool, error) {
	prepared, err := exercise.Prepare(ex)
	if err != nil {
		return false, err
	}
	if s.kv == nil {
		return false, s.Load(prepared, cfg)
	}

	var snap AttemptSnapshot
	found, err := store.GetJSON(ctx, s.kv, SnapshotKey(prepared.ID), &snap)
	if err != nil {
		s.log.Warn("read attempt snapshot failed, starting fresh",
			zap.String("exercise_id", prepared.ID), zap.Error(err))
	}
	if err != nil || !found {
		return false, s.Load(prepared, cfg)
	}

	s.mu.Lock()
	s.reset(prepared, cfg)
	for id, v := range snap.Answers {
		if qt, ok := s.types[id]; ok && qt.AcceptsKind(v.Kind) {
			s.answers.Set(id, v)
		}
	}
	for _, id := range snap.HintsUsed {
		if _, ok := s.types[id]; ok {
			s.hints[id] = true
		}
	}
	s.elapsedBefore = snap.ElapsedSeconds

	expired := false
	switch {
	case snap.Submitted:
		s.phase = PhaseSubmitted
		s.submission = snap.Submission
		if s.submission == nil {
			s.submission = s.newSubmissionLocked(s.now(), TriggerLearner)
		}
	case cfg.TimeLimitSeconds <= 0:
	case snap.TimeLimitSeconds <= 0:
		s.arm(cfg.TimeLimitSeconds)
	case snap.RemainingSeconds > 0:
		s.arm(snap.RemainingSeconds)
	default:
		// Armed so the forced submit below sees a timed attempt.
		s.phase = PhaseTimerArmed
		expired = true
	}
	s.persistLocked()
	events := []Event{s.progressEventLocked()}
	s.mu.Unlock()

	s.log.Info("attempt resumed",
		zap.String("exercise_id", prepared.ID),
		zap.Int("answered", events[0].Progress.Answered),
		zap.Int("remaining_seconds", snap.RemainingSeconds),
		zap.Bool("submitted", snap.Submitted),
	)
	s.dispatch(events)

	if expired {
		if _, err := s.submit(true, TriggerTimer); err != nil {
			return true, err
		}
	}
	return true, nil
}

// Discard deletes the saved snapshot for the loaded exercise.
func (s *Session) Discard(ctx context.Context) error {
	s.mu.Lock()
	kv, ex := s.kv, s.exercise
	s.mu.Unlock()
	if kv == nil || ex == nil {
		return nil
	}
	return kv.Delete(ctx, SnapshotKey(ex.ID))
}
