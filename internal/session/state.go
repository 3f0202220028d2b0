package session

import (
	"time"

	"github.com/abhisek/lexis/internal/exercise"
)

// Phase is the lifecycle phase of the current attempt.
type Phase int

const (
	PhaseEmpty      Phase = iota // Nothing loaded yet
	PhaseLoaded                  // Exercise loaded, no timer
	PhaseTimerArmed              // Exercise loaded, countdown running
	PhaseSubmitted               // Submission emitted; terminal for the attempt
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseLoaded:
		return "loaded"
	case PhaseTimerArmed:
		return "timer_armed"
	case PhaseSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Config controls a single attempt.
type Config struct {
	// TimeLimitSeconds arms the countdown when positive.
	TimeLimitSeconds int `json:"timeLimitSeconds"`
}

// Trigger records who caused a submission.
type Trigger string

const (
	TriggerLearner Trigger = "learner"
	TriggerTimer   Trigger = "timer"
)

// Submission is the frozen outcome of one attempt. It is never mutated
// after Submit returns it.
type Submission struct {
	ID             string                          `json:"id"`
	ExerciseID     string                          `json:"exerciseId"`
	Answers        map[string]exercise.AnswerValue `json:"answers"`
	HintsUsed      []string                        `json:"hintsUsed"`
	ElapsedSeconds int                             `json:"elapsedSeconds"`
	SubmittedAt    time.Time                       `json:"submittedAt"`
	Trigger        Trigger                         `json:"trigger"`
}

// Forced reports whether the timer, not the learner, submitted the attempt.
func (s *Submission) Forced() bool {
	return s.Trigger == TriggerTimer
}
