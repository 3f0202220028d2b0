package session

import "github.com/abhisek/lexis/internal/exercise"

// AnswerStore holds the in-progress answers for one attempt, keyed by
// question id. It is owned by a Session and not safe for concurrent use on
// its own.
type AnswerStore struct {
	answers map[string]exercise.AnswerValue
}

// NewAnswerStore creates an empty store.
func NewAnswerStore() *AnswerStore {
	return &AnswerStore{answers: make(map[string]exercise.AnswerValue)}
}

// Set upserts the answer for a question.
func (a *AnswerStore) Set(questionID string, v exercise.AnswerValue) {
	a.answers[questionID] = v.Clone()
}

// Get returns the answer for a question.
func (a *AnswerStore) Get(questionID string) (exercise.AnswerValue, bool) {
	v, ok := a.answers[questionID]
	if !ok {
		return exercise.AnswerValue{}, false
	}
	return v.Clone(), true
}

// size returns the number of stored entries, including empty ones.
func (a *AnswerStore) size() int {
	return len(a.answers)
}

// AnsweredCount counts entries that carry learner input.
func (a *AnswerStore) AnsweredCount() int {
	n := 0
	for _, v := range a.answers {
		if !v.IsEmpty() {
			n++
		}
	}
	return n
}

// Snapshot returns a deep copy of every entry.
func (a *AnswerStore) Snapshot() map[string]exercise.AnswerValue {
	out := make(map[string]exercise.AnswerValue, len(a.answers))
	for k, v := range a.answers {
		out[k] = v.Clone()
	}
	return out
}

// Reset drops every entry.
func (a *AnswerStore) Reset() {
	a.answers = make(map[string]exercise.AnswerValue)
}
