// Package grading scores submissions. The offline grader is deterministic
// and needs no network; the remote grader asks a language model and is
// always backed by the offline grader.
package grading

import (
	"time"

	"github.com/abhisek/lexis/internal/analytics"
	"github.com/abhisek/lexis/internal/exercise"
)

// Source records which grader produced a result.
type Source string

const (
	SourceRemote  Source = "remote"
	SourceOffline Source = "offline"
)

// QuestionResult is the graded state of one question.
type QuestionResult struct {
	QuestionID     string                  `json:"questionId"`
	QuestionType   exercise.QuestionType   `json:"questionType"`
	Skill          exercise.Skill          `json:"skill"`
	CognitiveLevel exercise.CognitiveLevel `json:"cognitiveLevel"`
	StudentAnswer  *exercise.AnswerValue   `json:"studentAnswer,omitempty"`
	CorrectAnswer  string                  `json:"correctAnswer"`
	IsCorrect      bool                    `json:"isCorrect"`
	Score          int                     `json:"score"`
	MaxScore       int                     `json:"maxScore"`
	Feedback       string                  `json:"feedback"`
}

// Result is a graded attempt with its analytics.
type Result struct {
	ExerciseID   string           `json:"exerciseId"`
	SubmissionID string           `json:"submissionId,omitempty"`
	Questions    []QuestionResult `json:"questions"`
	TotalScore   int              `json:"totalScore"`
	MaxScore     int              `json:"maxScore"`
	Percentage   float64          `json:"percentage"`
	Band         string           `json:"band"`
	Summary      string           `json:"summary,omitempty"`
	Source       Source           `json:"source"`
	GradedAt     time.Time        `json:"gradedAt,omitzero"`

	analytics.Report
}

// Outcomes indexes the per-question results for analytics.
func (r *Result) Outcomes() map[string]analytics.Outcome {
	out := make(map[string]analytics.Outcome, len(r.Questions))
	for _, q := range r.Questions {
		out[q.QuestionID] = analytics.Outcome{Correct: q.IsCorrect, Score: q.Score, MaxScore: q.MaxScore}
	}
	return out
}

// CorrectCount counts questions graded correct.
func (r *Result) CorrectCount() int {
	n := 0
	for _, q := range r.Questions {
		if q.IsCorrect {
			n++
		}
	}
	return n
}

// finalize recomputes totals, percentage, band and analytics from the
// per-question results.
func (r *Result) finalize(ex *exercise.Exercise) {
	r.TotalScore, r.MaxScore = 0, 0
	for _, q := range r.Questions {
		r.TotalScore += q.Score
		r.MaxScore += q.MaxScore
	}
	r.Percentage = analytics.Percent(r.TotalScore, r.MaxScore)
	r.Band = Band(r.Percentage)
	r.Report = analytics.Analyze(ex, r.Outcomes())
}
