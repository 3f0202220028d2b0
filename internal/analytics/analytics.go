// Package analytics derives skill, cognitive-level and vocabulary summaries
// from a graded attempt. Everything here is a pure function of the
// exercise and the per-question outcomes and is recomputed on every
// grading.
package analytics

import (
	"math"

	"github.com/abhisek/lexis/internal/exercise"
)

// Outcome is the graded state of one question.
type Outcome struct {
	Correct  bool
	Score    int
	MaxScore int
}

// Report bundles the three analytics blocks.
type Report struct {
	Skills          SkillBreakdown     `json:"skillBreakdown"`
	CognitiveLevels CognitiveBreakdown `json:"cognitiveBreakdown"`
	Vocabulary      []WordMastery      `json:"vocabularyMastery"`
}

// Analyze computes every block. A question missing from outcomes counts
// as answered incorrectly with its full points as the maximum.
func Analyze(ex *exercise.Exercise, outcomes map[string]Outcome) Report {
	return Report{
		Skills:          Skills(ex, outcomes),
		CognitiveLevels: CognitiveLevels(ex, outcomes),
		Vocabulary:      Vocabulary(ex, outcomes),
	}
}

func outcomeFor(q exercise.Question, outcomes map[string]Outcome) Outcome {
	if o, ok := outcomes[q.ID]; ok {
		return o
	}
	return Outcome{MaxScore: q.Points}
}

// Percent returns part/whole*100 rounded to one decimal, 0 for an empty whole.
func Percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)*1000/float64(whole)) / 10
}
