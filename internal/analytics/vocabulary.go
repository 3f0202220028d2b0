package analytics

import "github.com/abhisek/lexis/internal/exercise"

// Mastery is the per-word classification.
type Mastery string

const (
	MasteryMastered    Mastery = "mastered"
	MasteryLearning    Mastery = "learning"
	MasteryNeedsReview Mastery = "needs_review"
)

// WordMastery tracks one target word across the questions that use it.
type WordMastery struct {
	Word             string  `json:"word"`
	QuestionsCorrect int     `json:"questionsCorrect"`
	QuestionsTotal   int     `json:"questionsTotal"`
	Mastery          Mastery `json:"mastery"`
}

// ClassifyMastery is mastered when every question was correct, learning
// when at least one was, needs_review otherwise.
func ClassifyMastery(correct, total int) Mastery {
	switch {
	case total > 0 && correct == total:
		return MasteryMastered
	case correct > 0:
		return MasteryLearning
	default:
		return MasteryNeedsReview
	}
}

// Vocabulary returns one entry per distinct target word in order of first
// appearance. Word identity is case-sensitive.
func Vocabulary(ex *exercise.Exercise, outcomes map[string]Outcome) []WordMastery {
	index := make(map[string]int)
	var out []WordMastery
	for _, loc := range ex.Flatten() {
		correct := outcomeFor(loc.Question, outcomes).Correct
		for _, w := range loc.Question.TargetWords {
			i, ok := index[w]
			if !ok {
				i = len(out)
				index[w] = i
				out = append(out, WordMastery{Word: w})
			}
			out[i].QuestionsTotal++
			if correct {
				out[i].QuestionsCorrect++
			}
		}
	}
	for i := range out {
		out[i].Mastery = ClassifyMastery(out[i].QuestionsCorrect, out[i].QuestionsTotal)
	}
	return out
}

// CountByMastery tallies entries per classification.
func CountByMastery(words []WordMastery) map[Mastery]int {
	out := make(map[Mastery]int, 3)
	for _, w := range words {
		out[w.Mastery]++
	}
	return out
}
