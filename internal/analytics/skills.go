package analytics

import "github.com/abhisek/lexis/internal/exercise"

// Skill feedback labels.
const (
	FeedbackExcellent     = "excellent"
	FeedbackGood          = "good"
	FeedbackNeedsPractice = "needs practice"
)

// SkillScore is the aggregate for one skill.
type SkillScore struct {
	Score      int     `json:"score"`
	Max        int     `json:"max"`
	Percentage float64 `json:"percentage"`
	Feedback   string  `json:"feedback"`
}

// SkillBreakdown maps each skill present in the exercise to its score.
type SkillBreakdown map[exercise.Skill]SkillScore

// Skills groups scores by section skill.
func Skills(ex *exercise.Exercise, outcomes map[string]Outcome) SkillBreakdown {
	out := make(SkillBreakdown)
	for _, s := range ex.Sections {
		agg := out[s.Skill]
		for _, q := range s.Questions {
			o := outcomeFor(q, outcomes)
			agg.Score += o.Score
			agg.Max += o.MaxScore
		}
		out[s.Skill] = agg
	}
	for skill, agg := range out {
		agg.Percentage = Percent(agg.Score, agg.Max)
		agg.Feedback = FeedbackLabel(agg.Percentage)
		out[skill] = agg
	}
	return out
}

// FeedbackLabel maps a percentage to the three-tier skill label.
func FeedbackLabel(pct float64) string {
	switch {
	case pct >= 80:
		return FeedbackExcellent
	case pct >= 60:
		return FeedbackGood
	default:
		return FeedbackNeedsPractice
	}
}
