package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/lexis/internal/exercise"
)

func sampleExercise() *exercise.Exercise {
	return &exercise.Exercise{
		ID: "ex-vocab",
		Sections: []exercise.Section{
			{
				Skill:          exercise.SkillVocabulary,
				CognitiveLevel: exercise.LevelRemember,
				Questions: []exercise.Question{
					{ID: "q1", Points: 2, TargetWords: []string{"voyage", "harbor"}},
					{ID: "q2", Points: 1, TargetWords: []string{"voyage"}},
				},
			},
			{
				Skill:          exercise.SkillGrammar,
				CognitiveLevel: exercise.LevelApply,
				Questions: []exercise.Question{
					{ID: "q3", Points: 3, TargetWords: []string{"Voyage"}},
					{ID: "q4", Points: 1},
				},
			},
			{
				Skill:          exercise.SkillVocabulary,
				CognitiveLevel: exercise.LevelRemember,
				Questions: []exercise.Question{
					{ID: "q5", Points: 2, TargetWords: []string{"harbor"}},
				},
			},
		},
	}
}

func TestSkills(t *testing.T) {
	outcomes := map[string]Outcome{
		"q1": {Correct: true, Score: 2, MaxScore: 2},
		"q2": {Correct: true, Score: 1, MaxScore: 1},
		"q3": {Correct: false, Score: 0, MaxScore: 3},
		"q4": {Correct: true, Score: 1, MaxScore: 1},
		// q5 missing: counted as incorrect with full max.
	}

	got := Skills(sampleExercise(), outcomes)

	assert.Equal(t, SkillScore{Score: 3, Max: 5, Percentage: 60, Feedback: FeedbackGood}, got[exercise.SkillVocabulary])
	assert.Equal(t, SkillScore{Score: 1, Max: 4, Percentage: 25, Feedback: FeedbackNeedsPractice}, got[exercise.SkillGrammar])
	assert.Len(t, got, 2)
}

func TestFeedbackLabel(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{100, FeedbackExcellent},
		{80, FeedbackExcellent},
		{79.9, FeedbackGood},
		{60, FeedbackGood},
		{59.9, FeedbackNeedsPractice},
		{0, FeedbackNeedsPractice},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FeedbackLabel(tt.pct), "pct=%v", tt.pct)
	}
}

func TestCognitiveLevels(t *testing.T) {
	outcomes := map[string]Outcome{
		"q1": {Correct: true},
		"q3": {Correct: true},
		"q5": {Correct: true},
	}

	got := CognitiveLevels(sampleExercise(), outcomes)

	assert.Equal(t, LevelCount{Correct: 2, Total: 3}, got[exercise.LevelRemember])
	assert.Equal(t, LevelCount{Correct: 1, Total: 2}, got[exercise.LevelApply])
	assert.NotContains(t, got, exercise.LevelCreate)
}

func TestVocabulary(t *testing.T) {
	outcomes := map[string]Outcome{
		"q1": {Correct: true},
		"q2": {Correct: false},
		"q3": {Correct: true},
		"q5": {Correct: true},
	}

	got := Vocabulary(sampleExercise(), outcomes)

	assert.Equal(t, []WordMastery{
		{Word: "voyage", QuestionsCorrect: 1, QuestionsTotal: 2, Mastery: MasteryLearning},
		{Word: "harbor", QuestionsCorrect: 2, QuestionsTotal: 2, Mastery: MasteryMastered},
		{Word: "Voyage", QuestionsCorrect: 1, QuestionsTotal: 1, Mastery: MasteryMastered},
	}, got)
}

func TestClassifyMastery(t *testing.T) {
	assert.Equal(t, MasteryLearning, ClassifyMastery(1, 2))
	assert.Equal(t, MasteryNeedsReview, ClassifyMastery(0, 2))
	assert.Equal(t, MasteryMastered, ClassifyMastery(2, 2))
	assert.Equal(t, MasteryNeedsReview, ClassifyMastery(0, 0))
}

func TestAnalyze_NoTargetWords(t *testing.T) {
	ex := sampleExercise()
	for i := range ex.Sections {
		for j := range ex.Sections[i].Questions {
			ex.Sections[i].Questions[j].TargetWords = nil
		}
	}
	r := Analyze(ex, nil)
	assert.Empty(t, r.Vocabulary)
	assert.Equal(t, 0, r.Skills[exercise.SkillVocabulary].Score)
	assert.Equal(t, 5, r.Skills[exercise.SkillVocabulary].Max)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, Percent(3, 0))
	assert.Equal(t, 85.0, Percent(17, 20))
	assert.Equal(t, 33.3, Percent(1, 3))
	assert.Equal(t, 66.7, Percent(2, 3))
}

func TestCountByMastery(t *testing.T) {
	counts := CountByMastery([]WordMastery{
		{Mastery: MasteryMastered}, {Mastery: MasteryMastered}, {Mastery: MasteryLearning},
	})
	assert.Equal(t, 2, counts[MasteryMastered])
	assert.Equal(t, 1, counts[MasteryLearning])
	assert.Equal(t, 0, counts[MasteryNeedsReview])
}
