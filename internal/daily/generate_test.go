package daily

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexis/internal/analytics"
	"github.com/abhisek/lexis/internal/exercise"
	"github.com/abhisek/lexis/internal/grading"
	"github.com/abhisek/lexis/internal/vocab"
)

func rng() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func TestGenerate_ArchetypesCycle(t *testing.T) {
	ex, words, err := Generate("2024-01-02", vocab.Builtin(), 5, 10, rng())
	require.NoError(t, err)
	require.Len(t, words, 5)

	qs := ex.Sections[0].Questions
	require.Len(t, qs, 5)
	want := []exercise.QuestionType{
		exercise.TypeMultipleChoice,
		exercise.TypeFillBlank,
		exercise.TypeTrueFalse,
		exercise.TypeMultipleChoice,
		exercise.TypeFillBlank,
	}
	for i, q := range qs {
		assert.Equal(t, want[i], q.Type, "question %d", i)
		assert.Equal(t, 1, q.Points)
		assert.Equal(t, []string{words[i].Word}, q.TargetWords)
	}

	mc := qs[0]
	assert.Len(t, mc.Options, distractorCount+1)
	assert.Contains(t, mc.Options, words[0].Definition)

	fill := qs[1]
	assert.Equal(t, words[1].Word, fill.CorrectAnswer)
	assert.Len(t, fill.Hints, 2)

	tf := qs[2]
	assert.Equal(t, "True", tf.CorrectAnswer)

	assert.Equal(t, exercise.SkillVocabulary, ex.Sections[0].Skill)
	assert.Equal(t, exercise.LevelRemember, ex.Sections[0].CognitiveLevel)
}

func TestGenerate_DistinctWords(t *testing.T) {
	_, words, err := Generate("2024-01-02", vocab.Builtin(), 10, 10, rng())
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, w := range words {
		assert.False(t, seen[w.Word], "duplicate word %q", w.Word)
		seen[w.Word] = true
	}
}

func TestGenerate_Bounds(t *testing.T) {
	small := vocab.Builtin()[:2]
	ex, words, err := Generate("2024-01-02", small, 5, 10, rng())
	require.NoError(t, err)
	assert.Len(t, words, 2)
	assert.Equal(t, 2, ex.QuestionCount())

	ex, _, err = Generate("2024-01-02", vocab.Builtin(), 8, 3, rng())
	require.NoError(t, err)
	assert.Equal(t, 3, ex.QuestionCount())

	_, _, err = Generate("2024-01-02", nil, 5, 10, rng())
	assert.True(t, errors.Is(err, vocab.ErrNoWords))
}

func TestGenerate_SingleWordPool(t *testing.T) {
	ex, _, err := Generate("2024-01-02", []vocab.Word{{Word: "terse", Definition: "brief"}}, 5, 10, rng())
	require.NoError(t, err)
	q := ex.Sections[0].Questions[0]
	assert.Equal(t, []string{"brief"}, q.Options)
}

func TestGenerate_Deterministic(t *testing.T) {
	a, _, err := Generate("2024-01-02", vocab.Builtin(), 5, 10, rng())
	require.NoError(t, err)
	b, _, err := Generate("2024-01-02", vocab.Builtin(), 5, 10, rng())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_GradesOffline(t *testing.T) {
	ex, _, err := Generate("2024-01-02", vocab.Builtin(), 5, 10, rng())
	require.NoError(t, err)

	answers := map[string]exercise.AnswerValue{}
	for _, loc := range ex.Flatten() {
		answers[loc.Question.ID] = exercise.Text(loc.Question.CorrectAnswer)
	}
	res := grading.Offline(ex, answers)
	assert.Equal(t, 100.0, res.Percentage)
	assert.Equal(t, ex.TotalPoints(), res.MaxScore)

	require.Len(t, res.Vocabulary, 5)
	for _, w := range res.Vocabulary {
		assert.Equal(t, analytics.MasteryMastered, w.Mastery, w.Word)
	}
}
