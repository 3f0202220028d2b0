package grading

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexis/internal/exercise"
	"github.com/abhisek/lexis/internal/llm"
)

func payload(t *testing.T, grades ...map[string]any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(map[string]any{"questions": grades, "summary": "Solid work."})
	require.NoError(t, err)
	return b
}

func grade(id string, correct bool, score int) map[string]any {
	return map[string]any{"questionId": id, "isCorrect": correct, "score": score, "feedback": "ok"}
}

func TestRemoteGrader_Grade(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: payload(t,
		grade("q1", true, 2),
		grade("q2", true, 1),
		grade("q3", false, 1),
		grade("q4", false, 0),
	)})
	g := NewRemoteGrader(mock, DefaultRemoteConfig())
	answers := map[string]exercise.AnswerValue{
		"q1": exercise.Text("Paris"),
		"q3": exercise.Blanks(map[int]string{0: "goed"}),
	}

	res, err := g.Grade(context.Background(), cityExercise(), answers)
	require.NoError(t, err)

	assert.Equal(t, SourceRemote, res.Source)
	assert.Equal(t, 4, res.TotalScore)
	assert.Equal(t, 7, res.MaxScore)
	assert.Equal(t, 57.1, res.Percentage)
	assert.Equal(t, "B1", res.Band)
	assert.Equal(t, "Solid work.", res.Summary)
	assert.Equal(t, "Tokyo", res.Questions[1].CorrectAnswer)
	require.NotNil(t, res.Questions[2].StudentAnswer)

	require.Equal(t, 1, mock.CallCount())
	call := mock.Calls[0]
	assert.Equal(t, ResultSchema, call.Schema)
	assert.Contains(t, call.Messages[0].Content, "id: q3")
	assert.Contains(t, call.Messages[0].Content, "learner answer: 0: goed")
	assert.Contains(t, call.Messages[0].Content, "learner answer: (no answer)")
}

func TestRemoteGrader_MissingQuestion(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: payload(t,
		grade("q1", true, 2),
		grade("q2", true, 1),
	)})

	_, err := NewRemoteGrader(mock, DefaultRemoteConfig()).Grade(context.Background(), cityExercise(), nil)
	assert.ErrorIs(t, err, ErrMalformedPayload)
	assert.True(t, strings.Contains(err.Error(), "q3"))
}

func TestRemoteGrader_ScoreOutOfRange(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: payload(t,
		grade("q1", true, 5),
		grade("q2", true, 1),
		grade("q3", true, 3),
		grade("q4", true, 1),
	)})

	_, err := NewRemoteGrader(mock, DefaultRemoteConfig()).Grade(context.Background(), cityExercise(), nil)
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestRemoteGrader_OffSchema(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"questions":[{"questionId":"q1"}]}`)})

	_, err := NewRemoteGrader(mock, DefaultRemoteConfig()).Grade(context.Background(), cityExercise(), nil)
	assert.ErrorIs(t, err, ErrRemoteUnavailable)
	var inv *llm.ErrInvalidResponse
	assert.True(t, errors.As(err, &inv))
}

func TestRemoteGrader_ProviderDown(t *testing.T) {
	_, err := NewRemoteGrader(llm.NewMockProvider(), DefaultRemoteConfig()).Grade(context.Background(), cityExercise(), nil)
	assert.ErrorIs(t, err, ErrRemoteUnavailable)
}

func TestBuildGradingMessage(t *testing.T) {
	ex := cityExercise()
	ex.Level = "B1"
	ex.Sections[0].Content = "Capitals are seats of government."

	msg := buildGradingMessage(ex, map[string]exercise.AnswerValue{
		"q1": exercise.Text("Paris"),
		"q2": exercise.Text(""),
	})

	assert.True(t, strings.HasPrefix(msg, "Exercise: Capitals (level B1)\n"))
	assert.Contains(t, msg, "## Recall [vocabulary, remember]\nPassage:\nCapitals are seats of government.\n")
	assert.Contains(t, msg, "## Grammar [grammar, apply]\n\n- id: q3\n")
	assert.Contains(t, msg, "- id: q1\n  type: short_answer\n  points: 2\n  prompt: Capital of France?\n  reference answer: Paris\n  learner answer: Paris\n")
	assert.Contains(t, msg, "  reference answer: Tokyo (also accepted: Tokyo, Tōkyō)\n  learner answer: (no answer)\n")
	assert.Equal(t, 4, strings.Count(msg, "- id: "))
}
