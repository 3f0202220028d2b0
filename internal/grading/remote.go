package grading

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/lexis/internal/exercise"
	"github.com/abhisek/lexis/internal/llm"
)

// RemoteConfig tunes the grading request.
type RemoteConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultRemoteConfig returns the token budget and temperature used for grading.
func DefaultRemoteConfig() RemoteConfig {
	return RemoteConfig{MaxTokens: 4096, Temperature: 0.2}
}

// RemoteGrader grades with a language model. Totals, percentage, band and
// analytics are always computed locally from the per-question grades.
type RemoteGrader struct {
	provider llm.Provider
	cfg      RemoteConfig
}

// NewRemoteGrader creates a grader that sends each attempt to provider.
func NewRemoteGrader(provider llm.Provider, cfg RemoteConfig) *RemoteGrader {
	return &RemoteGrader{provider: provider, cfg: cfg}
}

type remotePayload struct {
	Questions []remoteGrade `json:"questions"`
	Summary   string        `json:"summary"`
}

type remoteGrade struct {
	QuestionID string `json:"questionId"`
	IsCorrect  *bool  `json:"isCorrect"`
	Score      *int   `json:"score"`
	Feedback   string `json:"feedback"`
}

// Grade returns an error wrapping ErrRemoteUnavailable when the model
// cannot be reached or answers off-schema, and ErrMalformedPayload when a
// question is missing or scored out of range.
func (g *RemoteGrader) Grade(ctx context.Context, ex *exercise.Exercise, answers map[string]exercise.AnswerValue) (*Result, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeRemoteGrading)

	msg := buildGradingMessage(ex, answers)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      gradingSystemPrompt,
		Messages:    llm.UserMessage(msg),
		Schema:      ResultSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
	}

	var payload remotePayload
	if err := json.Unmarshal(resp.Content, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
	}
	return fromPayload(ex, answers, payload)
}

func fromPayload(ex *exercise.Exercise, answers map[string]exercise.AnswerValue, p remotePayload) (*Result, error) {
	grades := make(map[string]remoteGrade, len(p.Questions))
	for _, g := range p.Questions {
		grades[g.QuestionID] = g
	}

	res := &Result{ExerciseID: ex.ID, Source: SourceRemote, Summary: p.Summary}
	for _, loc := range ex.Flatten() {
		q := loc.Question
		g, ok := grades[q.ID]
		if !ok || g.IsCorrect == nil || g.Score == nil {
			return nil, fmt.Errorf("%w: no grade for question %q", ErrMalformedPayload, q.ID)
		}
		if *g.Score < 0 || *g.Score > q.Points {
			return nil, fmt.Errorf("%w: score %d for question %q outside 0..%d", ErrMalformedPayload, *g.Score, q.ID, q.Points)
		}

		qr := questionResult(loc)
		if v, ok := answers[q.ID]; ok && !v.IsEmpty() {
			v := v.Clone()
			qr.StudentAnswer = &v
		}
		qr.IsCorrect = *g.IsCorrect
		qr.Score = *g.Score
		qr.Feedback = g.Feedback
		res.Questions = append(res.Questions, qr)
	}
	res.finalize(ex)
	return res, nil
}

const gradingSystemPrompt = `You are an experienced English teacher grading a learner's exercise.

Instructions:
- Grade every question listed, using its id exactly as given.
- Accept answers that are equivalent in meaning to the reference answer; ignore capitalization and punctuation.
- For open questions (essay, short answer) award partial points for partially correct answers.
- A score must be a whole number between 0 and the question's points.
- An unanswered question scores 0.
- Keep feedback brief and encouraging; name the correct form when the answer is wrong.`

// buildGradingMessage lists every question with its reference and the
// learner's answer, grouped by section.
func buildGradingMessage(ex *exercise.Exercise, answers map[string]exercise.AnswerValue) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Exercise: %s", ex.Title)
	if ex.Level != "" {
		fmt.Fprintf(&b, " (level %s)", ex.Level)
	}
	b.WriteString("\n")

	for _, s := range ex.Sections {
		fmt.Fprintf(&b, "\n## %s [%s, %s]\n", s.Title, s.Skill, s.CognitiveLevel)
		if s.Content != "" {
			fmt.Fprintf(&b, "Passage:\n%s\n", s.Content)
		}
		for _, q := range s.Questions {
			answer := "(no answer)"
			if v, ok := answers[q.ID]; ok && !v.IsEmpty() {
				answer = v.String()
			}
			ref := q.CorrectAnswer
			if len(q.AcceptedAnswers) > 0 {
				ref = fmt.Sprintf("%s (also accepted: %s)", q.CorrectAnswer, strings.Join(q.AcceptedAnswers, ", "))
			}
			fmt.Fprintf(&b, "\n- id: %s\n", q.ID)
			fmt.Fprintf(&b, "  type: %s\n", q.Type)
			fmt.Fprintf(&b, "  points: %d\n", q.Points)
			fmt.Fprintf(&b, "  prompt: %s\n", q.Prompt)
			fmt.Fprintf(&b, "  reference answer: %s\n", ref)
			fmt.Fprintf(&b, "  learner answer: %s\n", answer)
		}
	}
	return b.String()
}
