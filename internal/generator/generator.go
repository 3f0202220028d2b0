// Package generator is the exercise source: it asks a language model for
// an exercise and accepts it only if it passes structural validation.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/lexis/internal/exercise"
	"github.com/abhisek/lexis/internal/llm"
)

// ErrGeneration is matched by every failure to obtain a usable exercise.
var ErrGeneration = errors.New("exercise generation failed")

// Source produces exercises.
type Source interface {
	Generate(ctx context.Context, req Request) (*exercise.Exercise, error)
}

// Request describes the exercise to generate.
type Request struct {
	Topic         string
	Level         string
	Skills        []exercise.Skill
	QuestionCount int
	TargetWords   []string
}

// Config tunes the generation call.
type Config struct {
	MaxTokens   int
	Temperature float64

	// DefaultQuestions is used when a request leaves QuestionCount at 0.
	DefaultQuestions int
	MaxQuestions     int
	MaxTargetWords   int
}

// DefaultConfig returns the recommended settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:        8192,
		Temperature:      0.7,
		DefaultQuestions: 10,
		MaxQuestions:     40,
		MaxTargetWords:   20,
	}
}

// LLMGenerator implements Source with an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMGenerator.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate returns a prepared exercise. A missing id is filled with a
// random one.
func (g *LLMGenerator) Generate(ctx context.Context, req Request) (*exercise.Exercise, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeExerciseGen)
	req = g.normalize(req)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(req)),
		Schema:      ExerciseSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	var ex exercise.Exercise
	if err := json.Unmarshal(resp.Content, &ex); err != nil {
		return nil, fmt.Errorf("%w: parse response: %w", ErrGeneration, err)
	}
	if ex.ID == "" {
		ex.ID = uuid.NewString()
	}
	if ex.Level == "" {
		ex.Level = req.Level
	}

	prepared, err := exercise.Prepare(&ex)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	return prepared, nil
}

func (g *LLMGenerator) normalize(req Request) Request {
	if req.QuestionCount <= 0 {
		req.QuestionCount = g.config.DefaultQuestions
	}
	if g.config.MaxQuestions > 0 && req.QuestionCount > g.config.MaxQuestions {
		req.QuestionCount = g.config.MaxQuestions
	}
	if g.config.MaxTargetWords > 0 && len(req.TargetWords) > g.config.MaxTargetWords {
		req.TargetWords = req.TargetWords[:g.config.MaxTargetWords]
	}
	if len(req.Skills) == 0 {
		req.Skills = []exercise.Skill{exercise.SkillVocabulary, exercise.SkillGrammar, exercise.SkillReading}
	}
	return req
}
