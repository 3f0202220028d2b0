package exercise

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidExercise is matched by every structural validation failure.
var ErrInvalidExercise = errors.New("invalid exercise")

// ValidationError describes why an exercise was rejected at load time.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid exercise: %s", e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidExercise }

func invalid(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// Validate checks structural completeness only: non-empty sections and
// questions, unique question ids, known enums, and points consistency.
// Semantic quality of the content is not inspected.
func Validate(e *Exercise) error {
	if e == nil {
		return invalid("exercise is nil")
	}
	if len(e.Sections) == 0 {
		return invalid("exercise %q has no sections", e.ID)
	}

	seen := make(map[string]bool)
	for i, s := range e.Sections {
		if len(s.Questions) == 0 {
			return invalid("section %d (%q) has no questions", i, s.Title)
		}
		if !s.Skill.Valid() {
			return invalid("section %d has unknown skill %q", i, s.Skill)
		}
		if !s.CognitiveLevel.Valid() {
			return invalid("section %d has unknown cognitive level %q", i, s.CognitiveLevel)
		}
		for _, q := range s.Questions {
			if q.ID == "" {
				return invalid("section %d has a question without id", i)
			}
			if seen[q.ID] {
				return invalid("duplicate question id %q", q.ID)
			}
			seen[q.ID] = true
			if !q.Type.Valid() {
				return invalid("question %q has unknown type %q", q.ID, q.Type)
			}
			if q.Points <= 0 {
				return invalid("question %q has non-positive points %d", q.ID, q.Points)
			}
		}
	}

	if e.MaxScore != 0 && e.MaxScore != e.TotalPoints() {
		return invalid("declared max score %d does not match points sum %d", e.MaxScore, e.TotalPoints())
	}
	return nil
}

// Prepare returns a validated deep copy of e with defaults applied
// (non-positive points become 1, a missing max score becomes the points sum).
// The caller's value is never mutated.
func Prepare(e *Exercise) (*Exercise, error) {
	if e == nil {
		return nil, invalid("exercise is nil")
	}
	c := e.Clone()
	for i := range c.Sections {
		for j := range c.Sections[i].Questions {
			if c.Sections[i].Questions[j].Points <= 0 {
				c.Sections[i].Questions[j].Points = 1
			}
		}
	}
	if err := Validate(c); err != nil {
		return nil, err
	}
	if c.MaxScore == 0 {
		c.MaxScore = c.TotalPoints()
	}
	return c, nil
}

// LoadFile reads an exercise JSON document from disk and prepares it.
func LoadFile(path string) (*Exercise, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read exercise: %w", err)
	}
	var e Exercise
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, fmt.Errorf("parse exercise: %w", err)
	}
	return Prepare(&e)
}
