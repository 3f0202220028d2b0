package session

import (
	"errors"
	"fmt"

	"github.com/abhisek/lexis/internal/exercise"
)

var (
	// ErrNotLoaded is returned by operations that need a loaded exercise.
	ErrNotLoaded = errors.New("no exercise loaded")

	// ErrSubmitted is returned when answers are changed after submission.
	ErrSubmitted = errors.New("attempt already submitted")

	// ErrUnknownQuestion is matched by UnknownQuestionError.
	ErrUnknownQuestion = errors.New("unknown question")
)

// UnknownQuestionError reports an answer for a question id that is not in
// the loaded exercise.
type UnknownQuestionError struct {
	QuestionID string
}

func (e *UnknownQuestionError) Error() string {
	return fmt.Sprintf("unknown question %q", e.QuestionID)
}

func (e *UnknownQuestionError) Is(target error) bool { return target == ErrUnknownQuestion }

// AnswerShapeError reports an answer whose kind does not fit the question type.
type AnswerShapeError struct {
	QuestionID string
	Type       exercise.QuestionType
	Kind       exercise.AnswerKind
}

func (e *AnswerShapeError) Error() string {
	return fmt.Sprintf("question %q (%s) does not accept %s answers", e.QuestionID, e.Type, e.Kind)
}

// IncompleteError is returned by a non-forced Submit while questions are
// still unanswered. The caller decides whether to confirm and force.
type IncompleteError struct {
	Answered int
	Total    int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%d of %d questions answered", e.Answered, e.Total)
}
