package grading

import (
	"fmt"

	"github.com/abhisek/lexis/internal/exercise"
)

const feedbackCorrect = "Correct!"

// Offline grades answers against ex by normalized literal match. The same
// inputs always give the same Result; GradedAt and SubmissionID are left
// for the caller.
//
// Only text answers can match. Blank and matching answers are keyed maps
// and are always graded incorrect here.
func Offline(ex *exercise.Exercise, answers map[string]exercise.AnswerValue) *Result {
	res := &Result{ExerciseID: ex.ID, Source: SourceOffline}
	for _, loc := range ex.Flatten() {
		q := loc.Question
		qr := questionResult(loc)

		if v, ok := answers[q.ID]; ok && !v.IsEmpty() {
			v := v.Clone()
			qr.StudentAnswer = &v
			qr.IsCorrect = matches(v, q.Accepted())
		}
		if qr.IsCorrect {
			qr.Score = q.Points
			qr.Feedback = feedbackCorrect
		} else {
			qr.Feedback = fmt.Sprintf("Incorrect. The correct answer is: %s", q.CorrectAnswer)
		}
		res.Questions = append(res.Questions, qr)
	}
	res.finalize(ex)
	return res
}

func questionResult(loc exercise.Located) QuestionResult {
	return QuestionResult{
		QuestionID:     loc.Question.ID,
		QuestionType:   loc.Question.Type,
		Skill:          loc.Section.Skill,
		CognitiveLevel: loc.Section.CognitiveLevel,
		CorrectAnswer:  loc.Question.CorrectAnswer,
		MaxScore:       loc.Question.Points,
	}
}

func matches(v exercise.AnswerValue, accepted []string) bool {
	text, ok := v.Scalar()
	if !ok {
		return false
	}
	got := Normalize(text)
	for _, a := range accepted {
		if Normalize(a) == got {
			return true
		}
	}
	return false
}
