package generator

import (
	"fmt"
	"strings"

	"github.com/abhisek/lexis/internal/exercise"
)

const systemPrompt = `You are an English teacher writing exam-practice exercises for language learners.

Rules:
- Group questions into sections. Every section has exactly one skill and one cognitive level.
- Order sections from the lowest cognitive level to the highest.
- Every question id is unique across the whole exercise (q1, q2, ...).
- Give every question a positive whole number of points; open questions may be worth more.
- For multiple_choice and true_false, list the options and make correctAnswer the exact text of one option.
- For fill_blank use ____ to mark each blank in the prompt.
- List alternative correct forms in acceptedAnswers; leave it empty when there are none.
- targetWords lists the vocabulary items the question tests, as they appear in the word list.
- Hints must help without giving the answer away.
- Reading sections put the passage in content; other sections leave content empty.`

// buildUserMessage constructs the user message from a normalized Request.
func buildUserMessage(req Request) string {
	var b strings.Builder

	topic := req.Topic
	if topic == "" {
		topic = "general English"
	}
	fmt.Fprintf(&b, "Topic: %s\n", topic)
	if req.Level != "" {
		fmt.Fprintf(&b, "Level: %s\n", req.Level)
	}
	fmt.Fprintf(&b, "Skills: %s\n", join(req.Skills))
	fmt.Fprintf(&b, "Number of questions: %d\n", req.QuestionCount)
	fmt.Fprintf(&b, "Cognitive levels, lowest first: %s\n", join(exercise.AllCognitiveLevels()))
	fmt.Fprintf(&b, "Question types: %s\n", join(exercise.AllQuestionTypes()))

	b.WriteString("\nWords to practise:\n")
	if len(req.TargetWords) == 0 {
		b.WriteString("Any words suitable for the level")
	} else {
		b.WriteString(strings.Join(req.TargetWords, ", "))
	}
	return b.String()
}

func join[T ~string](items []T) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = string(it)
	}
	return strings.Join(parts, ", ")
}
