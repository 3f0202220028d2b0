package daily

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/lexis/internal/exercise"
	"github.com/abhisek/lexis/internal/vocab"
)

const distractorCount = 3

// archetype cycles by question position.
type archetype int

const (
	archDefinition archetype = iota
	archFillBlank
	archTrueFalse
	archetypeCount
)

// Generate builds the challenge exercise for date. It picks
// min(wordCount, len(pool)) distinct words at random and emits one
// question per word, capped at maxQuestions.
func Generate(date Date, pool []vocab.Word, wordCount, maxQuestions int, rng *rand.Rand) (*exercise.Exercise, []vocab.Word, error) {
	pool = vocab.Dedupe(pool)
	if len(pool) == 0 {
		return nil, nil, fmt.Errorf("generate daily challenge: %w", vocab.ErrNoWords)
	}

	n := min(wordCount, len(pool))
	words := make([]vocab.Word, 0, n)
	for _, i := range rng.Perm(len(pool))[:n] {
		words = append(words, pool[i])
	}

	questions := make([]exercise.Question, 0, min(n, maxQuestions))
	for pos, w := range words {
		if len(questions) >= maxQuestions {
			break
		}
		id := fmt.Sprintf("d%d", pos+1)
		switch archetype(pos % int(archetypeCount)) {
		case archDefinition:
			questions = append(questions, definitionQuestion(id, w, pool, rng))
		case archFillBlank:
			questions = append(questions, fillBlankQuestion(id, w))
		case archTrueFalse:
			questions = append(questions, trueFalseQuestion(id, w))
		}
	}

	ex := &exercise.Exercise{
		ID:          ChallengeID(date),
		Title:       "Daily Challenge " + string(date),
		Description: fmt.Sprintf("%d words for %s", len(words), date),
		Sections: []exercise.Section{{
			Title:          "Daily Vocabulary",
			Skill:          exercise.SkillVocabulary,
			CognitiveLevel: exercise.LevelRemember,
			Instructions:   "Answer each question about today's words.",
			Questions:      questions,
		}},
	}
	prepared, err := exercise.Prepare(ex)
	if err != nil {
		return nil, nil, fmt.Errorf("generate daily challenge: %w", err)
	}
	return prepared, words, nil
}

func definitionQuestion(id string, w vocab.Word, pool []vocab.Word, rng *rand.Rand) exercise.Question {
	options := []string{w.Definition}
	for _, i := range rng.Perm(len(pool)) {
		if len(options) > distractorCount {
			break
		}
		other := pool[i]
		if strings.EqualFold(other.Word, w.Word) || other.Definition == w.Definition {
			continue
		}
		options = append(options, other.Definition)
	}
	rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	return exercise.Question{
		ID:            id,
		Type:          exercise.TypeMultipleChoice,
		Prompt:        fmt.Sprintf("What does %q mean?", w.Word),
		Options:       options,
		Points:        1,
		CorrectAnswer: w.Definition,
		TargetWords:   []string{w.Word},
		Explanation:   w.Example,
	}
}

func fillBlankQuestion(id string, w vocab.Word) exercise.Question {
	first, _ := utf8.DecodeRuneInString(w.Word)
	return exercise.Question{
		ID:            id,
		Type:          exercise.TypeFillBlank,
		Prompt:        fmt.Sprintf("Fill in the blank: ____ means %q.", w.Definition),
		Points:        1,
		CorrectAnswer: w.Word,
		TargetWords:   []string{w.Word},
		Hints: []string{
			fmt.Sprintf("Starts with %q", string(first)),
			fmt.Sprintf("%d letters", utf8.RuneCountInString(w.Word)),
		},
		Explanation: w.Example,
	}
}

// The statement holds for every pool word, so the answer is always True.
func trueFalseQuestion(id string, w vocab.Word) exercise.Question {
	return exercise.Question{
		ID:            id,
		Type:          exercise.TypeTrueFalse,
		Prompt:        fmt.Sprintf("%q is a common English word.", w.Word),
		Options:       []string{"True", "False"},
		Points:        1,
		CorrectAnswer: "True",
		TargetWords:   []string{w.Word},
	}
}
