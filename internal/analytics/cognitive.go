package analytics

import "github.com/abhisek/lexis/internal/exercise"

// LevelCount counts questions at one cognitive level.
type LevelCount struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// CognitiveBreakdown maps each cognitive level present to its counts.
type CognitiveBreakdown map[exercise.CognitiveLevel]LevelCount

// CognitiveLevels counts correct and total questions per section level.
// Every question inherits its section's level.
func CognitiveLevels(ex *exercise.Exercise, outcomes map[string]Outcome) CognitiveBreakdown {
	out := make(CognitiveBreakdown)
	for _, s := range ex.Sections {
		c := out[s.CognitiveLevel]
		for _, q := range s.Questions {
			c.Total++
			if outcomeFor(q, outcomes).Correct {
				c.Correct++
			}
		}
		out[s.CognitiveLevel] = c
	}
	return out
}
