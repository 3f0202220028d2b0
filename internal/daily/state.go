package daily

import (
	"time"

	"github.com/abhisek/lexis/internal/exercise"
	"github.com/abhisek/lexis/internal/vocab"
)

// KV keys used by the controller.
const (
	StreakKey    = "daily:streak"
	ChallengeKey = "daily:challenge"
)

// StreakState is the persisted streak record.
type StreakState struct {
	Streak            int    `json:"streak"`
	LastCompletedDate Date   `json:"lastCompletedDate,omitempty"`
	TodayChallengeID  string `json:"todayChallengeId,omitempty"`
	IsTodayCompleted  bool   `json:"isTodayCompleted"`

	BestStreak     int      `json:"bestStreak"`
	TotalCompleted int      `json:"totalCompleted"`
	LastScore      *float64 `json:"lastScore,omitempty"`
}

// Challenge is one day's generated exercise.
type Challenge struct {
	ID        string             `json:"id"`
	Date      Date               `json:"date"`
	Words     []vocab.Word       `json:"words"`
	Exercise  *exercise.Exercise `json:"exercise"`
	CreatedAt time.Time          `json:"createdAt"`
}

// ChallengeID returns the id of the challenge for d.
func ChallengeID(d Date) string {
	return "daily-" + string(d)
}
