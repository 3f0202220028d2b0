package session

import (
	"sync"
	"testing"
	"time"

	"github.com/abhisek/lexis/internal/exercise"
)

type fakeTicker struct {
	ch chan time.Time
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()               {}

// tickers hands out manually driven tickers and remembers them in order.
type tickers struct {
	mu  sync.Mutex
	all []*fakeTicker
}

func (s *tickers) New(time.Duration) Ticker {
	s.mu.Lock()
	defer s.mu.Unlock()
	ft := &fakeTicker{ch: make(chan time.Time)}
	s.all = append(s.all, ft)
	return ft
}

func (s *tickers) get(i int) *fakeTicker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.all[i]
}

// fire delivers one tick, reporting false if nobody received it.
func (f *fakeTicker) fire() bool {
	select {
	case f.ch <- time.Now():
		return true
	case <-time.After(200 * time.Millisecond):
		return false
	}
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func testExercise() *exercise.Exercise {
	return &exercise.Exercise{
		ID:    "ex-1",
		Title: "Travel vocabulary",
		Level: "B1",
		Sections: []exercise.Section{
			{
				Title:          "Words",
				Skill:          exercise.SkillVocabulary,
				CognitiveLevel: exercise.LevelRemember,
				Questions: []exercise.Question{
					{ID: "q1", Type: exercise.TypeMultipleChoice, Prompt: "A trip by sea", Options: []string{"voyage", "flight"}, CorrectAnswer: "voyage", Hints: []string{"starts with v"}},
					{ID: "q2", Type: exercise.TypeFillBlank, Prompt: "I ___ to Rome.", CorrectAnswer: "flew"},
				},
			},
			{
				Title:          "Grammar",
				Skill:          exercise.SkillGrammar,
				CognitiveLevel: exercise.LevelApply,
				Questions: []exercise.Question{
					{ID: "q3", Type: exercise.TypeTrueFalse, Prompt: "'Luggages' is correct.", CorrectAnswer: "False"},
				},
			},
		},
	}
}

func collect(s *Session) <-chan Event {
	ch := make(chan Event, 256)
	s.Subscribe(func(ev Event) { ch <- ev })
	return ch
}

func waitFor(t *testing.T, ch <-chan Event, kind EventKind) Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-ch:
			if ev.Kind == kind {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s event", kind)
			return Event{}
		}
	}
}
