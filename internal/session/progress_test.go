package session

import (
	"testing"

	"github.com/abhisek/lexis/internal/exercise"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name     string
		p        Progress
		complete bool
		fraction float64
	}{
		{"empty exercise", Progress{0, 0}, true, 0},
		{"none answered", Progress{0, 4}, false, 0},
		{"half", Progress{2, 4}, false, 0.5},
		{"all", Progress{4, 4}, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Complete(); got != tt.complete {
				t.Errorf("Complete() = %v, want %v", got, tt.complete)
			}
			if got := tt.p.Fraction(); got != tt.fraction {
				t.Errorf("Fraction() = %v, want %v", got, tt.fraction)
			}
		})
	}
}

func TestAnswerStore(t *testing.T) {
	a := NewAnswerStore()
	a.Set("q1", exercise.Text("x"))
	a.Set("q2", exercise.Text(""))

	if a.size() != 2 {
		t.Errorf("size = %d, want 2", a.size())
	}
	if a.AnsweredCount() != 1 {
		t.Errorf("AnsweredCount = %d, want 1", a.AnsweredCount())
	}
	snap := a.Snapshot()
	a.Reset()
	if a.size() != 0 || len(snap) != 2 {
		t.Errorf("Reset affected snapshot: len(store)=%d len(snap)=%d", a.size(), len(snap))
	}
}
