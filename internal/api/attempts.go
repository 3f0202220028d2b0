package api

import (
	"sync"
	"time"

	"github.com/abhisek/lexis/internal/grading"
	"github.com/abhisek/lexis/internal/session"
)

// Attempt status values reported by GET /attempts/:id.
const (
	StatusInProgress = "in_progress"
	StatusGrading    = "grading"
	StatusGraded     = "graded"
)

// attempt is one session served over HTTP.
type attempt struct {
	id        string
	session   *session.Session
	createdAt time.Time

	mu       sync.Mutex
	claimed  bool
	result   *grading.Result
	gradedAt time.Time
}

// claim reports whether the caller is the first to grade a.
func (a *attempt) claim() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.claimed {
		return false
	}
	a.claimed = true
	return true
}

func (a *attempt) setResult(res *grading.Result, at time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.result = res
	a.gradedAt = at
}

func (a *attempt) view() attemptView {
	a.mu.Lock()
	res := a.result
	a.mu.Unlock()

	phase := a.session.Phase()
	status := StatusInProgress
	switch {
	case res != nil:
		status = StatusGraded
	case phase == session.PhaseSubmitted:
		status = StatusGrading
	}

	v := attemptView{
		AttemptID:        a.id,
		Phase:            phase.String(),
		Status:           status,
		Progress:         a.session.Progress(),
		RemainingSeconds: a.session.Remaining(),
		Result:           res,
	}
	if ex := a.session.Exercise(); ex != nil {
		v.ExerciseID = ex.ID
	}
	return v
}

// expired reports whether a may be dropped from the registry.
func (a *attempt) expired(now time.Time, gradedTTL, idleTTL time.Duration) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.result != nil {
		return now.Sub(a.gradedAt) > gradedTTL
	}
	return now.Sub(a.createdAt) > idleTTL
}

type attemptView struct {
	AttemptID        string           `json:"attemptId"`
	ExerciseID       string           `json:"exerciseId"`
	Phase            string           `json:"phase"`
	Status           string           `json:"status"`
	Progress         session.Progress `json:"progress"`
	RemainingSeconds int              `json:"remainingSeconds"`
	Result           *grading.Result  `json:"result,omitempty"`
}

// registry holds live attempts by id.
type registry struct {
	mu    sync.RWMutex
	items map[string]*attempt
}

func newRegistry() *registry {
	return &registry{items: make(map[string]*attempt)}
}

func (r *registry) put(a *attempt) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[a.id] = a
}

func (r *registry) get(id string) (*attempt, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[id]
	return a, ok
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// sweep drops expired attempts, stopping their countdowns, and returns
// how many were removed.
func (r *registry) sweep(now time.Time, gradedTTL, idleTTL time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, a := range r.items {
		if a.expired(now, gradedTTL, idleTTL) {
			a.session.Close()
			delete(r.items, id)
			n++
		}
	}
	return n
}
