package session

// EventKind identifies a session notification.
type EventKind string

const (
	EventProgress     EventKind = "progress"
	EventTimerTick    EventKind = "timer_tick"
	EventTimerWarning EventKind = "timer_warning"
	EventTimerDanger  EventKind = "timer_danger"
	EventSubmitted    EventKind = "submitted"
)

// Event is delivered to subscribers after the state change it describes.
// Subscribers run on the goroutine that caused the change and must not
// block.
type Event struct {
	Kind       EventKind
	ExerciseID string
	Progress   Progress
	Remaining  int
	Submission *Submission
}

// Listener receives session events.
type Listener func(Event)
