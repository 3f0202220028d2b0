package session

import (
	"sync"
	"time"
)

// Countdown thresholds in seconds.
const (
	WarningThreshold = 180
	DangerThreshold  = 60
)

// TimerEventKind identifies a countdown notification.
type TimerEventKind int

const (
	TimerTick    TimerEventKind = iota // Remaining decremented
	TimerWarning                       // Crossed WarningThreshold
	TimerDanger                        // Crossed DangerThreshold
	TimerExpired                       // Reached zero; emitted once per countdown
)

// TimerEvent is emitted by a running countdown. Gen identifies the
// countdown that produced it so stale events can be told apart.
type TimerEvent struct {
	Kind      TimerEventKind
	Remaining int
	Gen       uint64
}

// Ticker is the subset of time.Ticker the Timer needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewRealTicker wraps time.NewTicker.
func NewRealTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// Timer is a single countdown. Starting a new countdown cancels the
// previous one, so at most one handle is ever active. The Timer knows
// nothing about sessions; it only emits TimerEvents to its listener.
type Timer struct {
	mu        sync.Mutex
	newTicker TickerFunc
	interval  time.Duration
	listener  func(TimerEvent)

	handle    *timerHandle
	gen       uint64
	remaining int
}

type timerHandle struct {
	gen      uint64
	stop     chan struct{}
	once     sync.Once
	warned   bool
	dangered bool
}

func (h *timerHandle) cancel() {
	h.once.Do(func() { close(h.stop) })
}

// NewTimer creates an idle timer. newTicker may be nil to use real
// one-second ticks.
func NewTimer(listener func(TimerEvent), newTicker TickerFunc) *Timer {
	if newTicker == nil {
		newTicker = NewRealTicker
	}
	return &Timer{
		newTicker: newTicker,
		interval:  time.Second,
		listener:  listener,
	}
}

// Start cancels any running countdown and begins a new one from seconds.
// It returns the generation of the new countdown.
func (t *Timer) Start(seconds int) uint64 {
	t.mu.Lock()
	if t.handle != nil {
		t.handle.cancel()
	}
	t.gen++
	h := &timerHandle{gen: t.gen, stop: make(chan struct{})}
	t.handle = h
	t.remaining = seconds
	tk := t.newTicker(t.interval)
	t.mu.Unlock()

	go t.run(h, tk)
	return h.gen
}

// Stop cancels the running countdown. Stopping an idle timer is a no-op.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.handle != nil {
		t.handle.cancel()
		t.handle = nil
	}
}

// running reports whether a countdown is active.
func (t *Timer) running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.handle != nil
}

// Remaining returns the seconds left on the current or last countdown.
func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

func (t *Timer) run(h *timerHandle, tk Ticker) {
	defer tk.Stop()
	for {
		select {
		case <-h.stop:
			return
		case <-tk.C():
			events, done := t.tick(h)
			for _, ev := range events {
				if t.listener != nil {
					t.listener(ev)
				}
			}
			if done {
				return
			}
		}
	}
}

// tick decrements the countdown owned by h and returns the events to emit.
// Events are dispatched by the caller after the lock is released so a
// listener may call back into Stop.
func (t *Timer) tick(h *timerHandle) ([]TimerEvent, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.handle != h {
		return nil, true
	}

	t.remaining--
	if t.remaining < 0 {
		t.remaining = 0
	}
	rem := t.remaining

	events := []TimerEvent{{Kind: TimerTick, Remaining: rem, Gen: h.gen}}
	if rem <= WarningThreshold && !h.warned {
		h.warned = true
		events = append(events, TimerEvent{Kind: TimerWarning, Remaining: rem, Gen: h.gen})
	}
	if rem <= DangerThreshold && !h.dangered {
		h.dangered = true
		events = append(events, TimerEvent{Kind: TimerDanger, Remaining: rem, Gen: h.gen})
	}
	if rem == 0 {
		h.cancel()
		t.handle = nil
		events = append(events, TimerEvent{Kind: TimerExpired, Remaining: 0, Gen: h.gen})
		return events, true
	}
	return events, false
}
