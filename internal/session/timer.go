package session

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrActivityActive rejects a start while another countdown is running.
	ErrActivityActive = errors.New("another timed activity is already running")
	// ErrNotRunning rejects a cancel for an activity that is not counting down.
	ErrNotRunning = errors.New("activity is not running")
	// ErrAlreadyDone rejects a restart of an activity that finished this session.
	ErrAlreadyDone = errors.New("activity already finished")
)

// TimerState is the per-activity state machine: idle -> running -> done,
// with a running -> idle cancellation edge.
type TimerState string

const (
	TimerIdle    TimerState = "idle"
	TimerRunning TimerState = "running"
	TimerDone    TimerState = "done"
)

// Event is emitted once per countdown transition or tick. The server
// forwards these onto the session's SSE stream.
type Event struct {
	Type      string `json:"type"` // tick, done, cancelled
	QuestID   string `json:"questId"`
	Remaining int    `json:"remaining"`
}

// TimerStatus is a point-in-time view of one activity's countdown.
type TimerStatus struct {
	QuestID   string     `json:"questId"`
	State     TimerState `json:"state"`
	Remaining int        `json:"remaining"`
	StartedAt time.Time  `json:"startedAt,omitzero"`
}

type countdown struct {
	questID   string
	startedAt time.Time
	remaining int
	cancel    chan struct{}
	cancelled bool
}

// Controller runs timed activities for one session. It enforces the
// exclusivity invariant: at most one countdown may be running, tracked by a
// single active quest id. Cancellation is polled once per tick, so a
// request landing mid-second takes effect at the next tick boundary.
type Controller struct {
	tick time.Duration

	mu     sync.Mutex
	active *countdown
	done   map[string]bool
}

func NewController(tick time.Duration) *Controller {
	if tick <= 0 {
		tick = time.Second
	}
	return &Controller{
		tick: tick,
		done: make(map[string]bool),
	}
}

// Start begins a countdown of seconds for the quest id. publish receives
// tick/done/cancelled events; onExpire runs exactly once on natural expiry,
// after the state has advanced to done (a failing onExpire is the caller's
// problem to surface, never a rollback).
func (c *Controller) Start(questID string, seconds int, publish func(Event), onExpire func(questID string)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil {
		return ErrActivityActive
	}
	if c.done[questID] {
		return ErrAlreadyDone
	}
	if seconds <= 0 {
		return errors.New("countdown duration must be positive")
	}

	cd := &countdown{
		questID:   questID,
		startedAt: time.Now().UTC(),
		remaining: seconds,
		cancel:    make(chan struct{}),
	}
	c.active = cd

	go c.run(cd, publish, onExpire)
	return nil
}

func (c *Controller) run(cd *countdown, publish func(Event), onExpire func(string)) {
	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	for {
		<-ticker.C

		// Cancellation is only honored here, between seconds.
		select {
		case <-cd.cancel:
			c.mu.Lock()
			c.active = nil
			c.mu.Unlock()
			publish(Event{Type: "cancelled", QuestID: cd.questID, Remaining: cd.remaining})
			return
		default:
		}

		c.mu.Lock()
		cd.remaining--
		remaining := cd.remaining
		if remaining <= 0 {
			c.done[cd.questID] = true
			c.active = nil
		}
		c.mu.Unlock()

		if remaining > 0 {
			publish(Event{Type: "tick", QuestID: cd.questID, Remaining: remaining})
			continue
		}

		publish(Event{Type: "done", QuestID: cd.questID, Remaining: 0})
		onExpire(cd.questID)
		return
	}
}

// Cancel requests cancellation of the running countdown for the quest id.
// The request is honored at the next tick boundary; until then the
// countdown still holds the lock.
func (c *Controller) Cancel(questID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil || c.active.questID != questID {
		return ErrNotRunning
	}
	if !c.active.cancelled {
		c.active.cancelled = true
		close(c.active.cancel)
	}
	return nil
}

// CancelActive cancels whatever countdown is running, if any.
func (c *Controller) CancelActive() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil && !c.active.cancelled {
		c.active.cancelled = true
		close(c.active.cancel)
	}
}

// Active returns the quest id currently holding the exclusivity lock.
func (c *Controller) Active() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return ""
	}
	return c.active.questID
}

// Status reports the state machine position for one quest id.
func (c *Controller) Status(questID string) TimerStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil && c.active.questID == questID {
		return TimerStatus{
			QuestID:   questID,
			State:     TimerRunning,
			Remaining: c.active.remaining,
			StartedAt: c.active.startedAt,
		}
	}
	if c.done[questID] {
		return TimerStatus{QuestID: questID, State: TimerDone}
	}
	return TimerStatus{QuestID: questID, State: TimerIdle}
}
