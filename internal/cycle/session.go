package cycle

import (
	"fmt"
	"time"
)

// TickInterval is the countdown resolution.
const TickInterval = time.Second

// DateLayout is the calendar date format passed to a Recorder.
const DateLayout = "2006-01-02"

// Handle identifies one repeating countdown. The zero Handle is never live.
type Handle uint64

// Scheduler runs a repeating countdown until it is cancelled.
type Scheduler interface {
	ScheduleRepeating(interval time.Duration) Handle
	Cancel(h Handle)
}

// Recorder stores a completed work interval.
type Recorder interface {
	Append(date string, minutes int) error
}

// TickResult describes what one countdown tick did.
type TickResult struct {
	Remaining int
	Completed bool

	// Set only when Completed.
	Finished    Kind
	Recorded    bool
	Next        Kind
	NextSeconds int
}

// Session drives a Controller with a Scheduler and logs finished work
// intervals through a Recorder. It holds at most one live countdown.
type Session struct {
	ctrl  *Controller
	sched Scheduler
	rec   Recorder
	now   func() time.Time

	live Handle
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the clock used to date log records.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func NewSession(ctrl *Controller, sched Scheduler, rec Recorder, opts ...Option) *Session {
	if ctrl == nil {
		ctrl = NewController()
	}
	s := &Session{
		ctrl:  ctrl,
		sched: sched,
		rec:   rec,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the controller state.
func (s *Session) State() State {
	return s.ctrl.State()
}

// Live reports whether h is the countdown currently running.
func (s *Session) Live(h Handle) bool {
	return h != 0 && h == s.live
}

// Running reports whether a countdown is scheduled.
func (s *Session) Running() bool {
	return s.live != 0
}

// Start advances to the next interval and begins counting it down,
// replacing any countdown already running.
func (s *Session) Start() (Kind, int) {
	s.stop()
	kind, secs := s.ctrl.Advance()
	s.live = s.sched.ScheduleRepeating(TickInterval)
	return kind, secs
}

// Reset stops the countdown and returns the cycle to idle.
func (s *Session) Reset() {
	s.stop()
	s.ctrl.Reset()
}

// Tick handles one countdown tick. When the interval finishes, a work
// interval is recorded with its nominal length and the next interval is
// started. A recording failure does not stop the cycle; it is returned
// after the next interval has been started.
func (s *Session) Tick() (TickResult, error) {
	remaining, done := s.ctrl.Tick()
	if !done {
		return TickResult{Remaining: remaining}, nil
	}

	finished := s.ctrl.State().Kind
	s.stop()

	res := TickResult{Completed: true, Finished: finished}
	var err error
	if finished == Work && s.rec != nil {
		date := s.now().Format(DateLayout)
		if err = s.rec.Append(date, WorkMinutes); err != nil {
			err = fmt.Errorf("record work session: %w", err)
		} else {
			res.Recorded = true
		}
	}

	res.Next, res.NextSeconds = s.Start()
	res.Remaining = res.NextSeconds
	return res, err
}

func (s *Session) stop() {
	if s.live != 0 {
		s.sched.Cancel(s.live)
		s.live = 0
	}
}
