// Package cycle decides which interval comes next in a pomodoro cycle and
// counts it down.
package cycle

import "fmt"

const (
	WorkMinutes       = 25
	ShortBreakMinutes = 5
	LongBreakMinutes  = 15

	// LongBreakEvery is the repetition count period of the long break.
	// With work on odd counts this gives four work intervals per long break.
	LongBreakEvery = 8
)

// Kind is the classification of an interval.
type Kind int

const (
	Idle Kind = iota
	Work
	ShortBreak
	LongBreak
)

var kindNames = map[Kind]string{
	Idle:       "IDLE",
	Work:       "WORK",
	ShortBreak: "SHORT BREAK",
	LongBreak:  "LONG BREAK",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Label is the text shown in the interval display.
func (k Kind) Label() string {
	switch k {
	case Work:
		return "WORK"
	case ShortBreak, LongBreak:
		return "BREAK"
	default:
		return "IDLE"
	}
}

// IsBreak reports whether k is either break kind.
func (k Kind) IsBreak() bool {
	return k == ShortBreak || k == LongBreak
}

// State is the full mutable state of a cycle.
type State struct {
	Reps      int
	Kind      Kind
	Remaining int // seconds
}

// Classify returns the interval kind and its length in seconds for a
// repetition count.
func Classify(reps int) (Kind, int) {
	switch {
	case reps%LongBreakEvery == 0:
		return LongBreak, LongBreakMinutes * 60
	case reps%2 == 0:
		return ShortBreak, ShortBreakMinutes * 60
	default:
		return Work, WorkMinutes * 60
	}
}

// Controller owns one cycle State. The zero value is an idle cycle.
type Controller struct {
	state State
}

func NewController() *Controller {
	return &Controller{}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// Advance moves to the next interval and returns its kind and length.
func (c *Controller) Advance() (Kind, int) {
	c.state.Reps++
	kind, secs := Classify(c.state.Reps)
	c.state.Kind = kind
	c.state.Remaining = secs
	return kind, secs
}

// Reset returns the controller to the idle state.
func (c *Controller) Reset() {
	c.state = State{Kind: Idle}
}

// Tick counts one second off the active interval. It reports completed
// once the interval has no time left; remaining is never negative.
func (c *Controller) Tick() (remaining int, completed bool) {
	if c.state.Remaining > 0 {
		c.state.Remaining--
	}
	if c.state.Remaining == 0 {
		return 0, true
	}
	return c.state.Remaining, false
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
