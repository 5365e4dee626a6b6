package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/pomolog/internal/cycle"
)

// teaScheduler implements cycle.Scheduler on top of tea.Tick. Every
// countdown gets a new id; ticks carrying any other id are stale and get
// dropped, which is how a countdown is cancelled.
type teaScheduler struct {
	next     cycle.Handle
	live     cycle.Handle
	interval time.Duration

	// Commands produced by ScheduleRepeating, handed to the runtime by
	// drain after each state change.
	pending []tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{}
}

func (s *teaScheduler) ScheduleRepeating(interval time.Duration) cycle.Handle {
	s.next++
	s.live = s.next
	s.interval = interval
	s.pending = append(s.pending, s.tick(s.live))
	return s.live
}

func (s *teaScheduler) Cancel(h cycle.Handle) {
	if h == s.live {
		s.live = 0
	}
}

// rearm schedules the next tick of a still-live countdown.
func (s *teaScheduler) rearm(h cycle.Handle) tea.Cmd {
	if h == 0 || h != s.live {
		return nil
	}
	return s.tick(h)
}

func (s *teaScheduler) drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// clear drops pending commands without handing them to the runtime.
func (s *teaScheduler) clear() {
	s.pending = nil
}

func (s *teaScheduler) tick(id cycle.Handle) tea.Cmd {
	return tea.Tick(s.interval, func(t time.Time) tea.Msg {
		return tickMsg{id: id, at: t}
	})
}
