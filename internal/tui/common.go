package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/pomolog/internal/cycle"
	"github.com/sadopc/pomolog/internal/sessionlog"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewGraph
)

var viewNames = []string{"Timer", "Graph"}

// --- Messages ---

// tickMsg is one countdown tick for the countdown identified by id.
type tickMsg struct {
	id cycle.Handle
	at time.Time
}

type statusMsg struct {
	text    string
	isError bool
}

type graphDataMsg struct {
	agg sessionlog.DailyAggregate
	err error
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatMinutes(mins int) string {
	h := mins / 60
	m := mins % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", h, m)
}

// inset shrinks a width by pad columns without going below zero.
func inset(width, pad int) int {
	return max(width-pad, 0)
}

func errorStatus(prefix string, err error) statusMsg {
	return statusMsg{text: fmt.Sprintf("%s: %v", prefix, err), isError: true}
}
