package tui

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/pomolog/internal/cycle"
)

// workPerLongBreak is the number of work intervals in one full cycle.
const workPerLongBreak = cycle.LongBreakEvery / 2

type pomodoroModel struct {
	session *cycle.Session
	sched   *teaScheduler
	bell    bool
	bellOut io.Writer

	width  int
	height int

	progress progress.Model
}

func newPomodoroModel(rec cycle.Recorder, bell bool) pomodoroModel {
	sched := newTeaScheduler()
	return pomodoroModel{
		session:  cycle.NewSession(cycle.NewController(), sched, rec),
		sched:    sched,
		bell:     bell,
		bellOut:  os.Stdout,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (p *pomodoroModel) setSize(w, h int) {
	p.width = w
	p.height = h
	p.progress.Width = max(w-16, 10)
}

func (p pomodoroModel) state() cycle.State {
	return p.session.State()
}

func (p pomodoroModel) update(msg tea.Msg) (pomodoroModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !p.session.Live(msg.id) {
			return p, nil
		}
		return p.tick(msg.id)
	}
	return p, nil
}

func (p pomodoroModel) start() (pomodoroModel, tea.Cmd) {
	kind, secs := p.session.Start()
	log.Printf("start: %s for %s (rep %d)", kind, cycle.FormatClock(secs), p.state().Reps)
	return p, p.sched.drain()
}

func (p pomodoroModel) reset() (pomodoroModel, tea.Cmd) {
	p.session.Reset()
	p.sched.clear()
	log.Printf("reset")
	return p, func() tea.Msg {
		return statusMsg{text: "Timer reset"}
	}
}

func (p pomodoroModel) tick(id cycle.Handle) (pomodoroModel, tea.Cmd) {
	res, err := p.session.Tick()
	if !res.Completed {
		return p, p.sched.rearm(id)
	}

	log.Printf("completed %s, next %s (recorded=%t)", res.Finished, res.Next, res.Recorded)
	cmds := []tea.Cmd{p.sched.drain()}
	if err != nil {
		log.Printf("record: %v", err)
		cmds = append(cmds, func() tea.Msg { return errorStatus("Could not log session", err) })
		return p, tea.Batch(cmds...)
	}

	text := "Back to work!"
	if res.Next.IsBreak() {
		text = "Break time!"
	}
	cmds = append(cmds, func() tea.Msg { return statusMsg{text: text} })
	if p.bell {
		cmds = append(cmds, p.ring())
	}
	return p, tea.Batch(cmds...)
}

// ring writes the terminal bell once, outside the rendered view.
func (p pomodoroModel) ring() tea.Cmd {
	out := p.bellOut
	return func() tea.Msg {
		fmt.Fprint(out, "\a")
		return nil
	}
}

// workDone is the number of finished work intervals in the current cycle
// of four.
func (p pomodoroModel) workDone() int {
	st := p.state()
	if st.Kind == cycle.Idle {
		return 0
	}
	done := st.Reps / 2
	if st.Kind == cycle.LongBreak {
		return workPerLongBreak
	}
	return done % workPerLongBreak
}

func (p pomodoroModel) view() string {
	w := inset(p.width, 4)
	st := p.state()

	title := titleStyle.Render("Pomodoro Timer")

	var timeDisplay, phaseLabel, indicator string
	switch st.Kind {
	case cycle.Idle:
		timeDisplay = timerStyle.Width(inset(w, 6)).Render(cycle.FormatClock(cycle.WorkMinutes * 60))
		phaseLabel = mutedStyle.Render(st.Kind.Label())
		indicator = mutedStyle.Render("Press s to begin")
	case cycle.Work:
		timeDisplay = accentStyle.Bold(true).Width(inset(w, 6)).Align(lipgloss.Center).Render(cycle.FormatClock(st.Remaining))
		phaseLabel = accentStyle.Bold(true).Render(st.Kind.Label())
		indicator = p.renderProgress()
	case cycle.ShortBreak:
		timeDisplay = successStyle.Bold(true).Width(inset(w, 6)).Align(lipgloss.Center).Render(cycle.FormatClock(st.Remaining))
		phaseLabel = successStyle.Bold(true).Render(st.Kind.Label())
		indicator = p.renderProgress()
	case cycle.LongBreak:
		timeDisplay = highlightStyle.Bold(true).Width(inset(w, 6)).Align(lipgloss.Center).Render(cycle.FormatClock(st.Remaining))
		phaseLabel = highlightStyle.Bold(true).Render(st.Kind.Label())
		indicator = p.renderProgress()
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		phaseLabel,
		timeDisplay,
		"",
		indicator,
	)

	var controls string
	if st.Kind == cycle.Idle {
		controls = mutedStyle.Render("s: start  g: graph  q: quit")
	} else {
		controls = mutedStyle.Render("s: skip  r: reset  g: graph")
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}

func (p pomodoroModel) renderProgress() string {
	st := p.state()
	_, total := cycle.Classify(st.Reps)
	elapsed := 0.0
	if total > 0 {
		elapsed = float64(total-st.Remaining) / float64(total)
	}
	bar := p.progress.ViewAs(elapsed)

	done := p.workDone()
	var parts []string
	for i := 0; i < workPerLongBreak; i++ {
		switch {
		case i < done:
			parts = append(parts, successStyle.Render("●"))
		case i == done && st.Kind == cycle.Work:
			parts = append(parts, accentStyle.Render("◐"))
		default:
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	dots := strings.Join(parts, " ")
	counter := mutedStyle.Render(fmt.Sprintf("  %d/%d  %s", done, workPerLongBreak, st.Kind))
	return lipgloss.JoinVertical(lipgloss.Center, bar, "", dots+counter)
}
