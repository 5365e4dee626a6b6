package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/pomolog/internal/config"
	"github.com/sadopc/pomolog/internal/cycle"
	"github.com/sadopc/pomolog/internal/export"
	"github.com/sadopc/pomolog/internal/sessionlog"
)

// event is a named user action.
type event int

const (
	eventStart event = iota
	eventReset
	eventShowGraph
	eventExport
	eventHelp
	eventQuit
)

// handlers maps each user action to what it does. Key bindings are
// resolved to an event first, then dispatched through this table.
var handlers = map[event]func(App) (App, tea.Cmd){
	eventStart:     App.start,
	eventReset:     App.requestReset,
	eventShowGraph: App.toggleGraph,
	eventExport:    App.openExportPicker,
	eventHelp:      App.toggleHelp,
	eventQuit:      App.quit,
}

var eventBindings = []struct {
	ev      event
	binding key.Binding
}{
	{eventStart, keys.Start},
	{eventReset, keys.Reset},
	{eventShowGraph, keys.Graph},
	{eventExport, keys.Export},
	{eventHelp, keys.Help},
	{eventQuit, keys.Quit},
}

// App is the root Bubble Tea model.
type App struct {
	log    *sessionlog.Log
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int
	exportDir     string

	// Reset confirmation, shown only while a work interval is running.
	formActive   bool
	form         *huh.Form
	confirmReset *bool

	pomodoro pomodoroModel
	graph    graphModel

	help          help.Model
	status        string
	statusIsError bool
}

func NewApp(l *sessionlog.Log, cfg config.UIConfig) App {
	h := help.New()
	h.ShowAll = false

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	confirm := false

	return App{
		log:          l,
		activeView:   viewTimer,
		exportDir:    home,
		confirmReset: &confirm,
		pomodoro:     newPomodoroModel(l, cfg.Bell),
		graph:        newGraphModel(l, cfg.ChartHeight),
		help:         h,
	}
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.pomodoro.setSize(a.width, contentHeight)
		a.graph.setSize(a.width, contentHeight)
		return a, nil

	case tickMsg:
		// Ticks keep flowing whatever view or dialog is on screen.
		var cmd tea.Cmd
		a.pomodoro, cmd = a.pomodoro.update(msg)
		return a, cmd

	case graphDataMsg:
		var cmd tea.Cmd
		a.graph, cmd = a.graph.update(msg)
		return a, cmd

	case statusMsg:
		a.status = msg.text
		a.statusIsError = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusIsError = false
		return a, nil
	}

	if a.formActive && a.form != nil {
		return a.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}
		if a.activeView == viewGraph && key.Matches(msg, keys.Back) {
			a.activeView = viewTimer
			return a, nil
		}
		for _, eb := range eventBindings {
			if key.Matches(msg, eb.binding) {
				return a.dispatch(eb.ev)
			}
		}
	}
	return a, nil
}

func (a App) dispatch(ev event) (tea.Model, tea.Cmd) {
	h, ok := handlers[ev]
	if !ok {
		return a, nil
	}
	return h(a)
}

func (a App) start() (App, tea.Cmd) {
	var cmd tea.Cmd
	a.pomodoro, cmd = a.pomodoro.start()
	a.activeView = viewTimer
	a.status = ""
	return a, cmd
}

// requestReset resets straight away unless a work interval is running, in
// which case it asks first since that interval will not be logged.
func (a App) requestReset() (App, tea.Cmd) {
	st := a.pomodoro.state()
	if st.Kind != cycle.Work || !a.pomodoro.session.Running() {
		return a.reset()
	}

	*a.confirmReset = false
	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reset the timer?").
				Description(fmt.Sprintf("%s left in this work interval; it will not be logged.", cycle.FormatClock(st.Remaining))).
				Affirmative("Reset").
				Negative("Keep going").
				Value(a.confirmReset),
		),
	).WithShowHelp(true)
	a.formActive = true
	return a, a.form.Init()
}

func (a App) reset() (App, tea.Cmd) {
	var cmd tea.Cmd
	a.pomodoro, cmd = a.pomodoro.reset()
	return a, cmd
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.Back) {
		a.formActive = false
		a.form = nil
		return a, nil
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a.formActive = false
		a.form = nil
		if *a.confirmReset {
			return a.reset()
		}
		return a, nil
	case huh.StateAborted:
		a.formActive = false
		a.form = nil
		return a, nil
	}
	return a, cmd
}

func (a App) toggleGraph() (App, tea.Cmd) {
	if a.activeView == viewGraph {
		a.activeView = viewTimer
		return a, nil
	}
	a.activeView = viewGraph
	return a, a.graph.refresh()
}

func (a App) toggleHelp() (App, tea.Cmd) {
	a.showHelp = !a.showHelp
	a.help.ShowAll = a.showHelp
	return a, nil
}

func (a App) quit() (App, tea.Cmd) {
	a.pomodoro.session.Reset()
	return a, tea.Quit
}

func (a App) openExportPicker() (App, tea.Cmd) {
	a.exportPicking = true
	a.exportCursor = 0
	return a, nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTimer:
		content = a.pomodoro.view()
	case viewGraph:
		content = a.graph.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}
	if a.formActive && a.form != nil {
		content = activePanelStyle.Width(inset(a.width, 4)).Render(a.form.View())
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("pomolog")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusIsError {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	timerInfo := ""
	if st := a.pomodoro.state(); st.Kind != cycle.Idle {
		timerInfo = successStyle.Render(fmt.Sprintf(" ● %s %s", st.Kind.Label(), cycle.FormatClock(st.Remaining)))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var exportFormats = []string{"CSV", "JSON"}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Daily Totals")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := inset(a.width, 4)
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	l, dir := a.log, a.exportDir
	return func() tea.Msg {
		agg, err := l.AggregateByDate()
		if err != nil {
			return errorStatus("Export error", err)
		}

		dateStr := time.Now().Format(cycle.DateLayout)

		var path string
		if format == 0 {
			path = filepath.Join(dir, fmt.Sprintf("pomolog-export-%s.csv", dateStr))
			if err := export.ToCSV(agg, path); err != nil {
				return errorStatus("CSV error", err)
			}
		} else {
			path = filepath.Join(dir, fmt.Sprintf("pomolog-export-%s.json", dateStr))
			if err := export.ToJSON(agg, path); err != nil {
				return errorStatus("JSON error", err)
			}
		}

		return exportDoneMsg{path: path}
	}
}
