package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/pomolog/internal/sessionlog"
)

const (
	graphTitle  = "Daily Pomodoro Work Minutes"
	graphXLabel = "Date"
	graphYLabel = "Minutes Spent Working"

	// barSlot is the horizontal space one day needs to stay readable.
	barSlot = 7
)

type graphModel struct {
	log    *sessionlog.Log
	width  int
	height int

	chartHeight int
	agg         sessionlog.DailyAggregate
	loaded      bool
	loadErr     error

	chart barchart.Model
}

func newGraphModel(l *sessionlog.Log, chartHeight int) graphModel {
	return graphModel{
		log:         l,
		chartHeight: chartHeight,
		chart:       barchart.New(60, chartHeight),
	}
}

func (g *graphModel) setSize(w, h int) {
	g.width = w
	g.height = h
	if g.loaded {
		g.buildChart()
	}
}

// refresh reads the log from disk; nothing is cached between requests.
func (g graphModel) refresh() tea.Cmd {
	l := g.log
	return func() tea.Msg {
		agg, err := l.AggregateByDate()
		return graphDataMsg{agg: agg, err: err}
	}
}

func (g graphModel) update(msg tea.Msg) (graphModel, tea.Cmd) {
	switch msg := msg.(type) {
	case graphDataMsg:
		if msg.err != nil {
			g.loaded = false
			g.loadErr = msg.err
			return g, func() tea.Msg { return errorStatus("Could not read session log", msg.err) }
		}
		g.agg = msg.agg
		g.loaded = true
		g.loadErr = nil
		g.buildChart()
		return g, nil
	}
	return g, nil
}

func (g graphModel) chartWidth() int {
	return max(g.width-8, 20)
}

// visible returns the dates and minutes that fit on screen, keeping the
// most recent ones.
func (g graphModel) visible() ([]string, []int) {
	dates, values := g.agg.Dates(), g.agg.Values()
	limit := max(g.chartWidth()/barSlot, 1)
	if len(dates) > limit {
		dates = dates[len(dates)-limit:]
		values = values[len(values)-limit:]
	}
	return dates, values
}

func (g *graphModel) buildChart() {
	g.chart = barchart.New(g.chartWidth(), g.chartHeight)

	dates, values := g.visible()
	if len(dates) == 0 {
		return
	}

	style := lipgloss.NewStyle().Foreground(colorSecondary)
	bars := make([]barchart.BarData, 0, len(dates))
	for i, d := range dates {
		bars = append(bars, barchart.BarData{
			Label: shortDate(d),
			Values: []barchart.BarValue{{
				Name:  d,
				Value: float64(values[i]),
				Style: style,
			}},
		})
	}

	g.chart.PushAll(bars)
	g.chart.Draw()
}

func (g graphModel) view() string {
	w := inset(g.width, 4)

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render(graphTitle), "  ", mutedStyle.Render(g.log.Path()),
	)

	if g.loadErr != nil {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header, "", errorStyle.Render("  Could not read session log"),
			mutedStyle.Render("  "+g.loadErr.Error()), "", mutedStyle.Render("  g/esc: back"),
		))
	}
	if !g.loaded {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header, "", mutedStyle.Render("  Loading..."),
		))
	}
	if g.agg.Len() == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header, "", mutedStyle.Render("  No sessions logged yet"), "", mutedStyle.Render("  esc: back"),
		))
	}

	dates, _ := g.visible()
	var note string
	if len(dates) < g.agg.Len() {
		note = mutedStyle.Render(fmt.Sprintf("  showing last %d of %d days", len(dates), g.agg.Len()))
	}

	axis := mutedStyle.Render(fmt.Sprintf("  x: %s   y: %s", graphXLabel, graphYLabel))
	total := highlightStyle.Render(fmt.Sprintf("  Total %s over %d days", formatMinutes(g.agg.Total()), g.agg.Len()))

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, axis, "", g.chart.View(), note, "", total, "", g.renderTable(w), "",
			mutedStyle.Render("  g/esc: back  e: export"),
		),
	)
}

func (g graphModel) renderTable(w int) string {
	dates, values := g.visible()

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %8s %10s", "Date", "Minutes", "Duration")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(inset(w, 6), 32))))
	for i, d := range dates {
		rows = append(rows, fmt.Sprintf("  %-12s %8d %10s", d, values[i], formatMinutes(values[i])))
	}
	return strings.Join(rows, "\n")
}

// shortDate trims a YYYY-MM-DD date to MM-DD for bar labels.
func shortDate(d string) string {
	if len(d) == len("2006-01-02") {
		return d[5:]
	}
	return d
}
