// Package report renders the daily aggregate as plain text for terminals
// and pipes.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/sadopc/pomolog/internal/sessionlog"
)

const (
	// DefaultWidth is used when the output is not a terminal.
	DefaultWidth = 80
	minBarWidth  = 10
	barRune      = "█"
)

// Write prints a table of minutes per day, each row with a bar scaled to
// the busiest day, followed by a total line.
func Write(w io.Writer, title string, agg sessionlog.DailyAggregate, width int) error {
	if width <= 0 {
		width = DefaultWidth
	}

	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if agg.Len() == 0 {
		_, err := fmt.Fprintln(w, "No sessions logged yet")
		return err
	}

	dates, values := agg.Dates(), agg.Values()
	dateW := runewidth.StringWidth("Date")
	peak := 0
	for i, d := range dates {
		dateW = max(dateW, runewidth.StringWidth(d))
		peak = max(peak, values[i])
	}
	minW := max(runewidth.StringWidth("Minutes"), len(fmt.Sprint(peak)))

	barW := max(width-dateW-minW-4, minBarWidth)

	header := pad("Date", dateW) + "  " + padLeft("Minutes", minW)
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("─", min(width, runewidth.StringWidth(header)+barW+2))); err != nil {
		return err
	}
	for i, d := range dates {
		n := 0
		if peak > 0 {
			n = values[i] * barW / peak
		}
		line := pad(d, dateW) + "  " + padLeft(fmt.Sprint(values[i]), minW) + "  " + strings.Repeat(barRune, n)
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Total: %d minutes over %d days\n", agg.Total(), agg.Len())
	return err
}

func pad(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}

func padLeft(s string, w int) string {
	return runewidth.FillLeft(runewidth.Truncate(s, w, "…"), w)
}
