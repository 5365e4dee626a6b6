package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sadopc/pomolog/internal/sessionlog"
)

func TestWrite(t *testing.T) {
	agg := sessionlog.Aggregate([]sessionlog.Record{
		{Date: "2024-01-01", Minutes: 25},
		{Date: "2024-01-02", Minutes: 50},
		{Date: "2024-01-01", Minutes: 25},
	})

	var buf bytes.Buffer
	if err := Write(&buf, "Daily Pomodoro Work Minutes", agg, 40); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")

	// title, header, rule, 2 rows, total
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), out)
	}
	if lines[0] != "Daily Pomodoro Work Minutes" {
		t.Fatalf("unexpected title %q", lines[0])
	}
	if !strings.HasPrefix(lines[3], "2024-01-01") || !strings.HasPrefix(lines[4], "2024-01-02") {
		t.Fatalf("rows out of order:\n%s", out)
	}
	// Both days total 50 minutes, so their bars match.
	if strings.Count(lines[3], barRune) != strings.Count(lines[4], barRune) {
		t.Fatalf("expected equal bars:\n%s", out)
	}
	if strings.Count(lines[3], barRune) == 0 {
		t.Fatal("expected a non-empty bar")
	}
	if !strings.Contains(out, "Total: 100 minutes over 2 days") {
		t.Fatalf("missing total line:\n%s", out)
	}
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "T", sessionlog.DailyAggregate{}, 0); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No sessions logged yet") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestWriteScalesToPeak(t *testing.T) {
	agg := sessionlog.Aggregate([]sessionlog.Record{
		{Date: "2024-01-01", Minutes: 100},
		{Date: "2024-01-02", Minutes: 25},
	})

	var buf bytes.Buffer
	if err := Write(&buf, "T", agg, 61); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	big := strings.Count(lines[3], barRune)
	small := strings.Count(lines[4], barRune)
	if big != 4*small {
		t.Fatalf("expected 4:1 bars, got %d:%d", big, small)
	}
}
