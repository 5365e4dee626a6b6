package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sadopc/pomolog/internal/sessionlog"
)

// ToCSV writes one row per day with the minutes worked and the same total
// as hours:minutes.
func ToCSV(agg sessionlog.DailyAggregate, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	// Header
	if err := w.Write([]string{"Date", "Minutes", "Duration", "Pomodoros"}); err != nil {
		return err
	}

	dates, values := agg.Dates(), agg.Values()
	for i, date := range dates {
		row := []string{
			date,
			strconv.Itoa(values[i]),
			formatMinutes(values[i]),
			strconv.Itoa(pomodoros(values[i])),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatMinutes(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}
