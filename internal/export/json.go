package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/pomolog/internal/cycle"
	"github.com/sadopc/pomolog/internal/sessionlog"
)

type jsonExport struct {
	ExportedAt   string    `json:"exported_at"`
	Count        int       `json:"count"`
	TotalMinutes int       `json:"total_minutes"`
	Days         []jsonDay `json:"days"`
}

type jsonDay struct {
	Date      string `json:"date"`
	Minutes   int    `json:"minutes"`
	Duration  string `json:"duration"`
	Pomodoros int    `json:"pomodoros"`
}

func ToJSON(agg sessionlog.DailyAggregate, path string) error {
	export := jsonExport{
		ExportedAt:   time.Now().UTC().Format(time.RFC3339),
		Count:        agg.Len(),
		TotalMinutes: agg.Total(),
	}

	dates, values := agg.Dates(), agg.Values()
	for i, date := range dates {
		export.Days = append(export.Days, jsonDay{
			Date:      date,
			Minutes:   values[i],
			Duration:  formatMinutes(values[i]),
			Pomodoros: pomodoros(values[i]),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// pomodoros is the number of full work intervals in mins.
func pomodoros(mins int) int {
	return mins / cycle.WorkMinutes
}
