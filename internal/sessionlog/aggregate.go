package sessionlog

// DailyAggregate is minutes worked per date, ordered by the first
// appearance of each date in the log.
type DailyAggregate struct {
	dates   []string
	minutes map[string]int
}

// Aggregate sums records by date.
func Aggregate(records []Record) DailyAggregate {
	a := DailyAggregate{minutes: make(map[string]int)}
	for _, r := range records {
		if _, ok := a.minutes[r.Date]; !ok {
			a.dates = append(a.dates, r.Date)
		}
		a.minutes[r.Date] += r.Minutes
	}
	return a
}

// Dates returns the dates in first-seen order.
func (a DailyAggregate) Dates() []string {
	out := make([]string, len(a.dates))
	copy(out, a.dates)
	return out
}

// Values returns the totals in the same order as Dates.
func (a DailyAggregate) Values() []int {
	out := make([]int, len(a.dates))
	for i, d := range a.dates {
		out[i] = a.minutes[d]
	}
	return out
}

// Minutes returns the total for date and whether the date was logged.
func (a DailyAggregate) Minutes(date string) (int, bool) {
	m, ok := a.minutes[date]
	return m, ok
}

func (a DailyAggregate) Len() int {
	return len(a.dates)
}

// Total is the sum over all dates.
func (a DailyAggregate) Total() int {
	total := 0
	for _, m := range a.minutes {
		total += m
	}
	return total
}

// Map returns a copy of the totals keyed by date.
func (a DailyAggregate) Map() map[string]int {
	out := make(map[string]int, len(a.minutes))
	for d, m := range a.minutes {
		out[d] = m
	}
	return out
}
