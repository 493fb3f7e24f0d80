package attendance

import "time"

// Aggregations are pure functions over record slices; the service decides
// which slice the store should hand them.

type Summary struct {
	Present    int     `json:"present"`
	Late       int     `json:"late"`
	HalfDay    int     `json:"halfDay"`
	TotalHours float64 `json:"totalHours"`
}

// MonthlySummary counts statuses and sums hours over the records whose date
// falls in (year, month). The month is taken from the date value itself, not
// from any creation timestamp. A nil TotalHours counts as zero.
func MonthlySummary(records []AttendanceRecord, year int, month time.Month) Summary {
	var s Summary
	for _, r := range records {
		d, err := time.Parse(DateLayout, r.Date)
		if err != nil {
			continue
		}
		if d.Year() != year || d.Month() != month {
			continue
		}

		switch r.Status {
		case StatusPresent:
			s.Present++
		case StatusLate:
			s.Late++
		case StatusHalfDay:
			s.HalfDay++
		}
		if r.TotalHours != nil {
			s.TotalHours += *r.TotalHours
		}
	}
	return s
}

type FleetCounts struct {
	PresentToday int `json:"presentToday"`
	LateToday    int `json:"lateToday"`
}

// DailyFleetCounts tallies today's statuses across the fleet. Half-day is
// not reported at fleet level.
func DailyFleetCounts(todayRecords []AttendanceRecord) FleetCounts {
	var f FleetCounts
	for _, r := range todayRecords {
		switch r.Status {
		case StatusPresent:
			f.PresentToday++
		case StatusLate:
			f.LateToday++
		}
	}
	return f
}

type LifetimeTotals struct {
	TotalDays  int     `json:"totalDays"`
	TotalHours float64 `json:"totalHours"`
}

// Lifetime sums a user's full history, unscoped by month.
func Lifetime(records []AttendanceRecord) LifetimeTotals {
	totals := LifetimeTotals{TotalDays: len(records)}
	for _, r := range records {
		if r.TotalHours != nil {
			totals.TotalHours += *r.TotalHours
		}
	}
	return totals
}
