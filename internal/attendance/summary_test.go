package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func rec(date, status string, hours *float64) AttendanceRecord {
	return AttendanceRecord{Date: date, Status: status, TotalHours: hours}
}

func hoursPtr(v float64) *float64 { return &v }

func TestMonthlySummary(t *testing.T) {
	records := []AttendanceRecord{
		rec("2025-03-03", StatusPresent, hoursPtr(8)),
		rec("2025-03-04", StatusPresent, hoursPtr(8.5)),
		rec("2025-03-05", StatusPresent, nil), // still open, counts with zero hours
		rec("2025-03-06", StatusLate, hoursPtr(7)),
		rec("2025-03-07", StatusLate, hoursPtr(6.5)),
		rec("2025-03-10", StatusHalfDay, hoursPtr(3.5)),

		// different month, must not count
		rec("2025-02-03", StatusPresent, hoursPtr(8)),
		rec("2025-02-04", StatusLate, hoursPtr(8)),
		rec("2025-04-01", StatusPresent, hoursPtr(8)),
		rec("2024-03-03", StatusPresent, hoursPtr(8)),
	}

	s := MonthlySummary(records, 2025, time.March)

	assert.Equal(t, 3, s.Present)
	assert.Equal(t, 2, s.Late)
	assert.Equal(t, 1, s.HalfDay)
	assert.InDelta(t, 33.5, s.TotalHours, 1e-9)
}

func TestMonthlySummary_SkipsUnparsableDates(t *testing.T) {
	records := []AttendanceRecord{
		rec("not-a-date", StatusPresent, hoursPtr(8)),
		rec("2025-03-03", StatusPresent, hoursPtr(8)),
	}

	s := MonthlySummary(records, 2025, time.March)
	assert.Equal(t, 1, s.Present)
	assert.InDelta(t, 8, s.TotalHours, 1e-9)
}

func TestDailyFleetCounts(t *testing.T) {
	records := []AttendanceRecord{
		rec("2025-03-10", StatusPresent, nil),
		rec("2025-03-10", StatusPresent, nil),
		rec("2025-03-10", StatusLate, nil),
		// half-day is not surfaced at fleet level
		rec("2025-03-10", StatusHalfDay, hoursPtr(2)),
	}

	f := DailyFleetCounts(records)
	assert.Equal(t, 2, f.PresentToday)
	assert.Equal(t, 1, f.LateToday)
}

func TestLifetime(t *testing.T) {
	records := []AttendanceRecord{
		rec("2025-02-03", StatusPresent, hoursPtr(8)),
		rec("2025-03-04", StatusLate, hoursPtr(7.25)),
		rec("2025-03-05", StatusPresent, nil),
	}

	totals := Lifetime(records)
	assert.Equal(t, 3, totals.TotalDays)
	assert.InDelta(t, 15.25, totals.TotalHours, 1e-9)

	empty := Lifetime(nil)
	assert.Equal(t, 0, empty.TotalDays)
	assert.Zero(t, empty.TotalHours)
}
