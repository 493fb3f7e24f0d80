package attendance

import (
	"math"
	"time"
)

// Check-ins after 09:30 local time are late. The cutoff is a fixed rule of
// the system, not configuration.
const (
	lateCutoffHour   = 9
	lateCutoffMinute = 30
)

// halfDayThresholdHours: a closed day with fewer recorded hours than this is
// downgraded to half-day. Exactly 4.00 hours is a full day.
const halfDayThresholdHours = 4.0

// statusAtCheckIn decides present vs late from the check-in instant.
// The comparison is strict: 09:30:00.000 exactly is still present,
// 09:30:01 is late.
func statusAtCheckIn(now time.Time) string {
	cutoff := time.Date(now.Year(), now.Month(), now.Day(),
		lateCutoffHour, lateCutoffMinute, 0, 0, now.Location())
	if now.After(cutoff) {
		return StatusLate
	}
	return StatusPresent
}

// roundHours converts a worked duration to hours rounded half-up to two
// decimal places, matching the wire precision of total_hours.
func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}

// statusAtCheckOut applies the half-day override. It replaces the check-in
// status entirely; a late day under the threshold loses its late marker.
func statusAtCheckOut(checkInStatus string, totalHours float64) string {
	if totalHours < halfDayThresholdHours {
		return StatusHalfDay
	}
	return checkInStatus
}
