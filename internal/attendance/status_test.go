package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min, sec int) time.Time {
	return time.Date(2025, time.March, 10, hour, min, sec, 0, time.Local)
}

func TestStatusAtCheckIn(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"early morning", at(8, 0, 0), StatusPresent},
		{"just before cutoff", at(9, 29, 59), StatusPresent},
		{"exactly at cutoff", at(9, 30, 0), StatusPresent},
		{"one second past cutoff", at(9, 30, 1), StatusLate},
		{"one minute past cutoff", at(9, 31, 0), StatusLate},
		{"ten in the morning", at(10, 0, 0), StatusLate},
		{"midnight", at(0, 0, 0), StatusPresent},
		{"evening", at(18, 45, 0), StatusLate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusAtCheckIn(tc.now))
		})
	}
}

func TestRoundHours(t *testing.T) {
	assert.Equal(t, 8.0, roundHours(8*time.Hour))
	assert.Equal(t, 3.99, roundHours(3*time.Hour+59*time.Minute+24*time.Second))
	assert.Equal(t, 0.5, roundHours(30*time.Minute))
	// half-up at the second decimal
	assert.Equal(t, 0.01, roundHours(18*time.Second))
}

func TestStatusAtCheckOut(t *testing.T) {
	// under four hours always downgrades, even a late check-in
	assert.Equal(t, StatusHalfDay, statusAtCheckOut(StatusLate, 3.99))
	assert.Equal(t, StatusHalfDay, statusAtCheckOut(StatusPresent, 0))

	// exactly four hours keeps the check-in decision
	assert.Equal(t, StatusLate, statusAtCheckOut(StatusLate, 4.00))
	assert.Equal(t, StatusPresent, statusAtCheckOut(StatusPresent, 4.00))
	assert.Equal(t, StatusPresent, statusAtCheckOut(StatusPresent, 9.25))
}
