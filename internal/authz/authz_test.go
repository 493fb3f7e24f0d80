package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilityTable(t *testing.T) {
	e, err := NewEnforcer()
	require.NoError(t, err)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"employee can check in", "employee", "attendance", "checkin", true},
		{"manager cannot check in", "manager", "attendance", "checkin", false},
		{"employee can check out", "employee", "attendance", "checkout", true},
		{"manager can check out", "manager", "attendance", "checkout", true},
		{"employee cannot read all records", "employee", "attendance", "read_all", false},
		{"manager can read all records", "manager", "attendance", "read_all", true},
		{"employee cannot export", "employee", "attendance", "export", false},
		{"manager can export", "manager", "attendance", "export", true},
		{"employee cannot read fleet dashboard", "employee", "dashboard", "read_fleet", false},
		{"manager can read fleet dashboard", "manager", "dashboard", "read_fleet", true},
		{"unknown role gets nothing", "intern", "attendance", "read_self", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := e.Enforce(tc.role, tc.resource, tc.action)
			require.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}
