package period_test

import (
	"rental/internal/domains/report/period"
	"rental/shared/constant"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOf(t *testing.T) {
	tests := []struct {
		name string
		kind string
		date string
		from string
		to   string
		ok   bool
	}{
		{name: "daily", kind: period.Daily, date: "2024-05-15", from: "2024-05-15", to: "2024-05-15", ok: true},
		{name: "weekly from wednesday", kind: period.Weekly, date: "2024-05-15", from: "2024-05-13", to: "2024-05-19", ok: true},
		{name: "weekly from monday", kind: period.Weekly, date: "2024-05-13", from: "2024-05-13", to: "2024-05-19", ok: true},
		{name: "weekly from sunday", kind: period.Weekly, date: "2024-05-19", from: "2024-05-13", to: "2024-05-19", ok: true},
		{name: "weekly across months", kind: period.Weekly, date: "2024-06-01", from: "2024-05-27", to: "2024-06-02", ok: true},
		{name: "monthly", kind: period.Monthly, date: "2024-02-10", from: "2024-02-01", to: "2024-02-29", ok: true},
		{name: "monthly december", kind: period.Monthly, date: "2024-12-31", from: "2024-12-01", to: "2024-12-31", ok: true},
		{name: "all", kind: period.All, date: "2024-05-15"},
		{name: "empty kind", kind: "", date: "2024-05-15"},
		{name: "unknown kind", kind: "yearly", date: "2024-05-15"},
		{name: "malformed date", kind: period.Daily, date: "15/05/2024"},
		{name: "missing date", kind: period.Monthly, date: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, ok := period.Of(tt.kind, tt.date)

			assert.Equal(t, tt.ok, ok)

			if tt.ok {
				assert.Equal(t, tt.from, window.From.Format(constant.DateOnlyFormat))
				assert.Equal(t, tt.to, window.To.Format(constant.DateOnlyFormat))
			}
		})
	}
}
