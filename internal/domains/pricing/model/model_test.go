package model_test

import (
	"rental/internal/domains/pricing/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayOfWeek(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2024-04-29", 0}, // Monday
		{"2024-05-01", 2},
		{"2024-05-04", 5},
		{"2024-05-05", 6}, // Sunday
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			date, err := time.Parse(time.DateOnly, tt.date)
			assert.NoError(t, err)

			assert.Equal(t, tt.want, model.DayOfWeek(date))
		})
	}
}
