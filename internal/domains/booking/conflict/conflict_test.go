package conflict_test

import (
	"net/http"
	"rental/internal/domains/booking/conflict"
	"rental/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse(time.DateOnly, value)
	assert.NoError(t, err)

	return parsed
}

func span(t *testing.T, id, start, end string) conflict.Range {
	t.Helper()

	return conflict.Range{ID: id, Start: date(t, start), End: date(t, end)}
}

func TestValidateDates(t *testing.T) {
	assert.NoError(t, conflict.ValidateDates(date(t, "2024-05-01"), date(t, "2024-05-01")))

	err := conflict.ValidateDates(date(t, "2024-05-01"), date(t, "2024-05-03"))
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	err = conflict.ValidateDates(date(t, "2024-05-02"), date(t, "2024-05-01"))
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestRange_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b conflict.Range
		want bool
	}{
		{"same day", span(t, "", "2024-05-01", "2024-05-01"), span(t, "", "2024-05-01", "2024-05-01"), true},
		{"next day", span(t, "", "2024-05-02", "2024-05-02"), span(t, "", "2024-05-01", "2024-05-01"), false},
		{"previous day", span(t, "", "2024-04-30", "2024-04-30"), span(t, "", "2024-05-01", "2024-05-01"), false},
		{"inside a longer range", span(t, "", "2024-05-02", "2024-05-02"), span(t, "", "2024-05-01", "2024-05-03"), true},
		{"touching the end bound", span(t, "", "2024-05-03", "2024-05-03"), span(t, "", "2024-05-01", "2024-05-03"), true},
		{"touching the start bound", span(t, "", "2024-05-01", "2024-05-01"), span(t, "", "2024-05-01", "2024-05-03"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestRange_OverlapsIgnoresTimeOfDay(t *testing.T) {
	riyadh := time.FixedZone("AST", 3*60*60)

	a := conflict.Range{Start: time.Date(2024, 5, 1, 23, 0, 0, 0, riyadh), End: time.Date(2024, 5, 1, 23, 0, 0, 0, riyadh)}
	b := span(t, "", "2024-05-01", "2024-05-01")

	assert.True(t, a.Overlaps(b))
}

func TestCheck(t *testing.T) {
	existing := []conflict.Range{
		span(t, "b-1", "2024-05-01", "2024-05-01"),
		span(t, "b-2", "2024-05-05", "2024-05-05"),
	}

	t.Run("free day", func(t *testing.T) {
		assert.NoError(t, conflict.Check(span(t, "", "2024-05-02", "2024-05-02"), existing))
	})

	t.Run("taken day names the conflicting range", func(t *testing.T) {
		err := conflict.Check(span(t, "", "2024-05-01", "2024-05-01"), existing)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Contains(t, err.Error(), "2024-05-01 to 2024-05-01")
	})

	t.Run("update keeps its own day", func(t *testing.T) {
		assert.NoError(t, conflict.Check(span(t, "b-1", "2024-05-01", "2024-05-01"), existing))
	})

	t.Run("update onto another booking", func(t *testing.T) {
		err := conflict.Check(span(t, "b-1", "2024-05-05", "2024-05-05"), existing)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("no existing bookings", func(t *testing.T) {
		assert.NoError(t, conflict.Check(span(t, "", "2024-05-01", "2024-05-01"), nil))
	})
}

func TestValidate(t *testing.T) {
	existing := []conflict.Range{span(t, "b-1", "2024-05-01", "2024-05-01")}

	t.Run("multi day is a validation error even when it also overlaps", func(t *testing.T) {
		err := conflict.Validate(span(t, "", "2024-05-01", "2024-05-03"), existing)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("sequence of the scenario", func(t *testing.T) {
		var stored []conflict.Range

		first := span(t, "a", "2024-05-01", "2024-05-01")
		assert.NoError(t, conflict.Validate(first, stored))
		stored = append(stored, first)

		second := span(t, "", "2024-05-01", "2024-05-01")
		assert.Equal(t, http.StatusConflict, failure.GetCode(conflict.Validate(second, stored)))

		third := span(t, "c", "2024-05-02", "2024-05-02")
		assert.NoError(t, conflict.Validate(third, stored))
	})
}
