// Package conflict holds the booking date rules: one day per booking and no
// two bookings of a unit on intersecting inclusive date ranges.
package conflict

import (
	"fmt"
	"rental/shared/constant"
	"rental/shared/failure"
	"time"
)

// Range is the stored or requested date span of a booking. Both bounds are inclusive.
type Range struct {
	ID    string    `db:"id"`
	Start time.Time `db:"start_date"`
	End   time.Time `db:"end_date"`
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (r Range) String() string {
	return fmt.Sprintf("%s to %s", r.Start.Format(constant.DateOnlyFormat), r.End.Format(constant.DateOnlyFormat))
}

// Overlaps uses the inclusive test a.start <= b.end AND a.end >= b.start on calendar days.
func (r Range) Overlaps(other Range) bool {
	return !day(r.Start).After(day(other.End)) && !day(r.End).Before(day(other.Start))
}

// ValidateDates rejects anything but a single day booking.
func ValidateDates(start, end time.Time) error {
	if !day(start).Equal(day(end)) {
		return failure.BadRequestFromString("booking is allowed for a single day only: end date must equal start date")
	}

	return nil
}

// Check fails with a conflict naming the first existing range that intersects the candidate.
// The candidate's own id is skipped so an unchanged update passes.
func Check(candidate Range, existing []Range) error {
	for _, other := range existing {
		if candidate.ID != constant.Empty && other.ID == candidate.ID {
			continue
		}

		if candidate.Overlaps(other) {
			return failure.Conflict("date range conflict with an existing booking from " + other.String())
		}
	}

	return nil
}

// Validate runs the single day rule before the overlap check.
func Validate(candidate Range, existing []Range) error {
	if err := ValidateDates(candidate.Start, candidate.End); err != nil {
		return err
	}

	return Check(candidate, existing)
}
