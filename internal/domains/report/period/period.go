// Package period maps a report type and an anchor date to an inclusive date window.
package period

import (
	"rental/shared/constant"
	"time"
)

const (
	All     = "all"
	Daily   = "daily"
	Weekly  = "weekly"
	Monthly = "monthly"
)

type Window struct {
	From time.Time
	To   time.Time
}

// Of returns the window of kind containing date. Weeks run Monday to Sunday.
// ok is false for "all", unknown kinds and malformed dates, meaning no period filter.
func Of(kind, date string) (Window, bool) {
	if kind == All || kind == constant.Empty {
		return Window{}, false
	}

	day, err := time.Parse(constant.DateOnlyFormat, date)
	if err != nil {
		return Window{}, false
	}

	switch kind {
	case Daily:
		return Window{From: day, To: day}, true
	case Weekly:
		from := day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))

		return Window{From: from, To: from.AddDate(0, 0, 6)}, true
	case Monthly:
		from := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)

		return Window{From: from, To: from.AddDate(0, 1, -1)}, true
	default:
		return Window{}, false
	}
}
