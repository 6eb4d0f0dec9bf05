// Package availability turns raw survey answers into structured
// shift-eligibility per day.
package availability

import (
	"strings"

	"github.com/mhalland/barvakt/pkg/core/model"
)

// CannotWorkSentinel is the survey phrase meaning the respondent cannot
// work that day at all. Its presence overrides any time-range labels in
// the same cell.
const CannotWorkSentinel = "Kan ikke jobbe denne dagen"

// DayAvailability is the set of shifts a member marked workable on one day
type DayAvailability struct {
	Day    int
	Shifts []model.ShiftKind
}

// ParseCell extracts the shift kinds marked in a single survey cell.
// Each standard shift contributes when its literal time-range label
// appears in the text. The restricted kind is dropped on restricted days
// even if its label is present; the validator re-enforces this later.
// The morning shift never appears in cell text, it has its own opt-in
// column handled by ForResponse.
func ParseCell(cell string, day model.CalendarDay) []model.ShiftKind {
	if cell == "" || strings.Contains(cell, CannotWorkSentinel) {
		return nil
	}

	var shifts []model.ShiftKind
	for _, kind := range model.StandardShiftKinds {
		if !strings.Contains(cell, model.ShiftSpecs[kind].TimeRange) {
			continue
		}
		if kind == model.RestrictedShiftKind && day.IsRestricted {
			continue
		}
		shifts = append(shifts, kind)
	}
	return shifts
}

// ForResponse builds a member's availability list from their survey row.
// cells maps day-of-month to the raw cell text; morningOptIn holds the
// per-date morning answers; morningDates are the dates the form offered a
// morning shift at all. Only days with a non-empty shift set are
// retained, in calendar order.
func ForResponse(
	days []model.CalendarDay,
	cells map[int]string,
	morningOptIn map[int]bool,
	morningDates map[int]bool,
) []DayAvailability {
	entries := make([]DayAvailability, 0, len(cells))

	for _, day := range days {
		cell, answered := cells[day.Day]
		if !answered && !morningOptIn[day.Day] {
			continue
		}

		shifts := ParseCell(cell, day)
		if morningDates[day.Day] && morningOptIn[day.Day] {
			shifts = append([]model.ShiftKind{model.ShiftMorning}, shifts...)
		}

		if len(shifts) > 0 {
			entries = append(entries, DayAvailability{Day: day.Day, Shifts: shifts})
		}
	}

	return entries
}

// Includes reports whether the availability list records the given kind
// on the given day
func Includes(entries []DayAvailability, day int, kind model.ShiftKind) bool {
	for _, entry := range entries {
		if entry.Day != day {
			continue
		}
		for _, shift := range entry.Shifts {
			if shift == kind {
				return true
			}
		}
	}
	return false
}
