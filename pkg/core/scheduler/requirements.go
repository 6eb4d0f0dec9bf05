package scheduler

import (
	"time"

	"github.com/mhalland/barvakt/pkg/core/model"
)

// RequirementTable resolves the required headcount for a (day, shift)
// slot. Lookup order: per-date override, weekday table, the shift kind's
// global default. The restricted shift has requirement 0 on restricted
// days, matching its not-offered slot.
type RequirementTable struct {
	weekday map[time.Weekday]map[model.ShiftKind]int
	perDate map[int]map[model.ShiftKind]int
}

// NewRequirementTable builds the base weekday table. The morning shift is
// absent until EnableMorning raises it for weekdays with offered dates.
func NewRequirementTable() *RequirementTable {
	defaults := func(kinds ...model.ShiftKind) map[model.ShiftKind]int {
		reqs := make(map[model.ShiftKind]int, len(kinds))
		for _, kind := range kinds {
			reqs[kind] = model.ShiftSpecs[kind].DefaultStaff
		}
		return reqs
	}

	return &RequirementTable{
		weekday: map[time.Weekday]map[model.ShiftKind]int{
			time.Monday: {
				model.ShiftOpening: 2,
				model.ShiftMiddle:  2,
				model.ShiftClosing: 0,
			},
			time.Tuesday:   defaults(model.StandardShiftKinds...),
			time.Wednesday: defaults(model.StandardShiftKinds...),
			time.Thursday: {
				model.ShiftOpening: 2,
				model.ShiftMiddle:  2,
				model.ShiftClosing: 2,
			},
			time.Friday: defaults(model.StandardShiftKinds...),
		},
		perDate: make(map[int]map[model.ShiftKind]int),
	}
}

// EnableMorning raises the morning requirement to its default for every
// weekday that has at least one offered morning date. Weekdays without an
// offered date keep no morning entry at all.
func (t *RequirementTable) EnableMorning(days []model.CalendarDay, morningDates map[int]bool) {
	for _, day := range days {
		if !morningDates[day.Day] {
			continue
		}
		reqs, ok := t.weekday[day.Weekday]
		if !ok {
			continue
		}
		reqs[model.ShiftMorning] = model.ShiftSpecs[model.ShiftMorning].DefaultStaff
	}
}

// SetDateOverride pins the requirement for one specific date and kind,
// taking precedence over the weekday table
func (t *RequirementTable) SetDateOverride(day int, kind model.ShiftKind, staff int) {
	if _, ok := t.perDate[day]; !ok {
		t.perDate[day] = make(map[model.ShiftKind]int)
	}
	t.perDate[day][kind] = staff
}

// Requirement returns the required headcount for the slot
func (t *RequirementTable) Requirement(day model.CalendarDay, kind model.ShiftKind) int {
	if overrides, ok := t.perDate[day.Day]; ok {
		if staff, ok := overrides[kind]; ok {
			return staff
		}
	}
	if reqs, ok := t.weekday[day.Weekday]; ok {
		if staff, ok := reqs[kind]; ok {
			return staff
		}
	}
	return model.ShiftSpecs[kind].DefaultStaff
}
