package model

import "time"

// ShiftKind identifies one of the daily shift blocks
type ShiftKind string

const (
	ShiftMorning ShiftKind = "morning"
	ShiftOpening ShiftKind = "opening"
	ShiftMiddle  ShiftKind = "middle"
	ShiftClosing ShiftKind = "closing"
)

// RestrictedShiftKind is the shift that never runs on restricted days (Mondays)
const RestrictedShiftKind = ShiftClosing

// AllShiftKinds lists every shift kind in display order
var AllShiftKinds = []ShiftKind{ShiftMorning, ShiftOpening, ShiftMiddle, ShiftClosing}

// StandardShiftKinds are the kinds offered to members without a survey
// response. The morning shift is opt-in per date and is never assigned blind.
var StandardShiftKinds = []ShiftKind{ShiftOpening, ShiftMiddle, ShiftClosing}

func (k ShiftKind) IsValid() bool {
	for _, kind := range AllShiftKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// ShiftSpec holds the static configuration for a shift kind
type ShiftSpec struct {
	// TimeRange is the literal label used on the survey form, e.g. "12:30-17:00"
	TimeRange string

	// Color is the cell fill used when rendering the schedule grid
	Color string

	// DefaultStaff is the fallback headcount when no weekday requirement applies
	DefaultStaff int
}

// ShiftSpecs is the static shift configuration, keyed by kind
var ShiftSpecs = map[ShiftKind]ShiftSpec{
	ShiftMorning: {TimeRange: "08:45-12:30", Color: "FFE4B5", DefaultStaff: 2},
	ShiftOpening: {TimeRange: "12:30-17:00", Color: "FFB4C6", DefaultStaff: 2},
	ShiftMiddle:  {TimeRange: "16:50-20:30", Color: "B4D7FF", DefaultStaff: 3},
	ShiftClosing: {TimeRange: "20:20-00:30", Color: "C6FFB4", DefaultStaff: 3},
}

// CalendarDay is one date of the scheduling period. Derived fields are
// fixed once the period is built.
type CalendarDay struct {
	// Day is the day-of-month
	Day int

	// Date is the full calendar date
	Date time.Time

	// Weekday of the date
	Weekday time.Weekday

	// IsWeekend is true for Saturday and Sunday; no shifts run on weekends
	IsWeekend bool

	// IsRestricted is true on Mondays, where the closing shift never runs
	IsRestricted bool
}

// NoMatchFound is the PossibleMatch value for review records without a candidate
const NoMatchFound = "No match found"

// ReviewRecord flags a survey name that needs human confirmation
type ReviewRecord struct {
	InputName     string
	PossibleMatch string
	Confidence    string
}
