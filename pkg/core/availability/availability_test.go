package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhalland/barvakt/pkg/core/model"
)

// December 2024: Monday the 2nd, Tuesday the 3rd, Saturday the 7th
func day(dayOfMonth int) model.CalendarDay {
	date := time.Date(2024, time.December, dayOfMonth, 0, 0, 0, 0, time.UTC)
	return model.CalendarDay{
		Day:          dayOfMonth,
		Date:         date,
		Weekday:      date.Weekday(),
		IsWeekend:    date.Weekday() == time.Saturday || date.Weekday() == time.Sunday,
		IsRestricted: date.Weekday() == time.Monday,
	}
}

func TestParseCell_TimeRangeLabels(t *testing.T) {
	shifts := ParseCell("12:30-17:00, 16:50-20:30", day(3))

	assert.Equal(t, []model.ShiftKind{model.ShiftOpening, model.ShiftMiddle}, shifts)
}

func TestParseCell_SentinelOverridesLabels(t *testing.T) {
	cell := "Kan ikke jobbe denne dagen, 12:30-17:00"

	assert.Empty(t, ParseCell(cell, day(3)))
}

func TestParseCell_EmptyCell(t *testing.T) {
	assert.Empty(t, ParseCell("", day(3)))
}

func TestParseCell_RestrictedDayDropsClosing(t *testing.T) {
	// The closing label is ignored on Mondays even when present
	cell := "12:30-17:00, 20:20-00:30"

	shifts := ParseCell(cell, day(2))

	assert.Equal(t, []model.ShiftKind{model.ShiftOpening}, shifts)

	// Same cell on a Tuesday keeps the closing shift
	shifts = ParseCell(cell, day(3))
	assert.Equal(t, []model.ShiftKind{model.ShiftOpening, model.ShiftClosing}, shifts)
}

func TestForResponse_OnlyNonEmptyDaysRetained(t *testing.T) {
	days := []model.CalendarDay{day(3), day(4), day(5)}
	cells := map[int]string{
		3: "12:30-17:00",
		4: "Kan ikke jobbe denne dagen",
		5: "20:20-00:30",
	}

	entries := ForResponse(days, cells, nil, nil)

	require.Len(t, entries, 2)
	assert.Equal(t, 3, entries[0].Day)
	assert.Equal(t, []model.ShiftKind{model.ShiftOpening}, entries[0].Shifts)
	assert.Equal(t, 5, entries[1].Day)
	assert.Equal(t, []model.ShiftKind{model.ShiftClosing}, entries[1].Shifts)
}

func TestForResponse_MorningOptIn(t *testing.T) {
	days := []model.CalendarDay{day(3), day(4)}
	cells := map[int]string{3: "12:30-17:00", 4: "12:30-17:00"}
	morningOptIn := map[int]bool{3: true, 4: true}
	morningDates := map[int]bool{3: true} // the form only offered the 3rd

	entries := ForResponse(days, cells, morningOptIn, morningDates)

	require.Len(t, entries, 2)
	assert.Equal(t, []model.ShiftKind{model.ShiftMorning, model.ShiftOpening}, entries[0].Shifts,
		"opt-in only counts on offered dates")
	assert.Equal(t, []model.ShiftKind{model.ShiftOpening}, entries[1].Shifts)
}

func TestForResponse_MorningOptInAlone(t *testing.T) {
	// A day with no availability cell but a morning opt-in still yields
	// an entry
	days := []model.CalendarDay{day(5)}

	entries := ForResponse(days, map[int]string{}, map[int]bool{5: true}, map[int]bool{5: true})

	require.Len(t, entries, 1)
	assert.Equal(t, []model.ShiftKind{model.ShiftMorning}, entries[0].Shifts)
}

func TestIncludes(t *testing.T) {
	entries := []DayAvailability{
		{Day: 3, Shifts: []model.ShiftKind{model.ShiftOpening}},
	}

	assert.True(t, Includes(entries, 3, model.ShiftOpening))
	assert.False(t, Includes(entries, 3, model.ShiftMiddle))
	assert.False(t, Includes(entries, 4, model.ShiftOpening))
}
