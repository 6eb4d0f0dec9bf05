package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCalendar_December2024(t *testing.T) {
	days := BuildCalendar(2024, time.December)

	require.Len(t, days, 31)
	assert.Equal(t, 1, days[0].Day)
	assert.Equal(t, 31, days[30].Day)

	// Dec 1 2024 is a Sunday, Dec 2 a Monday
	assert.True(t, days[0].IsWeekend)
	assert.False(t, days[0].IsRestricted)
	assert.False(t, days[1].IsWeekend)
	assert.True(t, days[1].IsRestricted)
	assert.Equal(t, time.Monday, days[1].Weekday)

	// Saturday the 7th
	assert.True(t, days[6].IsWeekend)
}

func TestWorkdays(t *testing.T) {
	days := BuildCalendar(2024, time.December)

	workdays := Workdays(days)

	// 31 days minus 9 weekend days
	assert.Len(t, workdays, 22)
	for _, day := range workdays {
		assert.False(t, day.IsWeekend)
	}
}

func TestDayByNumber(t *testing.T) {
	days := BuildCalendar(2024, time.December)

	day, ok := DayByNumber(days, 24)
	require.True(t, ok)
	assert.Equal(t, time.Tuesday, day.Weekday)

	_, ok = DayByNumber(days, 32)
	assert.False(t, ok)
}

func TestDateLabel(t *testing.T) {
	assert.Equal(t, "4. des", DateLabel(4, time.December))
	assert.Equal(t, "15. nov", DateLabel(15, time.November))
}
