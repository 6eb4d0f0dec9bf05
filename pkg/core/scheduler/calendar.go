package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/mhalland/barvakt/pkg/core/model"
)

// Month names as they appear on the survey form
var monthNames = map[time.Month]string{
	time.January:   "January",
	time.February:  "February",
	time.March:     "March",
	time.April:     "April",
	time.May:       "May",
	time.June:      "June",
	time.July:      "July",
	time.August:    "August",
	time.September: "September",
	time.October:   "October",
	time.November:  "November",
	time.December:  "Desember",
}

// MonthName returns the display name for the month
func MonthName(month time.Month) string {
	return monthNames[month]
}

// MonthAbbrev returns the lowercase three-letter abbreviation used in the
// survey's date labels, e.g. "des" for Desember
func MonthAbbrev(month time.Month) string {
	return strings.ToLower(monthNames[month][:3])
}

// DateLabel formats a day-of-month the way the survey labels dates,
// e.g. "4. des"
func DateLabel(day int, month time.Month) string {
	return fmt.Sprintf("%d. %s", day, MonthAbbrev(month))
}

// BuildCalendar derives the calendar days for every date of the month.
// Saturdays and Sundays are weekends; Mondays are restricted days.
func BuildCalendar(year int, month time.Month) []model.CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	var days []model.CalendarDay
	for date := first; date.Month() == month; date = date.AddDate(0, 0, 1) {
		weekday := date.Weekday()
		days = append(days, model.CalendarDay{
			Day:          date.Day(),
			Date:         date,
			Weekday:      weekday,
			IsWeekend:    weekday == time.Saturday || weekday == time.Sunday,
			IsRestricted: weekday == time.Monday,
		})
	}
	return days
}

// DayByNumber looks up a calendar day by day-of-month
func DayByNumber(days []model.CalendarDay, dayNumber int) (model.CalendarDay, bool) {
	for _, day := range days {
		if day.Day == dayNumber {
			return day, true
		}
	}
	return model.CalendarDay{}, false
}

// Workdays filters the period down to non-weekend days, order preserved
func Workdays(days []model.CalendarDay) []model.CalendarDay {
	workdays := make([]model.CalendarDay, 0, len(days))
	for _, day := range days {
		if !day.IsWeekend {
			workdays = append(workdays, day)
		}
	}
	return workdays
}
