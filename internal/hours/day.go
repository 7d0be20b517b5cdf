package hours

import (
	"strings"
	"time"
)

// Day is a weekday in Monday-first order.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysInWeek is the number of entries in a WeeklyHours.
const DaysInWeek = 7

var dayNames = [DaysInWeek]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// AllDays lists the week in canonical order.
var AllDays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// String returns the full English day name.
func (d Day) String() string {
	if !d.Valid() {
		return "Unknown"
	}
	return dayNames[d]
}

// Abbrev returns the 3-letter abbreviation used by the hours text format.
func (d Day) Abbrev() string {
	if !d.Valid() {
		return "???"
	}
	return dayNames[d][:3]
}

// Valid reports whether d is one of the seven weekdays.
func (d Day) Valid() bool {
	return d >= Monday && d <= Sunday
}

// DayOf converts a time.Weekday (Sunday = 0) to the Monday-first Day.
func DayOf(w time.Weekday) Day {
	if w == time.Sunday {
		return Sunday
	}
	return Day(w - 1)
}

// LookupDay resolves a full day name or a 3-letter abbreviation, ignoring case.
func LookupDay(name string) (Day, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) < 3 {
		return 0, false
	}
	for i, full := range dayNames {
		lower := strings.ToLower(full)
		if name == lower || name == lower[:3] {
			return Day(i), true
		}
	}
	return 0, false
}

// span returns the days from start to end inclusive, wrapping past Sunday when
// end comes before start.
func span(start, end Day) []Day {
	days := make([]Day, 0, DaysInWeek)
	if start <= end {
		return append(days, AllDays[start:end+1]...)
	}
	days = append(days, AllDays[start:]...)
	days = append(days, AllDays[:end+1]...)
	return days
}
