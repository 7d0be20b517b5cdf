package hours

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// at builds a wall-clock instant in the week of Monday 2024-01-01.
func at(t *testing.T, day Day, hour, minute int) time.Time {
	t.Helper()
	return time.Date(2024, time.January, 1+int(day), hour, minute, 0, 0, time.UTC)
}

func TestAtHelperWeekdays(t *testing.T) {
	for _, d := range AllDays {
		assert.Equal(t, d, DayOf(at(t, d, 12, 0).Weekday()))
	}
}

func TestSpan(t *testing.T) {
	testCases := []struct {
		name       string
		start, end Day
		expected   []Day
	}{
		{name: "single day", start: Wednesday, end: Wednesday, expected: []Day{Wednesday}},
		{name: "forward", start: Monday, end: Friday, expected: []Day{Monday, Tuesday, Wednesday, Thursday, Friday}},
		{name: "whole week", start: Monday, end: Sunday, expected: AllDays},
		{name: "wraps past Sunday", start: Saturday, end: Tuesday, expected: []Day{Saturday, Sunday, Monday, Tuesday}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, span(tc.start, tc.end))
		})
	}
}

func TestSpanDoesNotAliasAllDays(t *testing.T) {
	days := span(Monday, Wednesday)
	days[0] = Sunday
	_ = append(days, Sunday)

	assert.Equal(t, []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}, AllDays)
}

func TestStatus(t *testing.T) {
	week := ParseText("Mon-Sat: 10AM-6PM")

	testCases := []struct {
		name     string
		now      time.Time
		expected StatusResult
	}{
		{
			name:     "open at the opening minute",
			now:      at(t, Monday, 10, 0),
			expected: StatusResult{IsOpen: true, NextChange: "Closes at 6:00 PM"},
		},
		{
			name:     "open mid-morning",
			now:      at(t, Monday, 10, 50),
			expected: StatusResult{IsOpen: true, NextChange: "Closes at 6:00 PM"},
		},
		{
			name:     "open one minute before closing",
			now:      at(t, Friday, 17, 59),
			expected: StatusResult{IsOpen: true, NextChange: "Closes at 6:00 PM"},
		},
		{
			name:     "closed at the closing minute",
			now:      at(t, Monday, 18, 0),
			expected: StatusResult{IsOpen: false, NextChange: "Currently Closed"},
		},
		{
			name:     "before opening",
			now:      at(t, Tuesday, 8, 15),
			expected: StatusResult{IsOpen: false, NextChange: "Opens at 10:00 AM"},
		},
		{
			name:     "closed day",
			now:      at(t, Sunday, 12, 0),
			expected: StatusResult{IsOpen: false, NextChange: "Closed on Sunday"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Status(week, tc.now))
		})
	}
}

func TestStatusMissingDay(t *testing.T) {
	week := FromRecords([]Record{
		{Day: "Monday", OpenTime: "09:00", CloseTime: "17:00"},
		{Day: "Tuesday", OpenTime: "09:00", CloseTime: "17:00"},
	})

	got := Status(week, at(t, Wednesday, 11, 0))
	assert.Equal(t, StatusResult{IsOpen: false, NextChange: "Closed on Wednesday"}, got)
}

func TestStatusInvertedIntervalNeverOpens(t *testing.T) {
	week := ParseText("Fri: 10PM-2AM")

	assert.Equal(t, StatusResult{IsOpen: false, NextChange: "Opens at 10:00 PM"}, Status(week, at(t, Friday, 21, 0)))
	assert.Equal(t, StatusResult{IsOpen: false, NextChange: "Currently Closed"}, Status(week, at(t, Friday, 23, 0)))
}

func TestStatusIn(t *testing.T) {
	week := ParseText("Mon-Fri: 9AM-5PM")

	// 15:30 UTC on Monday is 10:30 in New York.
	now := time.Date(2024, time.January, 1, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, StatusResult{IsOpen: true, NextChange: "Closes at 5:00 PM"}, StatusIn(week, now, "America/New_York"))

	// 03:00 UTC on Tuesday is still Monday evening in Los Angeles.
	now = time.Date(2024, time.January, 2, 3, 0, 0, 0, time.UTC)
	assert.Equal(t, StatusResult{IsOpen: false, NextChange: "Currently Closed"}, StatusIn(week, now, "America/Los_Angeles"))

	// Unknown zones leave the instant untouched.
	now = time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, StatusResult{IsOpen: false, NextChange: "Opens at 9:00 AM"}, StatusIn(week, now, "Mars/Olympus"))
}

func TestNextOpening(t *testing.T) {
	week := ParseText("Mon-Fri: 9AM-5PM")

	t.Run("later today", func(t *testing.T) {
		got, ok := NextOpening(week, at(t, Wednesday, 7, 0))
		require.True(t, ok)
		assert.Equal(t, Wednesday, got.Day)
		assert.Equal(t, 0, got.DaysOut)
	})

	t.Run("after close moves to tomorrow", func(t *testing.T) {
		got, ok := NextOpening(week, at(t, Wednesday, 18, 0))
		require.True(t, ok)
		assert.Equal(t, Thursday, got.Day)
		assert.Equal(t, 1, got.DaysOut)
		assert.Equal(t, Interval{Open: 540, Close: 1020}, got.Interval)
	})

	t.Run("weekend skips to monday", func(t *testing.T) {
		got, ok := NextOpening(week, at(t, Friday, 17, 0))
		require.True(t, ok)
		assert.Equal(t, Monday, got.Day)
		assert.Equal(t, 3, got.DaysOut)
		assert.Equal(t, "Monday", got.DayName)
	})

	t.Run("only day is today", func(t *testing.T) {
		got, ok := NextOpening(ParseText("Tue: 9AM-5PM"), at(t, Tuesday, 12, 0))
		require.True(t, ok)
		assert.Equal(t, Tuesday, got.Day)
		assert.Equal(t, 7, got.DaysOut)
	})

	t.Run("never open", func(t *testing.T) {
		_, ok := NextOpening(Closed(), at(t, Monday, 12, 0))
		assert.False(t, ok)
	})
}

func TestLookupDay(t *testing.T) {
	testCases := []struct {
		input string
		want  Day
		ok    bool
	}{
		{"Mon", Monday, true},
		{"mon", Monday, true},
		{"Thursday", Thursday, true},
		{" SUN ", Sunday, true},
		{"Thurs", 0, false},
		{"Mo", 0, false},
		{"", 0, false},
	}

	for _, tc := range testCases {
		got, ok := LookupDay(tc.input)
		assert.Equal(t, tc.ok, ok, "LookupDay(%q)", tc.input)
		if tc.ok {
			assert.Equal(t, tc.want, got, "LookupDay(%q)", tc.input)
		}
	}
}

func TestDayOf(t *testing.T) {
	assert.Equal(t, Sunday, DayOf(time.Sunday))
	assert.Equal(t, Monday, DayOf(time.Monday))
	assert.Equal(t, Saturday, DayOf(time.Saturday))
	assert.Equal(t, "Sat", Saturday.Abbrev())
	assert.Equal(t, "Unknown", Day(9).String())
}
