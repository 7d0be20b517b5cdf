package hours

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func iv(open, close int) *Interval {
	return &Interval{Open: open, Close: close}
}

func TestParseText(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected WeeklyHours
	}{
		{
			name:     "full week range",
			input:    "Mon-Sun: 9AM-5PM",
			expected: Uniform(540, 1020),
		},
		{
			name:  "single day overrides range",
			input: "Mon-Sat: 10AM-6PM, Sun: Closed",
			expected: WeeklyHours{
				iv(600, 1080), iv(600, 1080), iv(600, 1080), iv(600, 1080), iv(600, 1080), iv(600, 1080), nil,
			},
		},
		{
			name:  "range wraps around the week",
			input: "Fri-Mon: 9AM-5PM",
			expected: WeeklyHours{
				iv(540, 1020), nil, nil, nil, iv(540, 1020), iv(540, 1020), iv(540, 1020),
			},
		},
		{
			name:  "single day wins even when written before the range",
			input: "Sat: 11AM-4PM, Mon-Sun: 9AM-5PM",
			expected: WeeklyHours{
				iv(540, 1020), iv(540, 1020), iv(540, 1020), iv(540, 1020), iv(540, 1020), iv(660, 960), iv(540, 1020),
			},
		},
		{
			name:  "later range overwrites earlier range",
			input: "Mon-Fri: 9AM-5PM, Thu-Sat: 12PM-8PM",
			expected: WeeklyHours{
				iv(540, 1020), iv(540, 1020), iv(540, 1020), iv(720, 1200), iv(720, 1200), iv(720, 1200), nil,
			},
		},
		{
			name:  "range closed",
			input: "Mon-Sun: 9AM-5PM, Sat-Sun: Closed",
			expected: WeeklyHours{
				iv(540, 1020), iv(540, 1020), iv(540, 1020), iv(540, 1020), iv(540, 1020), nil, nil,
			},
		},
		{
			name:  "minutes and spacing",
			input: "Mon: 9:30 am - 5:45 pm; Tue:10:15AM-12PM",
			expected: WeeklyHours{
				iv(570, 1065), iv(615, 720), nil, nil, nil, nil, nil,
			},
		},
		{
			name:  "midnight and noon",
			input: "Wed: 12AM-12PM",
			expected: WeeklyHours{
				nil, nil, iv(0, 720), nil, nil, nil, nil,
			},
		},
		{
			name:  "en dash separators",
			input: "Mon–Fri: 10AM–7PM",
			expected: WeeklyHours{
				iv(600, 1140), iv(600, 1140), iv(600, 1140), iv(600, 1140), iv(600, 1140), nil, nil,
			},
		},
		{
			name:  "entries without a separator",
			input: "Mon-Sat: 10AM-6PM Sun: Closed",
			expected: WeeklyHours{
				iv(600, 1080), iv(600, 1080), iv(600, 1080), iv(600, 1080), iv(600, 1080), iv(600, 1080), nil,
			},
		},
		{
			name:  "leading label",
			input: "Hours: Mon-Fri: 9AM-5PM",
			expected: WeeklyHours{
				iv(540, 1020), iv(540, 1020), iv(540, 1020), iv(540, 1020), iv(540, 1020), nil, nil,
			},
		},
		{
			name:  "trailing punctuation",
			input: "Mon-Fri: 9AM-5PM.",
			expected: WeeklyHours{
				iv(540, 1020), iv(540, 1020), iv(540, 1020), iv(540, 1020), iv(540, 1020), nil, nil,
			},
		},
		{
			name:  "spaced range end day is not a single day",
			input: "Mon - Sat: 10AM-6PM and Sat: 11AM-3PM!",
			expected: WeeklyHours{
				iv(600, 1080), iv(600, 1080), iv(600, 1080), iv(600, 1080), iv(600, 1080), iv(660, 900), nil,
			},
		},
		{
			name:     "empty input is closed all week",
			input:    "",
			expected: Closed(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseText(tc.input))
		})
	}
}

func TestParseTextDropsMalformedEntries(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected WeeklyHours
	}{
		{
			name:     "unknown day abbreviation",
			input:    "Mon: 9AM-5PM, Xyz: 9AM-5PM",
			expected: WeeklyHours{iv(540, 1020), nil, nil, nil, nil, nil, nil},
		},
		{
			name:     "unknown day in range",
			input:    "Mon-Foo: 9AM-5PM",
			expected: Closed(),
		},
		{
			name:     "missing meridiem",
			input:    "Mon: 9-5",
			expected: Closed(),
		},
		{
			name:     "hour out of range",
			input:    "Tue: 13PM-5PM",
			expected: Closed(),
		},
		{
			name:     "minute out of range",
			input:    "Tue: 9:75AM-5PM",
			expected: Closed(),
		},
		{
			name:     "garbage keeps earlier value",
			input:    "Mon-Fri: 9AM-5PM, Wed: soon",
			expected: WeeklyHours{iv(540, 1020), iv(540, 1020), iv(540, 1020), iv(540, 1020), iv(540, 1020), nil, nil},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseText(tc.input))
		})
	}
}

func TestParseTextKeepsInvertedIntervals(t *testing.T) {
	w := ParseText("Fri: 10PM-2AM")

	got, ok := w.Get(Friday)
	assert.True(t, ok)
	assert.Equal(t, Interval{Open: 1320, Close: 120}, got)
}

func TestParseClock(t *testing.T) {
	testCases := []struct {
		input string
		want  int
		ok    bool
	}{
		{"09:00", 540, true},
		{"18:30", 1110, true},
		{"00:00", 0, true},
		{"24:00", 1440, true},
		{"09:00:00", 540, true},
		{"6PM", 1080, true},
		{"6:15 pm", 1095, true},
		{"12 AM", 0, true},
		{"24:30", 0, false},
		{"25:00", 0, false},
		{"9", 0, false},
		{"", 0, false},
	}

	for _, tc := range testCases {
		got, ok := ParseClock(tc.input)
		assert.Equal(t, tc.ok, ok, "ParseClock(%q) ok", tc.input)
		assert.Equal(t, tc.want, got, "ParseClock(%q)", tc.input)
	}
}
