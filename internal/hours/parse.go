package hours

import (
	"regexp"
	"strconv"
	"strings"
)

// entryValue is "closed" or a 12-hour span such as "9:30 AM - 5 PM".
const entryValue = `(closed\b|\d{1,2}(?::\d{2})?\s*[ap]m\s*[-–]\s*\d{1,2}(?::\d{2})?\s*[ap]m)`

var (
	rangeEntryPattern  = regexp.MustCompile(`(?i)\b([a-z]+)\s*[-–]\s*([a-z]+)\s*:\s*` + entryValue)
	singleEntryPattern = regexp.MustCompile(`(?i)\b([a-z]+)\s*:\s*` + entryValue)

	closedValue = regexp.MustCompile(`(?i)^closed$`)
	spanValue   = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*([ap]m)\s*[-–]\s*(\d{1,2})(?::(\d{2}))?\s*([ap]m)$`)
	clock12     = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*([ap]m)$`)
	clock24     = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::\d{2})?$`)
)

// dayValue is what an entry assigns to a day: an interval or closed.
type dayValue struct {
	closed   bool
	interval Interval
}

func (v dayValue) apply(w *WeeklyHours, d Day) {
	if v.closed {
		w.SetClosed(d)
		return
	}
	w.Set(d, v.interval.Open, v.interval.Close)
}

type rangeEntry struct {
	start, end Day
	value      dayValue
}

type singleEntry struct {
	day   Day
	value dayValue
}

// ParseText parses free-form hours such as "Mon-Sat: 10AM-6PM, Sun: Closed".
//
// Every day starts closed. The text is scanned for range entries, which are
// applied first in text order, wrapping past Sunday when the end day precedes
// the start day. It is then scanned again for single-day entries, applied
// afterwards so they always override a range covering the same day. Text
// between entries is ignored, and entries with an unknown day name or an
// unreadable time are dropped.
func ParseText(text string) WeeklyHours {
	var ranges []rangeEntry
	for _, m := range rangeEntryPattern.FindAllStringSubmatch(text, -1) {
		start, ok1 := LookupDay(m[1])
		end, ok2 := LookupDay(m[2])
		value, ok3 := parseValue(m[3])
		if ok1 && ok2 && ok3 {
			ranges = append(ranges, rangeEntry{start: start, end: end, value: value})
		}
	}

	var singles []singleEntry
	for _, loc := range singleEntryPattern.FindAllStringSubmatchIndex(text, -1) {
		// the end day of a range reads like a single-day entry
		if followsDash(text[:loc[0]]) {
			continue
		}
		day, ok1 := LookupDay(text[loc[2]:loc[3]])
		value, ok2 := parseValue(text[loc[4]:loc[5]])
		if ok1 && ok2 {
			singles = append(singles, singleEntry{day: day, value: value})
		}
	}

	w := Closed()
	for _, r := range ranges {
		for _, d := range span(r.start, r.end) {
			r.value.apply(&w, d)
		}
	}
	for _, s := range singles {
		s.value.apply(&w, s.day)
	}
	return w
}

func followsDash(before string) bool {
	before = strings.TrimRight(before, " \t")
	return strings.HasSuffix(before, "-") || strings.HasSuffix(before, "–")
}

func parseValue(s string) (dayValue, bool) {
	s = strings.TrimSpace(s)
	if closedValue.MatchString(s) {
		return dayValue{closed: true}, true
	}

	m := spanValue.FindStringSubmatch(s)
	if m == nil {
		return dayValue{}, false
	}
	open, ok := to24h(m[1], m[2], m[3])
	if !ok {
		return dayValue{}, false
	}
	closing, ok := to24h(m[4], m[5], m[6])
	if !ok {
		return dayValue{}, false
	}
	return dayValue{interval: Interval{Open: open, Close: closing}}, true
}

// to24h converts a 12-hour clock reading to minutes since midnight.
// 12AM is midnight and 12PM is noon.
func to24h(hourStr, minStr, meridiem string) (int, bool) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 1 || hour > 12 {
		return 0, false
	}
	minute := 0
	if minStr != "" {
		minute, err = strconv.Atoi(minStr)
		if err != nil || minute > 59 {
			return 0, false
		}
	}

	hour = hour % 12
	if strings.EqualFold(meridiem, "pm") {
		hour += 12
	}
	return hour*60 + minute, true
}

// ParseClock reads "HH:MM" (24h, optional seconds) or "h[:mm] AM|PM" into
// minutes since midnight.
func ParseClock(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if m := clock12.FindStringSubmatch(s); m != nil {
		return to24h(m[1], m[2], m[3])
	}
	if m := clock24.FindStringSubmatch(s); m != nil {
		hour, err1 := strconv.Atoi(m[1])
		minute, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil || hour > 24 || minute > 59 {
			return 0, false
		}
		// 24:00 is accepted as end of day.
		if hour == 24 && minute != 0 {
			return 0, false
		}
		return hour*60 + minute, true
	}
	return 0, false
}
