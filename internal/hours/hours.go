// Package hours parses store operating hours and answers open/closed queries.
//
// Times are minutes since local midnight. The engine never converts
// timezones: the weekday, hour and minute of the instant passed in are read
// as-is, so callers convert to the store's zone first (see StatusIn).
//
// Every function here is total. Malformed or missing data never produces an
// error; the affected day is treated as closed.
package hours

import (
	"time"
)

// MinutesPerDay bounds the minute values of an Interval.
const MinutesPerDay = 24 * 60

// Interval is a half-open [Open, Close) window in minutes since midnight.
type Interval struct {
	Open  int `json:"open"`
	Close int `json:"close"`
}

// Contains reports whether minute m falls inside the interval.
func (i Interval) Contains(m int) bool {
	return i.Open <= m && m < i.Close
}

// WeeklyHours holds one optional interval per day, indexed by Day.
// A nil entry means the store is closed all day.
type WeeklyHours [DaysInWeek]*Interval

// Closed returns a week with every day closed.
func Closed() WeeklyHours {
	return WeeklyHours{}
}

// Uniform returns a week where every day has the same interval.
func Uniform(open, close int) WeeklyHours {
	var w WeeklyHours
	for _, d := range AllDays {
		w.Set(d, open, close)
	}
	return w
}

// Get returns the interval for d and whether the day is open at all.
func (w WeeklyHours) Get(d Day) (Interval, bool) {
	if !d.Valid() || w[d] == nil {
		return Interval{}, false
	}
	return *w[d], true
}

// Set assigns an interval to d. Invalid days are ignored.
func (w *WeeklyHours) Set(d Day, open, close int) {
	if !d.Valid() {
		return
	}
	w[d] = &Interval{Open: open, Close: close}
}

// SetClosed marks d as closed all day.
func (w *WeeklyHours) SetClosed(d Day) {
	if !d.Valid() {
		return
	}
	w[d] = nil
}

// IsEmpty reports whether the store is closed every day.
func (w WeeklyHours) IsEmpty() bool {
	for _, iv := range w {
		if iv != nil {
			return false
		}
	}
	return true
}

// StatusResult is the answer to a point-in-time query.
type StatusResult struct {
	IsOpen     bool   `json:"is_open"`
	NextChange string `json:"next_change"`
}

const currentlyClosed = "Currently Closed"

// Status reports whether the store is open at now and describes the next
// status change. A missing or closed day yields "Closed on <Day>".
func Status(w WeeklyHours, now time.Time) StatusResult {
	today := DayOf(now.Weekday())
	current := minuteOfDay(now)

	iv, ok := w.Get(today)
	if !ok {
		return StatusResult{IsOpen: false, NextChange: "Closed on " + today.String()}
	}

	if iv.Contains(current) {
		return StatusResult{IsOpen: true, NextChange: "Closes at " + FormatMinutes(iv.Close)}
	}
	if current < iv.Open {
		return StatusResult{IsOpen: false, NextChange: "Opens at " + FormatMinutes(iv.Open)}
	}
	return StatusResult{IsOpen: false, NextChange: currentlyClosed}
}

// StatusIn evaluates Status after moving now into the named zone. An empty
// or unknown zone leaves now in its own location.
func StatusIn(w WeeklyHours, now time.Time, zone string) StatusResult {
	return Status(w, InZone(now, zone))
}

// InZone converts t to the named IANA zone, returning t unchanged when the
// zone is empty or cannot be loaded.
func InZone(t time.Time, zone string) time.Time {
	if zone == "" {
		return t
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return t
	}
	return t.In(loc)
}

// Opening describes a future opening found by NextOpening.
type Opening struct {
	Day      Day      `json:"-"`
	DayName  string   `json:"day"`
	DaysOut  int      `json:"days_out"`
	Interval Interval `json:"interval"`
}

// NextOpening finds the next time the store opens strictly after now. Today
// only counts when now is before its opening minute. The search covers the
// following seven days, so a store whose only open day is today is found a
// week out. Inverted intervals never open and are skipped.
func NextOpening(w WeeklyHours, now time.Time) (Opening, bool) {
	today := DayOf(now.Weekday())
	current := minuteOfDay(now)

	if iv, ok := w.Get(today); ok && current < iv.Open && iv.Open < iv.Close {
		return Opening{Day: today, DayName: today.String(), DaysOut: 0, Interval: iv}, true
	}

	for i := 1; i <= DaysInWeek; i++ {
		d := Day((int(today) + i) % DaysInWeek)
		if iv, ok := w.Get(d); ok && iv.Open < iv.Close {
			return Opening{Day: d, DayName: d.String(), DaysOut: i, Interval: iv}, true
		}
	}
	return Opening{}, false
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
