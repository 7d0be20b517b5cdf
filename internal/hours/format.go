package hours

import (
	"fmt"
)

// FormatMinutes renders minutes since midnight as "h:MM AM|PM".
// Values outside a single day wrap.
func FormatMinutes(m int) string {
	m = ((m % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	h, min := m/60, m%60

	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h = h % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, min, suffix)
}

// FormatClock renders minutes since midnight as 24h "HH:MM". The end of the
// day stays "24:00".
func FormatClock(m int) string {
	if m == MinutesPerDay {
		return "24:00"
	}
	m = ((m % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// DaySummary is one display line of a weekly schedule.
type DaySummary struct {
	Day    string `json:"day"`
	Closed bool   `json:"closed"`
	Opens  string `json:"opens,omitempty"`
	Closes string `json:"closes,omitempty"`
	Text   string `json:"text"`
}

// Summary lists every day of the week, Monday first, with its display text.
func Summary(w WeeklyHours) []DaySummary {
	out := make([]DaySummary, 0, DaysInWeek)
	for _, d := range AllDays {
		iv, ok := w.Get(d)
		if !ok {
			out = append(out, DaySummary{
				Day:    d.String(),
				Closed: true,
				Text:   d.String() + ": Closed",
			})
			continue
		}
		opens, closes := FormatMinutes(iv.Open), FormatMinutes(iv.Close)
		out = append(out, DaySummary{
			Day:    d.String(),
			Opens:  opens,
			Closes: closes,
			Text:   fmt.Sprintf("%s: %s - %s", d.String(), opens, closes),
		})
	}
	return out
}
