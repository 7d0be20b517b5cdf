package hours

// Record is one structured day/openTime/closeTime row as stored for a store.
type Record struct {
	Day       string `json:"day" validate:"required"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	IsClosed  bool   `json:"is_closed"`
}

// FromRecords builds WeeklyHours from structured rows. Rows apply in order,
// so a later row for the same day wins. Rows naming an unknown day are
// skipped; a closed row or a row with an unreadable time closes its day.
func FromRecords(records []Record) WeeklyHours {
	w := Closed()
	for _, r := range records {
		d, ok := LookupDay(r.Day)
		if !ok {
			continue
		}
		if r.IsClosed {
			w.SetClosed(d)
			continue
		}
		open, ok1 := ParseClock(r.OpenTime)
		closing, ok2 := ParseClock(r.CloseTime)
		if !ok1 || !ok2 {
			w.SetClosed(d)
			continue
		}
		w.Set(d, open, closing)
	}
	return w
}

// Records converts w back to seven rows, Monday first, with 24h times.
func (w WeeklyHours) Records() []Record {
	out := make([]Record, 0, DaysInWeek)
	for _, d := range AllDays {
		iv, ok := w.Get(d)
		if !ok {
			out = append(out, Record{Day: d.String(), IsClosed: true})
			continue
		}
		out = append(out, Record{
			Day:       d.String(),
			OpenTime:  FormatClock(iv.Open),
			CloseTime: FormatClock(iv.Close),
		})
	}
	return out
}
