package hours

// DaySchedule is the per-weekday JSON document owners submit from the hours
// editor, one toggle and time pair per day plus an optional zone.
type DaySchedule struct {
	Monday    DayToggle `json:"monday"`
	Tuesday   DayToggle `json:"tuesday"`
	Wednesday DayToggle `json:"wednesday"`
	Thursday  DayToggle `json:"thursday"`
	Friday    DayToggle `json:"friday"`
	Saturday  DayToggle `json:"saturday"`
	Sunday    DayToggle `json:"sunday"`
	Timezone  string    `json:"timezone"`
}

type DayToggle struct {
	Enabled bool   `json:"enabled"`
	Open    string `json:"open"`
	Close   string `json:"close"`
}

// Records flattens the document into structured rows.
func (s DaySchedule) Records() []Record {
	days := []struct {
		day    Day
		toggle DayToggle
	}{
		{Monday, s.Monday},
		{Tuesday, s.Tuesday},
		{Wednesday, s.Wednesday},
		{Thursday, s.Thursday},
		{Friday, s.Friday},
		{Saturday, s.Saturday},
		{Sunday, s.Sunday},
	}

	out := make([]Record, 0, len(days))
	for _, d := range days {
		out = append(out, Record{
			Day:       d.day.String(),
			OpenTime:  d.toggle.Open,
			CloseTime: d.toggle.Close,
			IsClosed:  !d.toggle.Enabled,
		})
	}
	return out
}

// FromDaySchedule builds WeeklyHours from the per-weekday document.
func FromDaySchedule(s DaySchedule) WeeklyHours {
	return FromRecords(s.Records())
}
