package model

// EventCSV is the flat row shape used by the agenda CSV export.
type EventCSV struct {
	ID       string `csv:"id"`
	Title    string `csv:"title"`
	Who      string `csv:"who"`
	StartAt  string `csv:"start_at"`
	EndAt    string `csv:"end_at"`
	IsAllDay bool   `csv:"is_all_day"`
	Status   string `csv:"status"`
	Notes    string `csv:"notes"`
}

// ToCSVRow flattens an event for export. Status is the effective one, so
// legacy rows export as confirmed.
func (m Event) ToCSVRow() EventCSV {
	return EventCSV{
		ID:       m.ID,
		Title:    m.Title,
		Who:      string(m.Who),
		StartAt:  m.StartAt,
		EndAt:    m.EndAt,
		IsAllDay: m.IsAllDay,
		Status:   string(m.EffectiveStatus()),
		Notes:    m.Notes,
	}
}
