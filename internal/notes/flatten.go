package notes

// Flatten turns sections into records numbered from 0 in section-then-note order.
// The counter is shared across sections.
func Flatten(sections []Section) []Record {
	records := make([]Record, 0, Count(sections))
	var id int64
	for _, s := range sections {
		for _, note := range s.Notes {
			records = append(records, Record{
				RecordID: id,
				Section:  s.Name,
				Note:     note,
			})
			id++
		}
	}
	return records
}

// Count returns the total number of notes across sections.
func Count(sections []Section) int {
	n := 0
	for _, s := range sections {
		n += len(s.Notes)
	}
	return n
}
