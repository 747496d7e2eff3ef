package codec

import "github.com/jonathan/resume-sections/internal/sections"

// EducationCodec reads and writes "Degree, Institution" entries followed by a date
// line. Education has no current flag: an ongoing end word is kept verbatim as EndDate.
type EducationCodec struct{}

// Schema implements Codec
func (EducationCodec) Schema() sections.Schema { return sections.SchemaEducation }

// Parse reads the first entry of an education section
func (EducationCodec) Parse(text string) Record {
	e := parseDatedEntry(text)
	return Record{
		Degree:      e.first,
		Institution: e.second,
		StartDate:   e.dates.Start,
		EndDate:     e.dates.End,
		Details:     e.details,
	}
}

// Format writes rec as an entry and merges it with previous according to mode
func (EducationCodec) Format(rec Record, previous string, mode Mode) string {
	block := formatDatedEntry(rec.Degree, rec.Institution, formatDateRange(rec.StartDate, rec.EndDate, false), rec.Details)
	return merge(block, previous, mode)
}
