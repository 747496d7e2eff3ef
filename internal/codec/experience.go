package codec

import (
	"strings"

	"github.com/jonathan/resume-sections/internal/sections"
)

// ExperienceCodec reads and writes work-history entries:
//
//	Title, Company
//	<start> – <end | Current>
//
//	Details...
type ExperienceCodec struct{}

// Schema implements Codec
func (ExperienceCodec) Schema() sections.Schema { return sections.SchemaExperience }

// Parse reads the first entry of an experience section
func (ExperienceCodec) Parse(text string) Record {
	e := parseDatedEntry(text)
	rec := Record{
		Title:     e.first,
		Company:   e.second,
		StartDate: e.dates.Start,
		Details:   e.details,
	}
	if e.dates.Ongoing {
		rec.IsCurrent = true
	} else {
		rec.EndDate = e.dates.End
	}
	return rec
}

// Format writes rec as an entry. A current entry first clears the ongoing marker
// from every entry already in previous.
func (ExperienceCodec) Format(rec Record, previous string, mode Mode) string {
	end := rec.EndDate
	if rec.IsCurrent {
		end = ""
		if hasCurrentMarker(previous) {
			previous = StripCurrentMarkers(previous)
		}
	}
	block := formatDatedEntry(rec.Title, rec.Company, formatDateRange(rec.StartDate, end, rec.IsCurrent), rec.Details)
	return merge(block, previous, mode)
}

// datedEntry is the shared shape of experience and education entries
type datedEntry struct {
	first   string // Title or degree
	second  string // Company or institution
	dates   dateRange
	details string
}

// parseDatedEntry splits "first, second" from line one, reads a date line if line
// two is one, and keeps everything after as details.
func parseDatedEntry(text string) datedEntry {
	var e datedEntry
	lines := trimBlankLines(splitLines(text))
	if len(lines) == 0 {
		return e
	}

	header := strings.TrimSpace(lines[0])
	if idx := strings.Index(header, ","); idx >= 0 {
		e.first = strings.TrimSpace(header[:idx])
		e.second = strings.TrimSpace(header[idx+1:])
	} else {
		e.first = header
	}

	rest := lines[1:]
	if len(rest) > 0 {
		if r, ok := parseDateRange(rest[0]); ok {
			e.dates = r
			rest = rest[1:]
		}
	}
	e.details = strings.Join(trimBlankLines(rest), "\n")
	return e
}

func formatDatedEntry(first, second, dateLine, details string) string {
	head := joinNonEmpty("\n", joinNonEmpty(", ", first, second), dateLine)
	details = strings.Join(trimBlankLines(splitLines(details)), "\n")
	switch {
	case details == "":
		return head
	case head == "":
		return details
	default:
		return head + "\n\n" + details
	}
}

// trimBlankLines drops leading and trailing blank lines
func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
