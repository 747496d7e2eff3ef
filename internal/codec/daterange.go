package codec

import (
	"regexp"
	"strings"
)

// OngoingMarker is written for an entry that is still active
const OngoingMarker = "Current"

var (
	// Ongoing tokens accepted when reading; only OngoingMarker is written.
	ongoingPattern = regexp.MustCompile(`(?i)^(current|present|now|today|ongoing|actualidad|presente|actual|actuel|aujourd'hui|heute|atual|atualmente)$`)

	// A single date as it appears on résumés: 2019, Jan 2019, January 15, 2019, 01/2019, 2019-01, 15.01.2019
	dateTokenPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(?:\p{L}{3,10}\.?,?\s+(?:\d{1,2},?\s+)?)?(?:\d{1,2}[/.-])?\d{4}$`),
		regexp.MustCompile(`^\d{4}[-/.]\d{1,2}(?:[-/.]\d{1,2})?$`),
		regexp.MustCompile(`^\d{1,2}[/.-]\d{1,2}[/.-]\d{4}$`),
	}

	// Range separators: en/em dash with optional spaces, a spaced hyphen, or "to"
	rangeSeparator = regexp.MustCompile(`(?i)\s*[–—]\s*|\s+-\s+|\s+to\s+`)
	// Unspaced hyphen range such as 2015-2019 or 2019-Current
	compactRange = regexp.MustCompile(`^([^\s-]+)-([^\s-]+)$`)
)

// dateRange is one parsed "<start> – <end>" line
type dateRange struct {
	Start   string
	End     string // Raw end token; holds the ongoing word when Ongoing is set
	Ongoing bool
}

// isDateToken reports whether s reads as a single date
func isDateToken(s string) bool {
	for _, p := range dateTokenPatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// isOngoing reports whether s is an ongoing marker such as "Current" or "Present"
func isOngoing(s string) bool {
	return ongoingPattern.MatchString(strings.TrimSpace(s))
}

// parseDateRange reads a date line. It returns false for lines that are not dates,
// which callers treat as ordinary body text.
func parseDateRange(line string) (dateRange, bool) {
	s := strings.TrimSpace(line)
	if s == "" {
		return dateRange{}, false
	}

	if loc := rangeSeparator.FindStringIndex(s); loc != nil {
		return buildRange(s[:loc[0]], s[loc[1]:])
	}
	if m := compactRange.FindStringSubmatch(s); m != nil {
		if r, ok := buildRange(m[1], m[2]); ok {
			return r, true
		}
	}
	if isDateToken(s) {
		return dateRange{Start: s}, true
	}
	if isOngoing(s) {
		return dateRange{End: s, Ongoing: true}, true
	}
	return dateRange{}, false
}

func buildRange(left, right string) (dateRange, bool) {
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	if left == "" && right == "" {
		return dateRange{}, false
	}
	if left != "" && !isDateToken(left) {
		return dateRange{}, false
	}
	switch {
	case right == "":
		return dateRange{Start: left}, true
	case isOngoing(right):
		return dateRange{Start: left, End: right, Ongoing: true}, true
	case isDateToken(right):
		return dateRange{Start: left, End: right}, true
	default:
		return dateRange{}, false
	}
}

// formatDateRange writes "<start> – <end>", "<start> – Current" or a lone start.
// It returns "" when there is nothing to write.
func formatDateRange(start, end string, ongoing bool) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if ongoing {
		if start == "" {
			return OngoingMarker
		}
		return start + " – " + OngoingMarker
	}
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start
	case start == "":
		return "– " + end
	default:
		return start + " – " + end
	}
}

// StripCurrentMarkers rewrites every "<start> – Current" line to "<start>" and drops
// date lines that hold nothing but an ongoing word, leaving all other lines as they
// are. It is applied to the existing entries of a section before a new ongoing entry
// is committed, so at most one entry stays current.
func StripCurrentMarkers(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		r, ok := parseDateRange(line)
		switch {
		case !ok || !r.Ongoing:
			kept = append(kept, line)
		case r.Start != "":
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			kept = append(kept, indent+r.Start)
		}
	}
	return strings.Join(kept, "\n")
}

// hasCurrentMarker reports whether any line of text is an ongoing date line
func hasCurrentMarker(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if r, ok := parseDateRange(line); ok && r.Ongoing {
			return true
		}
	}
	return false
}
