package sections

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// contactScanLines bounds contact inference to the top of the document
const contactScanLines = 15

const numericDate = `(?:\d{4}(?:[-/.]\d{1,2}){0,2}|\d{1,2}[-/.](?:\d{1,2}[-/.])?\d{4})`

var (
	emailPattern      = regexp.MustCompile(`(?i)[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`)
	phoneCandidate    = regexp.MustCompile(`\+?\(?\d[\d\s().-]{5,}\d`)
	// Numeric dates and ranges (2015-2019, 2019-01 - 2020-06, 01.2015 - 12.2019) that
	// would otherwise pass the phone digit count
	numericDatePattern = regexp.MustCompile(`^` + numericDate + `(?:\s*-\s*` + numericDate + `)?$`)
	profileURLPattern = regexp.MustCompile(`(?i)\b(?:www\.)?(?:linkedin\.com|github\.com|gitlab\.com|behance\.net|dribbble\.com|medium\.com|stackoverflow\.com|twitter\.com|x\.com)/\S*`)
)

// Header is a line recognised as a section header
type Header struct {
	Line  int    `json:"line"`  // Zero-based line index
	Key   Key    `json:"key"`   // Canonical key it maps to
	Label string `json:"label"` // Header text as written, without a trailing colon
}

// Detection is the result of slicing a normalized document into sections
type Detection struct {
	Name     string
	Headline string
	Contact  string
	// Sections holds the content of every header-detected section, keyed canonically.
	// Contact is mirrored here when it came from an explicit header.
	Sections map[Key]string
	// Labels keeps the first header label seen per key
	Labels  map[Key]string
	Headers []Header
	// Preamble is the text between the headline and the first header that is
	// neither name, headline nor inferred contact.
	Preamble        string
	ContactInferred bool
	Fallback        bool // No header matched; everything went to aboutMe
}

// Value returns the detected text for any canonical key
func (d *Detection) Value(key Key) string {
	switch key {
	case KeyName:
		return d.Name
	case KeyHeadline:
		return d.Headline
	case KeyContact:
		return d.Contact
	default:
		return d.Sections[key]
	}
}

// Detector slices résumé text into canonical sections
type Detector struct {
	logger *zap.Logger
}

// NewDetector creates a detector that reports its decisions at debug level
func NewDetector(logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{logger: logger}
}

var defaultDetector = NewDetector(nil)

// Detect slices normalized text with a silent detector
func Detect(normalized string) *Detection {
	return defaultDetector.Detect(normalized)
}

// Detect slices normalized text into sections.
// Header matching is a strict, case-insensitive equality against the lexicon, so a body
// line that happens to equal a label is treated as a header as well.
func (d *Detector) Detect(normalized string) *Detection {
	det := &Detection{
		Sections: make(map[Key]string),
		Labels:   make(map[Key]string),
	}

	lines := strings.Split(normalized, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if key, ok := Lookup(line); ok {
			det.Headers = append(det.Headers, Header{Line: i, Key: key, Label: headerLabel(line)})
		}
	}

	if len(det.Headers) == 0 {
		if strings.TrimSpace(normalized) != "" {
			det.Sections[KeyAboutMe] = normalized
		}
		det.Fallback = true
		d.logger.Debug("no section headers found, using aboutMe fallback",
			zap.Int("lines", len(lines)))
		return det
	}

	d.sliceSections(det, lines)
	d.detectIdentity(det, lines)
	d.detectContact(det, lines)

	d.logger.Debug("sections detected",
		zap.Int("headers", len(det.Headers)),
		zap.Int("sections", len(det.Sections)),
		zap.Bool("contact_inferred", det.ContactInferred))

	return det
}

// sliceSections assigns every line between two headers to the first one.
// Repeated keys are merged in document order, separated by a blank line.
func (d *Detector) sliceSections(det *Detection, lines []string) {
	for i, h := range det.Headers {
		end := len(lines)
		if i+1 < len(det.Headers) {
			end = det.Headers[i+1].Line
		}

		if _, seen := det.Labels[h.Key]; !seen {
			det.Labels[h.Key] = h.Label
		}

		span := strings.TrimSpace(strings.Join(lines[h.Line+1:end], "\n"))
		if span == "" {
			continue
		}
		if existing := det.Sections[h.Key]; existing != "" {
			d.logger.Debug("merging repeated section", zap.String("key", string(h.Key)), zap.Int("line", h.Line))
			det.Sections[h.Key] = existing + "\n\n" + span
			continue
		}
		det.Sections[h.Key] = span
	}
}

// detectIdentity reads name and headline from the first two non-blank lines.
// A line that is itself a header is never used for either.
func (d *Detector) detectIdentity(det *Detection, lines []string) {
	headerLines := make(map[int]bool, len(det.Headers))
	for _, h := range det.Headers {
		headerLines[h.Line] = true
	}

	var nonBlank []int
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			nonBlank = append(nonBlank, i)
			if len(nonBlank) == 2 {
				break
			}
		}
	}

	if len(nonBlank) > 0 && !headerLines[nonBlank[0]] {
		det.Name = strings.TrimSpace(lines[nonBlank[0]])
		if len(nonBlank) > 1 && !headerLines[nonBlank[1]] {
			det.Headline = strings.TrimSpace(lines[nonBlank[1]])
		}
	}

	// Whatever else sits above the first header is passed through as preamble
	first := det.Headers[0].Line
	var rest []string
	for i := 0; i < first; i++ {
		if len(nonBlank) > 0 && i == nonBlank[0] && det.Name != "" {
			continue
		}
		if len(nonBlank) > 1 && i == nonBlank[1] && det.Headline != "" {
			continue
		}
		rest = append(rest, lines[i])
	}
	det.Preamble = strings.TrimSpace(strings.Join(rest, "\n"))
}

// detectContact prefers an explicit contact section and otherwise infers one
// from email, phone and profile-URL lines near the top of the document.
func (d *Detector) detectContact(det *Detection, lines []string) {
	if explicit, ok := det.Sections[KeyContact]; ok {
		det.Contact = explicit
		return
	}

	limit := min(len(lines), contactScanLines)
	var found []string
	for _, line := range lines[:limit] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if LooksLikeContact(trimmed) {
			found = append(found, trimmed)
		}
	}
	if len(found) == 0 {
		return
	}

	det.Contact = strings.Join(found, "\n")
	det.ContactInferred = true
	det.Preamble = removeLines(det.Preamble, found)
}

// LooksLikeContact reports whether a line carries an email, phone number or profile URL
func LooksLikeContact(line string) bool {
	if emailPattern.MatchString(line) || profileURLPattern.MatchString(line) {
		return true
	}
	for _, candidate := range phoneCandidate.FindAllString(line, -1) {
		if isPhone(candidate) {
			return true
		}
	}
	return false
}

// isPhone accepts 7 to 15 digits, the E.164 bounds, and rejects numeric dates and date ranges
func isPhone(candidate string) bool {
	candidate = strings.TrimSpace(candidate)
	if numericDatePattern.MatchString(candidate) {
		return false
	}
	digits := 0
	for _, r := range candidate {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7 && digits <= 15
}

func removeLines(text string, drop []string) string {
	if text == "" {
		return ""
	}
	skip := make(map[string]bool, len(drop))
	for _, l := range drop {
		skip[l] = true
	}
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if skip[strings.TrimSpace(line)] {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
