// Package codec converts structured section text to and from form records.
//
// A section's value is always plain text; a codec is only a view over it. Parse never
// fails: unrecognised lines degrade into Details (or are skipped for label:value
// schemas). Format never fails either: it is a pure string builder over the record.
package codec

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-sections/internal/sections"
)

// Mode selects whether a commit appends a new entry or replaces the field
type Mode string

const (
	// ModeCreate appends the new entry to the existing text
	ModeCreate Mode = "create"
	// ModeEdit replaces the whole field with the new entry
	ModeEdit Mode = "edit"
)

// ParseMode validates a mode name
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeCreate:
		return ModeCreate, nil
	case ModeEdit:
		return ModeEdit, nil
	default:
		return "", fmt.Errorf("invalid mode %q: expected %q or %q", s, ModeCreate, ModeEdit)
	}
}

// Record is the transient form state for one entry of a structured section.
// Each schema uses a subset of the fields.
type Record struct {
	Company     string `json:"company,omitempty"`
	Title       string `json:"title,omitempty"`
	Institution string `json:"institution,omitempty"`
	Degree      string `json:"degree,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	IsCurrent   bool   `json:"is_current,omitempty"`
	Email       string `json:"email,omitempty"`
	Mobile      string `json:"mobile,omitempty"`
	Address     string `json:"address,omitempty"`
	Website     string `json:"website,omitempty"`
	LinkedIn    string `json:"linkedin,omitempty"`
	CertName    string `json:"cert_name,omitempty"`
	Issuer      string `json:"issuer,omitempty"`
	URL         string `json:"url,omitempty"`
	RefName     string `json:"ref_name,omitempty"`
	RefCompany  string `json:"ref_company,omitempty"`
	Contact     string `json:"contact,omitempty"`
	Details     string `json:"details,omitempty"`
}

// Codec parses and formats the text of one structured schema
type Codec interface {
	// Schema returns the schema tag this codec serves
	Schema() sections.Schema
	// Parse reads a record out of section text
	Parse(text string) Record
	// Format serialises rec and merges it with the previous section text according to mode
	Format(rec Record, previous string, mode Mode) string
}

var registry = map[sections.Schema]Codec{
	sections.SchemaExperience:   ExperienceCodec{},
	sections.SchemaEducation:    EducationCodec{},
	sections.SchemaContact:      NewContactCodec(),
	sections.SchemaCertificates: NewCertificateCodec(),
	sections.SchemaReferrals:    NewReferralCodec(),
}

// For returns the codec registered for a schema
func For(schema sections.Schema) (Codec, bool) {
	c, ok := registry[schema]
	return c, ok
}

// ForKey returns the codec of a section key, if the section is structured
func ForKey(key sections.Key) (Codec, bool) {
	entry, ok := sections.EntryFor(key)
	if !ok || !entry.Structured() {
		return nil, false
	}
	return For(entry.Schema)
}

// merge combines a freshly formatted block with the previous field text
func merge(block, previous string, mode Mode) string {
	if mode == ModeEdit {
		return block
	}
	previous = strings.TrimSpace(previous)
	switch {
	case previous == "":
		return block
	case block == "":
		return previous
	default:
		return previous + "\n\n" + block
	}
}

// splitLines splits text into right-trimmed lines
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return lines
}

// joinNonEmpty joins the non-empty trimmed parts with sep
func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
