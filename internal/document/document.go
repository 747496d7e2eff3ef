// Package document holds a résumé as the fixed, ordered set of canonical sections.
//
// Every section value is plain text. Structured sections are edited through the
// codec registered for their schema, never by hand-parsing the text.
package document

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-sections/internal/codec"
	"github.com/jonathan/resume-sections/internal/ingestion"
	"github.com/jonathan/resume-sections/internal/schemas"
	"github.com/jonathan/resume-sections/internal/sections"
	"github.com/jonathan/resume-sections/internal/validation"
)

// PreambleKey is the key of the pass-through section holding unmapped text above the first header
const PreambleKey sections.Key = "preamble"

// Section is one named block of résumé text
type Section struct {
	Key        sections.Key `json:"key"`
	Label      string       `json:"label"`
	Value      string       `json:"value"`
	AIEligible bool         `json:"ai_eligible"`
	Structured bool         `json:"structured"`
}

// Schema returns the codec schema of the section, or SchemaNone
func (s Section) Schema() sections.Schema {
	if e, ok := sections.EntryFor(s.Key); ok {
		return e.Schema
	}
	return sections.SchemaNone
}

// Triple is the {key, label, value} output contract handed to storage and rendering
type Triple struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Document is a résumé held as canonical sections plus any pass-through extras
type Document struct {
	ID        uuid.UUID `json:"id"`
	Language  string    `json:"language"`
	Sections  []Section `json:"sections"`
	Extra     []Section `json:"extra,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates an empty document covering every lexicon key in canonical order
func New(language string) *Document {
	now := time.Now().UTC()
	doc := &Document{
		ID:        uuid.New(),
		Language:  language,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, e := range sections.Entries() {
		doc.Sections = append(doc.Sections, sectionFor(e, e.Label, ""))
	}
	return doc
}

// FromDetection fills a new document from a detection result. Detected header labels
// replace the default labels; the preamble, if any, is kept as an extra section.
func FromDetection(det *sections.Detection, language string) *Document {
	doc := New(language)
	for i := range doc.Sections {
		s := &doc.Sections[i]
		s.Value = det.Value(s.Key)
		if label, ok := det.Labels[s.Key]; ok {
			s.Label = label
		}
	}
	if det.Preamble != "" {
		doc.Extra = append(doc.Extra, Section{Key: PreambleKey, Label: "Preamble", Value: det.Preamble})
	}
	return doc
}

// Import normalises raw text, detects its sections and builds a document
func Import(raw, language string) *Document {
	return ImportWith(nil, raw, language)
}

// ImportWith is Import using the given detector; nil uses a silent one
func ImportWith(detector *sections.Detector, raw, language string) *Document {
	if detector == nil {
		detector = sections.NewDetector(nil)
	}
	return FromDetection(detector.Detect(ingestion.Normalize(raw)), language)
}

func sectionFor(e sections.Entry, label, value string) Section {
	return Section{
		Key:        e.Key,
		Label:      label,
		Value:      value,
		AIEligible: e.AIEligible,
		Structured: e.Structured(),
	}
}

// Get returns a copy of the section stored under key
func (d *Document) Get(key sections.Key) (Section, bool) {
	if i := d.index(key); i >= 0 {
		return d.Sections[i], true
	}
	return Section{}, false
}

// Value returns the text of a section, or "" for unknown keys
func (d *Document) Value(key sections.Key) string {
	s, _ := d.Get(key)
	return s.Value
}

// SetValue replaces the text of a section directly
func (d *Document) SetValue(key sections.Key, value string) error {
	i := d.index(key)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownSection, key)
	}
	d.Sections[i].Value = value
	d.touch()
	return nil
}

// Triples returns the output contract: every canonical section in order, then the extras
func (d *Document) Triples() []Triple {
	out := make([]Triple, 0, len(d.Sections)+len(d.Extra))
	for _, s := range append(d.Sections[:len(d.Sections):len(d.Sections)], d.Extra...) {
		out = append(out, Triple{Key: string(s.Key), Label: s.Label, Value: s.Value})
	}
	return out
}

// OpenForEdit parses a structured section into a form record
func (d *Document) OpenForEdit(key sections.Key) (codec.Record, error) {
	c, s, err := d.codecFor(key)
	if err != nil {
		return codec.Record{}, err
	}
	return c.Parse(s.Value), nil
}

// CommitEdit validates rec and formats it into the section. In create mode the entry is
// appended, in edit mode it replaces the section. A validation failure is returned as a
// *validation.DateError and the section is left untouched.
func (d *Document) CommitEdit(key sections.Key, rec codec.Record, mode codec.Mode, locale string) (string, error) {
	c, s, err := d.codecFor(key)
	if err != nil {
		return "", err
	}

	if res := validation.ValidateDates(c.Schema(), rec, locale); !res.OK {
		return "", res.Err()
	}

	value := c.Format(rec, s.Value, mode)
	d.Sections[d.index(key)].Value = value
	d.touch()
	return value, nil
}

func (d *Document) codecFor(key sections.Key) (codec.Codec, Section, error) {
	s, ok := d.Get(key)
	if !ok {
		return nil, Section{}, fmt.Errorf("%w: %q", ErrUnknownSection, key)
	}
	c, ok := codec.ForKey(key)
	if !ok {
		return nil, Section{}, fmt.Errorf("%w: %q", ErrNotStructured, key)
	}
	return c, s, nil
}

// Clone returns a deep copy of the document
func (d *Document) Clone() *Document {
	cp := *d
	cp.Sections = append([]Section(nil), d.Sections...)
	cp.Extra = append([]Section(nil), d.Extra...)
	return &cp
}

// Validate checks that the document covers exactly the lexicon keys in canonical
// order, with flags matching the lexicon.
func (d *Document) Validate() error {
	entries := sections.Entries()
	if len(d.Sections) != len(entries) {
		return &InvariantError{Message: fmt.Sprintf("expected %d sections, got %d", len(entries), len(d.Sections))}
	}
	for i, e := range entries {
		s := d.Sections[i]
		if s.Key != e.Key {
			return &InvariantError{Message: fmt.Sprintf("section %d: expected key %q, got %q", i, e.Key, s.Key)}
		}
		if s.AIEligible != e.AIEligible || s.Structured != e.Structured() {
			return &InvariantError{Message: fmt.Sprintf("section %q: flags do not match the lexicon", s.Key)}
		}
	}
	for _, x := range d.Extra {
		if sections.IsKnown(x.Key) {
			return &InvariantError{Message: fmt.Sprintf("extra section reuses canonical key %q", x.Key)}
		}
	}
	return nil
}

// Export encodes the document as indented JSON and checks it against the document schema
func (d *Document) Export() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := schemas.ValidateDocument(data); err != nil {
		return nil, &InvariantError{Message: "exported document does not match schema", Cause: err}
	}
	return data, nil
}

// Decode reads an exported document, checking both the JSON schema and the section layout
func Decode(data []byte) (*Document, error) {
	if err := schemas.ValidateDocument(data); err != nil {
		return nil, &InvariantError{Message: "document does not match schema", Cause: err}
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *Document) index(key sections.Key) int {
	for i, s := range d.Sections {
		if s.Key == key {
			return i
		}
	}
	return -1
}

func (d *Document) touch() {
	d.UpdatedAt = time.Now().UTC()
}
