package codec

import (
	"strings"

	"github.com/jonathan/resume-sections/internal/sections"
)

// labelField binds one "Label: value" line to a record field
type labelField struct {
	label   string   // Written label
	aliases []string // Lowercase labels accepted when reading
	field   func(*Record) *string
}

// labelledCodec serves schemas written as one "Label: value" line per field
type labelledCodec struct {
	schema  sections.Schema
	fields  []labelField
	replace bool // Always replaces the field, whatever the mode
}

func (c labelledCodec) Schema() sections.Schema { return c.schema }

// Parse reads known labels; the first occurrence of each label wins and
// unknown lines are ignored.
func (c labelledCodec) Parse(text string) Record {
	var rec Record
	for _, line := range splitLines(text) {
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}
		label := strings.ToLower(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		if value == "" {
			continue
		}
		f, ok := c.lookup(label)
		if !ok {
			continue
		}
		if dst := f.field(&rec); *dst == "" {
			*dst = value
		}
	}
	return rec
}

func (c labelledCodec) Format(rec Record, previous string, mode Mode) string {
	var lines []string
	for _, f := range c.fields {
		if v := strings.TrimSpace(*f.field(&rec)); v != "" {
			lines = append(lines, f.label+": "+v)
		}
	}
	block := strings.Join(lines, "\n")
	if c.replace {
		mode = ModeEdit
	}
	return merge(block, previous, mode)
}

func (c labelledCodec) lookup(label string) (labelField, bool) {
	for _, f := range c.fields {
		for _, alias := range f.aliases {
			if alias == label {
				return f, true
			}
		}
	}
	return labelField{}, false
}

// ContactCodec reads and writes the contact block. Formatting always replaces the
// whole field: a résumé has exactly one contact block.
type ContactCodec struct{ labelledCodec }

// CertificateCodec reads and writes certificate entries
type CertificateCodec struct{ labelledCodec }

// ReferralCodec reads and writes referral entries
type ReferralCodec struct{ labelledCodec }

// NewContactCodec returns the contact codec
func NewContactCodec() ContactCodec {
	return ContactCodec{labelledCodec{
		schema:  sections.SchemaContact,
		replace: true,
		fields: []labelField{
			{"Email", []string{"email", "e-mail", "mail", "correo"}, func(r *Record) *string { return &r.Email }},
			{"Phone", []string{"phone", "mobile", "tel", "telephone", "cell", "teléfono", "telefone"}, func(r *Record) *string { return &r.Mobile }},
			{"Address", []string{"address", "location", "dirección", "adresse"}, func(r *Record) *string { return &r.Address }},
			{"Website", []string{"website", "web", "site", "portfolio"}, func(r *Record) *string { return &r.Website }},
			{"LinkedIn", []string{"linkedin"}, func(r *Record) *string { return &r.LinkedIn }},
		},
	}}
}

// NewCertificateCodec returns the certificate codec
func NewCertificateCodec() CertificateCodec {
	return CertificateCodec{labelledCodec{
		schema: sections.SchemaCertificates,
		fields: []labelField{
			{"Certificate", []string{"certificate", "certification", "name"}, func(r *Record) *string { return &r.CertName }},
			{"Issuer", []string{"issuer", "issued by", "authority"}, func(r *Record) *string { return &r.Issuer }},
			{"URL", []string{"url", "link", "credential"}, func(r *Record) *string { return &r.URL }},
		},
	}}
}

// NewReferralCodec returns the referral codec
func NewReferralCodec() ReferralCodec {
	return ReferralCodec{labelledCodec{
		schema: sections.SchemaReferrals,
		fields: []labelField{
			{"Name", []string{"name", "referee", "reference"}, func(r *Record) *string { return &r.RefName }},
			{"Company", []string{"company", "organization", "organisation"}, func(r *Record) *string { return &r.RefCompany }},
			{"Contact", []string{"contact", "email", "phone"}, func(r *Record) *string { return &r.Contact }},
		},
	}}
}
