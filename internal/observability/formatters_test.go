package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-sections/internal/codec"
	"github.com/jonathan/resume-sections/internal/document"
	"github.com/jonathan/resume-sections/internal/sections"
)

const resume = "JOHN DOE\nSenior Accountant\njohn@doe.com\nEXPERIENCE\nAccountant, Acme Corp\n2019 – Current\nEDUCATION\nBSc Accounting, State University"

func TestPrintDetection(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDetection("john.txt", sections.Detect(resume))
	output := buf.String()

	assert.Contains(t, output, "SECTIONS DETECTED: john.txt")
	assert.Contains(t, output, "JOHN DOE")
	assert.Contains(t, output, "Senior Accountant")
	assert.Contains(t, output, "john@doe.com (inferred)")
	assert.Contains(t, output, "Headers (2):")
	assert.Contains(t, output, "EXPERIENCE")
	assert.Contains(t, output, "→ education")
}

func TestPrintDetection_Fallback(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDetection("notes.txt", sections.Detect("just some text"))

	assert.Contains(t, buf.String(), "No headers found")
}

func TestPrintDetection_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDetection("x", nil)

	assert.Empty(t, buf.String())
}

func TestPrintDocument(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	doc := document.Import(resume, "en")

	p.PrintDocument(doc)
	output := buf.String()

	assert.Contains(t, output, doc.ID.String())
	assert.Contains(t, output, "experience")
	assert.Contains(t, output, "AS")
	assert.Contains(t, output, "Accountant, Acme Corp ¶")
	assert.Contains(t, output, "of 13 sections filled")
}

func TestPrintRecord(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecord(sections.KeyExperience, codec.Record{Title: "Accountant", Company: "Acme", StartDate: "2019", IsCurrent: true})
	output := buf.String()

	assert.Contains(t, output, "RECORD: experience")
	assert.Contains(t, output, "Accountant")
	assert.Contains(t, output, "Current:")
	assert.NotContains(t, output, "Issuer")
}

func TestPrintRecord_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRecord(sections.KeyContact, codec.Record{})

	assert.Contains(t, buf.String(), "(empty record)")
}

func TestPrintEnhancement(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintEnhancement(sections.KeyAboutMe, "I do books.", "Detail-oriented accountant.")
	output := buf.String()

	assert.Contains(t, output, "ENHANCED: aboutMe")
	assert.Contains(t, output, "Before (11 chars):")
	assert.Contains(t, output, "Detail-oriented accountant.")
}

func TestPrintBox_LinesHaveEqualWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", "short\n"+strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestFit(t *testing.T) {
	assert.Equal(t, "abc", fit("abc", 5))
	assert.Equal(t, "ab...", fit("abcdef", 5))
	assert.Equal(t, "éé...", fit("éééééé", 5))
}
