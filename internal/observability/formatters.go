// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-sections/internal/codec"
	"github.com/jonathan/resume-sections/internal/document"
	"github.com/jonathan/resume-sections/internal/sections"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// previewRunes is how much of a section value a summary line shows
	previewRunes = 28
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, fit(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, fit(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// fit truncates line to width runes, marking the cut with "..."
func fit(line string, width int) string {
	if utf8.RuneCountInString(line) <= width {
		return line
	}
	return string([]rune(line)[:width-3]) + "..."
}

// preview returns the first line of a value, shortened
func preview(value string) string {
	first, _, more := strings.Cut(strings.TrimSpace(value), "\n")
	if more {
		first += " ¶"
	}
	return fit(first, previewRunes)
}

// PrintDetection outputs how a source file was sliced into sections.
func (p *Printer) PrintDetection(source string, det *sections.Detection) {
	if det == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:      %s\n", orDash(det.Name)))
	sb.WriteString(fmt.Sprintf("Headline:  %s\n", orDash(det.Headline)))

	contact := orDash(preview(det.Contact))
	if det.ContactInferred {
		contact += " (inferred)"
	}
	sb.WriteString(fmt.Sprintf("Contact:   %s\n", contact))

	if det.Fallback {
		sb.WriteString("\nNo headers found: all text kept in aboutMe\n")
	} else {
		sb.WriteString(fmt.Sprintf("\nHeaders (%d):\n", len(det.Headers)))
		for _, h := range det.Headers {
			sb.WriteString(fmt.Sprintf("  L%-4d %-14s → %s\n", h.Line+1, h.Label, h.Key))
		}
	}

	if det.Preamble != "" {
		sb.WriteString(fmt.Sprintf("\nPreamble:  %s\n", preview(det.Preamble)))
	}

	p.printBox("SECTIONS DETECTED: "+source, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDocument outputs every canonical section with its flags and a preview.
func (p *Printer) PrintDocument(doc *document.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:        %s\n", doc.ID))
	sb.WriteString(fmt.Sprintf("Language:  %s\n\n", doc.Language))

	filled := 0
	for _, s := range doc.Sections {
		flags := ""
		if s.AIEligible {
			flags += "A"
		}
		if s.Structured {
			flags += "S"
		}
		value := "-"
		if strings.TrimSpace(s.Value) != "" {
			value = preview(s.Value)
			filled++
		}
		sb.WriteString(fmt.Sprintf("  %-12s %-2s %s\n", s.Key, flags, value))
	}
	for _, x := range doc.Extra {
		sb.WriteString(fmt.Sprintf("  %-12s +  %s\n", x.Key, preview(x.Value)))
	}
	sb.WriteString(fmt.Sprintf("\n%d of %d sections filled", filled, len(doc.Sections)))

	p.printBox("DOCUMENT", sb.String())
}

// PrintRecord outputs the non-empty fields of a structured record.
func (p *Printer) PrintRecord(key sections.Key, rec codec.Record) {
	fields := []struct {
		label string
		value string
	}{
		{"Title", rec.Title},
		{"Company", rec.Company},
		{"Degree", rec.Degree},
		{"Institution", rec.Institution},
		{"Start", rec.StartDate},
		{"End", rec.EndDate},
		{"Email", rec.Email},
		{"Mobile", rec.Mobile},
		{"Address", rec.Address},
		{"Website", rec.Website},
		{"LinkedIn", rec.LinkedIn},
		{"Certificate", rec.CertName},
		{"Issuer", rec.Issuer},
		{"URL", rec.URL},
		{"Referee", rec.RefName},
		{"Ref. company", rec.RefCompany},
		{"Contact", rec.Contact},
		{"Details", preview(rec.Details)},
	}

	var sb strings.Builder
	for _, f := range fields {
		if f.value != "" {
			sb.WriteString(fmt.Sprintf("%-13s %s\n", f.label+":", f.value))
		}
	}
	if rec.IsCurrent {
		sb.WriteString(fmt.Sprintf("%-13s %s\n", "Current:", "yes"))
	}
	if sb.Len() == 0 {
		sb.WriteString("(empty record)")
	}

	p.printBox("RECORD: "+string(key), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEnhancement outputs a section before and after enhancement.
func (p *Printer) PrintEnhancement(key sections.Key, before, after string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Before (%d chars):\n", utf8.RuneCountInString(before)))
	for _, line := range strings.Split(strings.TrimSpace(before), "\n") {
		sb.WriteString("  " + line + "\n")
	}
	sb.WriteString(fmt.Sprintf("\nAfter (%d chars):\n", utf8.RuneCountInString(after)))
	for _, line := range strings.Split(strings.TrimSpace(after), "\n") {
		sb.WriteString("  " + line + "\n")
	}

	p.printBox("ENHANCED: "+string(key), strings.TrimSuffix(sb.String(), "\n"))
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
