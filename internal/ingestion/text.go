// Package ingestion canonicalises résumé text handed over by the document extraction step.
package ingestion

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// excessiveBlankLines matches three or more consecutive blank lines.
var excessiveBlankLines = regexp.MustCompile(`\n{4,}`)

// Normalize canonicalises raw extracted text:
// line endings become LF, text is NFC-composed, every line is right-trimmed,
// runs of 3+ blank lines collapse to exactly 2 and the document is trimmed.
// It is total over any input, including the empty string.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	// 1. Normalize line endings (CRLF → LF, lone CR → LF)
	content := strings.ReplaceAll(raw, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	// 2. Compose accents so header matching sees one spelling
	content = norm.NFC.String(content)

	// 3. Right-trim every line
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = trimLineEnd(line)
	}
	content = strings.Join(lines, "\n")

	// 4. Collapse excessive blank lines
	content = excessiveBlankLines.ReplaceAllString(content, "\n\n\n")

	return strings.TrimSpace(content)
}

// trimLineEnd removes trailing whitespace, including non-breaking spaces
// that PDF extractors like to leave behind.
func trimLineEnd(line string) string {
	return strings.TrimRight(line, " \t\f\v\u00a0\u200b")
}

// IngestFromFile reads a plain-text résumé, normalizes it and returns the text with metadata
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	normalized := Normalize(string(content))
	return normalized, Describe(normalized, path, time.Now()), nil
}
