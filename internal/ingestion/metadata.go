package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
	"unicode/utf8"
)

// Metadata describes one normalized résumé text. Digest identifies the text,
// so two files that normalize to the same content share it.
type Metadata struct {
	Source     string    `json:"source,omitempty"`
	IngestedAt time.Time `json:"ingested_at"`
	Digest     string    `json:"digest"`
	Runes      int       `json:"runes"`
	Lines      int       `json:"lines"`
	BlankLines int       `json:"blank_lines"`
}

// Describe builds the metadata of already normalized text
func Describe(text, source string, at time.Time) *Metadata {
	m := &Metadata{
		Source:     source,
		IngestedAt: at.UTC().Truncate(time.Second),
		Digest:     Digest(text),
		Runes:      utf8.RuneCountInString(text),
	}
	if text == "" {
		return m
	}
	for _, line := range strings.Split(text, "\n") {
		m.Lines++
		if strings.TrimSpace(line) == "" {
			m.BlankLines++
		}
	}
	return m
}

// Digest returns "sha256:" followed by the hex digest of text
func Digest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "sha256:" + hex.EncodeToString(sum[:])
}
