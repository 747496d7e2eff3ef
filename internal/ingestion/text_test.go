package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_LineEndings(t *testing.T) {
	input := "Line 1\r\nLine 2\rLine 3\nLine 4"
	result := Normalize(input)

	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", result)
	assert.NotContains(t, result, "\r")
}

func TestNormalize_RightTrimsLines(t *testing.T) {
	input := "JOHN DOE   \nSenior Accountant\t\t\nEXPERIENCE "
	result := Normalize(input)

	assert.Equal(t, "JOHN DOE\nSenior Accountant\nEXPERIENCE", result)
}

func TestNormalize_KeepsLeadingIndentation(t *testing.T) {
	input := "Header\n    - indented bullet"
	result := Normalize(input)

	assert.Equal(t, "Header\n    - indented bullet", result)
}

func TestNormalize_BlankLineRuns(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single blank line kept", "A\n\nB", "A\n\nB"},
		{"two blank lines kept", "A\n\n\nB", "A\n\n\nB"},
		{"three blank lines collapse to two", "A\n\n\n\nB", "A\n\n\nB"},
		{"many blank lines collapse to two", "A\n\n\n\n\n\n\n\nB", "A\n\n\nB"},
		{"whitespace-only lines count as blank", "A\n  \n\t\n \n\nB", "A\n\n\nB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_TrimsDocument(t *testing.T) {
	assert.Equal(t, "Body", Normalize("\n\n   \nBody\n\n  \n"))
}

func TestNormalize_EmptyInput(t *testing.T) {
	assert.Empty(t, Normalize(""))
}

func TestNormalize_OnlyWhitespace(t *testing.T) {
	assert.Empty(t, Normalize("   \n  \r\n  "))
}

func TestNormalize_ComposesAccents(t *testing.T) {
	// "EXPERIENCIA ACADÉMICA" with a decomposed É (E + combining acute)
	decomposed := "EXPERIENCIA ACADE\u0301MICA"
	result := Normalize(decomposed)

	assert.Equal(t, "EXPERIENCIA ACAD\u00c9MICA", result)
}

func TestNormalize_Idempotent(t *testing.T) {
	input := "Name  \r\n\r\n\r\n\r\n\r\nSummary\t\nText"
	once := Normalize(input)

	assert.Equal(t, once, Normalize(once))
}

func TestIngestFromFile_Success(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "resume.txt")
	err := os.WriteFile(testFile, []byte("JOHN DOE  \r\nSenior Accountant\r\n"), 0644)
	require.NoError(t, err)

	text, metadata, err := IngestFromFile(testFile)
	require.NoError(t, err)

	assert.Equal(t, "JOHN DOE\nSenior Accountant", text)
	require.NotNil(t, metadata)
	assert.Equal(t, testFile, metadata.Source)
	assert.Equal(t, 2, metadata.Lines)
	assert.Equal(t, Digest(text), metadata.Digest)
}

func TestIngestFromFile_FileNotFound(t *testing.T) {
	text, metadata, err := IngestFromFile("/nonexistent/resume.txt")

	assert.Error(t, err)
	assert.Empty(t, text)
	assert.Nil(t, metadata)
	assert.Contains(t, err.Error(), "file not found")
}

func TestIngestFromFile_SameContentSameHash(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.txt")
	second := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(first, []byte("Body\r\n"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("Body   \n\n"), 0644))

	_, m1, err := IngestFromFile(first)
	require.NoError(t, err)
	_, m2, err := IngestFromFile(second)
	require.NoError(t, err)

	// Both normalize to "Body"
	assert.Equal(t, m1.Digest, m2.Digest)
}
