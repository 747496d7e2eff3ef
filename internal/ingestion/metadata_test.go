package ingestion

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDigest(t *testing.T) {
	a := Digest("Accountant")

	assert.True(t, strings.HasPrefix(a, "sha256:"))
	assert.Len(t, strings.TrimPrefix(a, "sha256:"), 64)
	assert.Equal(t, a, Digest("Accountant"))
	assert.NotEqual(t, a, Digest("Manager"))
}

func TestDescribe(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 30, 15, 999, time.FixedZone("CET", 3600))

	m := Describe("JOHN DOE\n\nSUMMARY\nÉquipe", "resume.txt", at)

	assert.Equal(t, "resume.txt", m.Source)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 30, 15, 0, time.UTC), m.IngestedAt)
	assert.Equal(t, 4, m.Lines)
	assert.Equal(t, 1, m.BlankLines)
	assert.Equal(t, 24, m.Runes)
	assert.Equal(t, Digest("JOHN DOE\n\nSUMMARY\nÉquipe"), m.Digest)
}

func TestDescribe_Empty(t *testing.T) {
	m := Describe("", "", time.Now())

	assert.Empty(t, m.Source)
	assert.Zero(t, m.Lines)
	assert.Zero(t, m.Runes)
	assert.Equal(t, Digest(""), m.Digest)
}
