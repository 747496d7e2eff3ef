package sections

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const accountantResume = "JOHN DOE\nSenior Accountant\nEXPERIENCE\nAccountant, Acme Corp\n2019 – Current\nDid the books.\nEDUCATION\nBSc Accounting, State University\n2015 – 2019"

func TestDetect_AccountantScenario(t *testing.T) {
	det := Detect(accountantResume)

	assert.False(t, det.Fallback)
	assert.Equal(t, "JOHN DOE", det.Name)
	assert.Equal(t, "Senior Accountant", det.Headline)
	assert.Equal(t, "Accountant, Acme Corp\n2019 – Current\nDid the books.", det.Sections[KeyExperience])
	assert.Equal(t, "BSc Accounting, State University\n2015 – 2019", det.Sections[KeyEducation])
	assert.Empty(t, det.Contact)
	assert.Empty(t, det.Preamble)

	require.Len(t, det.Headers, 2)
	assert.Equal(t, Header{Line: 2, Key: KeyExperience, Label: "EXPERIENCE"}, det.Headers[0])
	assert.Equal(t, Header{Line: 6, Key: KeyEducation, Label: "EDUCATION"}, det.Headers[1])
}

func TestDetect_FallbackWithoutHeaders(t *testing.T) {
	text := "Jane Roe\nI build bridges and also write poetry.\n\nOpen to relocation."
	det := Detect(text)

	assert.True(t, det.Fallback)
	assert.Equal(t, text, det.Sections[KeyAboutMe])
	assert.Len(t, det.Sections, 1)
	assert.Empty(t, det.Name)
	assert.Empty(t, det.Headline)
	assert.Empty(t, det.Contact)
	for _, key := range Keys() {
		if key != KeyAboutMe {
			assert.Empty(t, det.Value(key), "key %s", key)
		}
	}
}

func TestDetect_FallbackEmptyInput(t *testing.T) {
	det := Detect("")

	assert.True(t, det.Fallback)
	assert.Empty(t, det.Sections)
}

func TestDetect_RepeatedSectionsAreMerged(t *testing.T) {
	text := "Ann Lee\nEngineer\nSKILLS\nGo\nEXPERIENCE\nDev, Foo\n2020 – 2021\nSkills\nKubernetes"
	det := Detect(text)

	assert.Equal(t, "Go\n\nKubernetes", det.Sections[KeySkills])
	assert.Equal(t, "SKILLS", det.Labels[KeySkills], "first label wins")
}

func TestDetect_EmptySpansAreSkipped(t *testing.T) {
	text := "Ann Lee\nEngineer\nSKILLS\nPROJECTS\nCompiler"
	det := Detect(text)

	_, ok := det.Sections[KeySkills]
	assert.False(t, ok)
	assert.Equal(t, "Compiler", det.Sections[KeyProjects])
	assert.Equal(t, "SKILLS", det.Labels[KeySkills])
}

func TestDetect_HeadlineSkippedWhenSecondLineIsHeader(t *testing.T) {
	text := "JOHN DOE\nEXPERIENCE\nAccountant, Acme Corp"
	det := Detect(text)

	assert.Equal(t, "JOHN DOE", det.Name)
	assert.Empty(t, det.Headline)
	assert.Equal(t, "Accountant, Acme Corp", det.Sections[KeyExperience])
}

func TestDetect_DocumentStartingWithHeader(t *testing.T) {
	text := "SUMMARY\nSeasoned accountant.\nSKILLS\nExcel"
	det := Detect(text)

	assert.Empty(t, det.Name)
	assert.Empty(t, det.Headline)
	assert.Equal(t, "Seasoned accountant.", det.Sections[KeyAboutMe])
}

func TestDetect_ExplicitContactWins(t *testing.T) {
	text := "JOHN DOE\njohn@doe.com\nCONTACT\nEmail: john@work.com\nPhone: 555 123 4567\nSKILLS\nExcel"
	det := Detect(text)

	assert.Equal(t, "Email: john@work.com\nPhone: 555 123 4567", det.Contact)
	assert.Equal(t, det.Contact, det.Sections[KeyContact])
	assert.False(t, det.ContactInferred)
}

func TestDetect_InfersContactFromTopLines(t *testing.T) {
	text := strings.Join([]string{
		"JOHN DOE",
		"Senior Accountant",
		"john.doe@example.com",
		"+1 (555) 123-4567",
		"linkedin.com/in/johndoe",
		"Springfield",
		"EXPERIENCE",
		"Accountant, Acme Corp",
	}, "\n")
	det := Detect(text)

	assert.True(t, det.ContactInferred)
	assert.Equal(t, "john.doe@example.com\n+1 (555) 123-4567\nlinkedin.com/in/johndoe", det.Contact)
	assert.Equal(t, "Springfield", det.Preamble)
}

func TestDetect_ContactInferenceLimitedToFirstLines(t *testing.T) {
	lines := []string{"JOHN DOE", "Accountant", "SKILLS"}
	for i := 0; i < 20; i++ {
		lines = append(lines, "Spreadsheets")
	}
	lines = append(lines, "late@example.com")
	det := Detect(strings.Join(lines, "\n"))

	assert.Empty(t, det.Contact)
	assert.False(t, det.ContactInferred)
}

func TestDetect_YearRangeIsNotAPhone(t *testing.T) {
	text := "JOHN DOE\nAccountant\nEDUCATION\nBSc, State\n2015 - 2019"
	det := Detect(text)

	assert.Empty(t, det.Contact)
}

// A body line that equals a label is read as a header. This documents the
// known false-positive class of strict label matching.
func TestDetect_BodyLineEqualToLabelIsAHeader(t *testing.T) {
	text := "JOHN DOE\nTeacher\nSKILLS\nPublic speaking\nEducation\nClassroom management"
	det := Detect(text)

	assert.Equal(t, "Public speaking", det.Sections[KeySkills])
	assert.Equal(t, "Classroom management", det.Sections[KeyEducation])
}

func TestDetect_LogsAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	detector := NewDetector(zap.New(core))

	detector.Detect(accountantResume)

	entries := logs.FilterMessage("sections detected").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["headers"])
}

func TestDetection_Value(t *testing.T) {
	det := Detect(accountantResume)

	assert.Equal(t, "JOHN DOE", det.Value(KeyName))
	assert.Equal(t, "Senior Accountant", det.Value(KeyHeadline))
	assert.Equal(t, det.Sections[KeyExperience], det.Value(KeyExperience))
	assert.Empty(t, det.Value(KeyReferrals))
}

func TestLooksLikeContact(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"jane@example.org", true},
		{"Tel: 020 7946 0958", true},
		{"github.com/jane", true},
		{"https://www.linkedin.com/in/jane", true},
		{"2015-2019", false},
		{"2019-01 - 2020-06", false},
		{"01.2015 - 12.2019", false},
		{"2019-01-15", false},
		{"15/01/2019 - 30/06/2020", false},
		{"+44 20 7946 0958", true},
		{"Team of 12 people", false},
		{"Senior Accountant", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksLikeContact(tt.line))
		})
	}
}

func TestDetect_DateLinesAreNotInferredContact(t *testing.T) {
	det := Detect("JANE ROE\nAccountant\n2019-01 - 2020-06\n01.2015 - 12.2019\njane@example.org\nEXPERIENCE\nAccountant, Acme")

	assert.Equal(t, "jane@example.org", det.Contact)
	assert.True(t, det.ContactInferred)
}

func TestDetect_HeaderLabelDropsTrailingColon(t *testing.T) {
	det := Detect("JANE ROE\nAccountant\nEXPERIENCE:\nAccountant, Acme\nSkills :\nLedgers")

	require.Len(t, det.Headers, 2)
	assert.Equal(t, "EXPERIENCE", det.Headers[0].Label)
	assert.Equal(t, "EXPERIENCE", det.Labels[KeyExperience])
	assert.Equal(t, "Skills", det.Labels[KeySkills])
}
