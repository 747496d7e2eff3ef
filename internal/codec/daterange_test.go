package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		line string
		want dateRange
		ok   bool
	}{
		{"2019 – Current", dateRange{Start: "2019", End: "Current", Ongoing: true}, true},
		{"2019 — present", dateRange{Start: "2019", End: "present", Ongoing: true}, true},
		{"2019–2021", dateRange{Start: "2019", End: "2021"}, true},
		{"2019 - 2021", dateRange{Start: "2019", End: "2021"}, true},
		{"2019-Current", dateRange{Start: "2019", End: "Current", Ongoing: true}, true},
		{"June 2019 to May 2021", dateRange{Start: "June 2019", End: "May 2021"}, true},
		{"01/2019 – 03/2020", dateRange{Start: "01/2019", End: "03/2020"}, true},
		{"2020-01", dateRange{Start: "2020-01"}, true},
		{"15.01.2019", dateRange{Start: "15.01.2019"}, true},
		{"– 2019", dateRange{Start: "", End: "2019"}, true},
		{"Jan 2020 – Actualidad", dateRange{Start: "Jan 2020", End: "Actualidad", Ongoing: true}, true},
		{"", dateRange{}, false},
		{"Did the books.", dateRange{}, false},
		{"Grew revenue 20% in 2019", dateRange{}, false},
		{"Sales – Marketing", dateRange{}, false},
		{"2019 – somewhere", dateRange{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := parseDateRange(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDateRange(t *testing.T) {
	assert.Equal(t, "2019 – Current", formatDateRange("2019", "", true))
	assert.Equal(t, "2019 – Current", formatDateRange("2019", "2020", true))
	assert.Equal(t, "2019 – 2020", formatDateRange("2019", "2020", false))
	assert.Equal(t, "2019", formatDateRange(" 2019 ", "", false))
	assert.Equal(t, "– 2020", formatDateRange("", "2020", false))
	assert.Equal(t, "", formatDateRange("", "", false))
}

func TestStripCurrentMarkers(t *testing.T) {
	text := "A, B\n2019 – Current\nWorked.\n\nC, D\n  2017 - Present\n\nE, F\n2015 – 2016"

	got := StripCurrentMarkers(text)

	assert.Equal(t, "A, B\n2019\nWorked.\n\nC, D\n  2017\n\nE, F\n2015 – 2016", got)
	assert.False(t, hasCurrentMarker(got))
	assert.True(t, hasCurrentMarker(text))
}

func TestStripCurrentMarkers_DropsBareOngoingLine(t *testing.T) {
	text := "Freelancer\nPresent\nOdd jobs.\n\nA, B\n  now"

	got := StripCurrentMarkers(text)

	assert.Equal(t, "Freelancer\nOdd jobs.\n\nA, B", got)
	assert.False(t, hasCurrentMarker(got))
}

func TestStripCurrentMarkers_LeavesOtherTextAlone(t *testing.T) {
	text := "Current projects include the ledger migration.\nNow hiring."

	assert.Equal(t, text, StripCurrentMarkers(text))
	assert.Equal(t, "", StripCurrentMarkers(""))
}
