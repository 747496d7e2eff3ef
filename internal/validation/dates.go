package validation

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/jonathan/resume-sections/internal/codec"
	"github.com/jonathan/resume-sections/internal/sections"
)

// Precision is how much of a calendar date a string actually states
type Precision int

const (
	PrecisionYear Precision = iota + 1
	PrecisionMonth
	PrecisionDay
)

var (
	yearLayouts  = []string{"2006"}
	monthLayouts = []string{
		"Jan 2006", "January 2006", "Jan. 2006", "Jan, 2006", "January, 2006",
		"01/2006", "1/2006", "01.2006", "1.2006", "01-2006",
		"2006-01", "2006/01", "2006.01",
	}
	dayLayouts = []string{"2006-01-02", "2006/01/02", "02.01.2006", "January 2, 2006", "Jan 2, 2006", "2 January 2006", "2 Jan 2006"}
)

// Date is a parsed résumé date with its stated precision
type Date struct {
	Time      time.Time
	Precision Precision
}

// ParseDate reads the date formats commonly written on résumés, falling back to
// dateparse for anything else. ok is false for text that is not a date, such as
// "Current", which callers treat as an absent date.
func ParseDate(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, false
	}
	for _, set := range []struct {
		layouts   []string
		precision Precision
	}{
		{yearLayouts, PrecisionYear},
		{monthLayouts, PrecisionMonth},
		{dayLayouts, PrecisionDay},
	} {
		for _, layout := range set.layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return Date{Time: t, Precision: set.precision}, true
			}
		}
	}
	if t, err := dateparse.ParseIn(s, time.UTC); err == nil {
		return Date{Time: t, Precision: PrecisionDay}, true
	}
	return Date{}, false
}

// After reports whether d is strictly later than other, compared at the coarser of
// the two precisions: "Jun 2019" is not after "2019".
func (d Date) After(other Date) bool {
	p := min(d.Precision, other.Precision)
	return truncate(d.Time, p).After(truncate(other.Time, p))
}

func truncate(t time.Time, p Precision) time.Time {
	switch p {
	case PrecisionYear:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	case PrecisionMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

// Result is the outcome of a date check. Message is empty when OK.
type Result struct {
	OK      bool   `json:"ok"`
	Code    Code   `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Err returns the failure as a *DateError, or nil when the record passed
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return &DateError{Code: r.Code, Message: r.Message}
}

// Validator checks the date rules of dated schemas
type Validator struct {
	messages Messages
}

// NewValidator creates a validator with the given message source; nil uses DefaultCatalog
func NewValidator(messages Messages) *Validator {
	if messages == nil {
		messages = DefaultCatalog
	}
	return &Validator{messages: messages}
}

var defaultValidator = NewValidator(nil)

// ValidateDates checks rec with the built-in catalog
func ValidateDates(schema sections.Schema, rec codec.Record, locale string) Result {
	return defaultValidator.ValidateDates(schema, rec, locale)
}

// ValidateDates enforces that an ongoing entry has a start date and that a start
// date does not fall after the end date. Schemas without dates always pass, and an
// unparseable date is treated as absent.
func (v *Validator) ValidateDates(schema sections.Schema, rec codec.Record, locale string) Result {
	if !supportsDates(schema) {
		return Result{OK: true}
	}

	ongoing := supportsOngoing(schema) && rec.IsCurrent
	if ongoing {
		if strings.TrimSpace(rec.StartDate) == "" {
			return v.fail(CodeStartRequired, locale)
		}
		return Result{OK: true}
	}

	start, okStart := ParseDate(rec.StartDate)
	end, okEnd := ParseDate(rec.EndDate)
	if okStart && okEnd && start.After(end) {
		return v.fail(CodeEndBeforeStart, locale)
	}
	return Result{OK: true}
}

func (v *Validator) fail(code Code, locale string) Result {
	return Result{Code: code, Message: v.messages.Message(locale, code)}
}

func supportsDates(schema sections.Schema) bool {
	return schema == sections.SchemaExperience || schema == sections.SchemaEducation
}

func supportsOngoing(schema sections.Schema) bool {
	return schema == sections.SchemaExperience
}
