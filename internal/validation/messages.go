package validation

import (
	"strings"

	"golang.org/x/text/language"
)

// Code identifies a date rule violation independently of its wording
type Code string

const (
	// CodeStartRequired is reported for an ongoing entry without a start date
	CodeStartRequired Code = "start_date_required"
	// CodeEndBeforeStart is reported when the end date precedes the start date
	CodeEndBeforeStart Code = "end_before_start"
)

// Messages resolves a violation code to user-facing text for a locale.
// The surrounding application may supply its own string tables.
type Messages interface {
	Message(locale string, code Code) string
}

// Catalog is the built-in message table, matched by BCP 47 locale
type Catalog struct {
	tags    []language.Tag
	matcher language.Matcher
	text    map[language.Tag]map[Code]string
}

// DefaultCatalog holds English, Spanish, German, French and Portuguese messages.
// English is the fallback for unknown or malformed locales.
var DefaultCatalog = NewCatalog(map[language.Tag]map[Code]string{
	language.English: {
		CodeStartRequired:  "A start date is required for an ongoing position.",
		CodeEndBeforeStart: "The end date cannot precede the start date.",
	},
	language.Spanish: {
		CodeStartRequired:  "La fecha de inicio es obligatoria para un puesto actual.",
		CodeEndBeforeStart: "La fecha de fin no puede ser anterior a la fecha de inicio.",
	},
	language.German: {
		CodeStartRequired:  "Für eine aktuelle Position ist ein Startdatum erforderlich.",
		CodeEndBeforeStart: "Das Enddatum darf nicht vor dem Startdatum liegen.",
	},
	language.French: {
		CodeStartRequired:  "Une date de début est requise pour un poste en cours.",
		CodeEndBeforeStart: "La date de fin ne peut pas précéder la date de début.",
	},
	language.Portuguese: {
		CodeStartRequired:  "A data de início é obrigatória para um cargo atual.",
		CodeEndBeforeStart: "A data de término não pode ser anterior à data de início.",
	},
}, language.English)

// NewCatalog builds a catalog. fallback must be one of the tables' tags and is
// listed first so the matcher returns it when nothing else fits.
func NewCatalog(text map[language.Tag]map[Code]string, fallback language.Tag) *Catalog {
	tags := []language.Tag{fallback}
	for tag := range text {
		if tag != fallback {
			tags = append(tags, tag)
		}
	}
	return &Catalog{
		tags:    tags,
		matcher: language.NewMatcher(tags),
		text:    text,
	}
}

// Message implements Messages
func (c *Catalog) Message(locale string, code Code) string {
	tag := c.tags[0]
	if parsed, err := language.Parse(strings.TrimSpace(locale)); err == nil {
		_, idx, _ := c.matcher.Match(parsed)
		tag = c.tags[idx]
	}
	if msg, ok := c.text[tag][code]; ok {
		return msg
	}
	if msg, ok := c.text[c.tags[0]][code]; ok {
		return msg
	}
	return string(code)
}
