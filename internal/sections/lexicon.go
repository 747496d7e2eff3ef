// Package sections holds the canonical résumé section vocabulary and the
// heuristic detector that slices raw text into those sections.
package sections

import (
	"fmt"
	"strings"
)

// Key identifies a canonical résumé section
type Key string

// Canonical section keys, in document order.
const (
	KeyName         Key = "name"
	KeyHeadline     Key = "headline"
	KeyAboutMe      Key = "aboutMe"
	KeyContact      Key = "contact"
	KeyExperience   Key = "experience"
	KeyEducation    Key = "education"
	KeySkills       Key = "skills"
	KeyProjects     Key = "projects"
	KeyLanguages    Key = "languages"
	KeyExpertise    Key = "expertise"
	KeyCertificates Key = "certificates"
	KeyPublishes    Key = "publishes"
	KeyReferrals    Key = "referrals"
)

// Schema tags the structured editor a section supports
type Schema string

// Structured schemas. SchemaNone marks freeform sections.
const (
	SchemaNone         Schema = ""
	SchemaExperience   Schema = "experience"
	SchemaEducation    Schema = "education"
	SchemaContact      Schema = "contact"
	SchemaCertificates Schema = "certificates"
	SchemaReferrals    Schema = "referrals"
)

// Entry describes one canonical section
type Entry struct {
	Key        Key
	Label      string   // Default display label
	Synonyms   []string // Header labels that identify the section in raw text (uppercase)
	AIEligible bool     // Freeform text the enhancement hook may rewrite
	Schema     Schema
}

// Structured reports whether the section has a schema-specific editor
func (e Entry) Structured() bool {
	return e.Schema != SchemaNone
}

// entries is the lexicon in canonical order. name and headline are positional
// and carry no header synonyms.
var entries = []Entry{
	{Key: KeyName, Label: "Name"},
	{Key: KeyHeadline, Label: "Headline", AIEligible: true},
	{
		Key:        KeyAboutMe,
		Label:      "About Me",
		AIEligible: true,
		Synonyms: []string{
			"ABOUT ME", "ABOUT", "SUMMARY", "PROFESSIONAL SUMMARY", "CAREER SUMMARY",
			"PROFILE", "PROFESSIONAL PROFILE", "OBJECTIVE", "CAREER OBJECTIVE", "PERSONAL STATEMENT",
			"SOBRE MÍ", "PERFIL", "RESUMEN", "PERFIL PROFESIONAL",
			"À PROPOS", "À PROPOS DE MOI", "PROFIL",
			"ÜBER MICH", "ZUSAMMENFASSUNG",
			"SOBRE MIM", "RESUMO",
		},
	},
	{
		Key:    KeyContact,
		Label:  "Contact",
		Schema: SchemaContact,
		Synonyms: []string{
			"CONTACT", "CONTACT INFO", "CONTACT INFORMATION", "CONTACT DETAILS",
			"PERSONAL DETAILS", "PERSONAL INFORMATION",
			"CONTACTO", "DATOS DE CONTACTO",
			"COORDONNÉES",
			"KONTAKT", "KONTAKTDATEN",
			"CONTATO",
		},
	},
	{
		Key:        KeyExperience,
		Label:      "Experience",
		AIEligible: true,
		Schema:     SchemaExperience,
		Synonyms: []string{
			"EXPERIENCE", "WORK EXPERIENCE", "PROFESSIONAL EXPERIENCE", "RELEVANT EXPERIENCE",
			"EMPLOYMENT", "EMPLOYMENT HISTORY", "WORK HISTORY", "CAREER HISTORY",
			"EXPERIENCIA", "EXPERIENCIA LABORAL", "EXPERIENCIA PROFESIONAL",
			"EXPÉRIENCE", "EXPÉRIENCE PROFESSIONNELLE", "EXPÉRIENCES PROFESSIONNELLES",
			"BERUFSERFAHRUNG",
			"EXPERIÊNCIA", "EXPERIÊNCIA PROFISSIONAL",
		},
	},
	{
		Key:    KeyEducation,
		Label:  "Education",
		Schema: SchemaEducation,
		Synonyms: []string{
			"EDUCATION", "ACADEMIC BACKGROUND", "EDUCATION AND TRAINING", "ACADEMIC HISTORY",
			"EDUCACIÓN", "FORMACIÓN", "FORMACIÓN ACADÉMICA",
			"FORMATION",
			"AUSBILDUNG", "BILDUNGSWEG",
			"EDUCAÇÃO", "FORMAÇÃO", "FORMAÇÃO ACADÊMICA",
		},
	},
	{
		Key:        KeySkills,
		Label:      "Skills",
		AIEligible: true,
		Synonyms: []string{
			"SKILLS", "TECHNICAL SKILLS", "KEY SKILLS", "CORE SKILLS", "COMPETENCIES",
			"HABILIDADES", "APTITUDES",
			"COMPÉTENCES",
			"FÄHIGKEITEN", "KENNTNISSE",
			"COMPETÊNCIAS",
		},
	},
	{
		Key:        KeyProjects,
		Label:      "Projects",
		AIEligible: true,
		Synonyms: []string{
			"PROJECTS", "PERSONAL PROJECTS", "KEY PROJECTS", "PORTFOLIO",
			"PROYECTOS",
			"PROJETS",
			"PROJEKTE",
			"PROJETOS",
		},
	},
	{
		Key:   KeyLanguages,
		Label: "Languages",
		Synonyms: []string{
			"LANGUAGES", "LANGUAGE SKILLS",
			"IDIOMAS",
			"LANGUES",
			"SPRACHEN", "SPRACHKENNTNISSE",
		},
	},
	{
		Key:        KeyExpertise,
		Label:      "Expertise",
		AIEligible: true,
		Synonyms: []string{
			"EXPERTISE", "AREAS OF EXPERTISE", "CORE COMPETENCIES", "SPECIALTIES", "SPECIALIZATIONS",
			"ESPECIALIDADES", "ÁREAS DE ESPECIALIZACIÓN",
			"DOMAINES D'EXPERTISE",
			"SCHWERPUNKTE",
		},
	},
	{
		Key:    KeyCertificates,
		Label:  "Certificates",
		Schema: SchemaCertificates,
		Synonyms: []string{
			"CERTIFICATES", "CERTIFICATIONS", "LICENSES AND CERTIFICATIONS", "LICENSES & CERTIFICATIONS",
			"CERTIFICADOS", "CERTIFICACIONES",
			"ZERTIFIKATE",
			"CERTIFICAÇÕES",
		},
	},
	{
		Key:        KeyPublishes,
		Label:      "Publications",
		AIEligible: true,
		Synonyms: []string{
			"PUBLICATIONS", "PUBLISHED WORK", "PAPERS",
			"PUBLICACIONES",
			"PUBLIKATIONEN",
			"PUBLICAÇÕES",
		},
	},
	{
		Key:    KeyReferrals,
		Label:  "References",
		Schema: SchemaReferrals,
		Synonyms: []string{
			"REFERENCES", "REFERRALS", "REFEREES",
			"REFERENCIAS",
			"RÉFÉRENCES",
			"REFERENZEN",
			"REFERÊNCIAS",
		},
	},
}

var (
	byKey     map[Key]Entry
	bySynonym map[string]Key
	keyNames  map[string]Key
)

func init() {
	byKey = make(map[Key]Entry, len(entries))
	bySynonym = make(map[string]Key)
	keyNames = make(map[string]Key, len(entries))

	for _, e := range entries {
		byKey[e.Key] = e
		keyNames[strings.ToLower(string(e.Key))] = e.Key
		for _, syn := range e.Synonyms {
			if owner, exists := bySynonym[syn]; exists && owner != e.Key {
				panic(fmt.Sprintf("sections: synonym %q claimed by both %s and %s", syn, owner, e.Key))
			}
			bySynonym[syn] = e.Key
		}
	}
}

// Keys returns every canonical key in document order
func Keys() []Key {
	keys := make([]Key, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the lexicon in document order
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// EntryFor returns the lexicon entry for a key
func EntryFor(key Key) (Entry, bool) {
	e, ok := byKey[key]
	return e, ok
}

// IsKnown reports whether key belongs to the lexicon
func IsKnown(key Key) bool {
	_, ok := byKey[key]
	return ok
}

// ParseKey resolves a user-supplied key name case-insensitively ("aboutme" → aboutMe)
func ParseKey(name string) (Key, error) {
	if key, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return key, nil
	}
	return "", &UnknownKeyError{Name: name}
}

// Lookup matches a single line against every header synonym.
// Comparison is an uppercase equality on the trimmed line; one trailing colon is tolerated.
func Lookup(line string) (Key, bool) {
	label := headerLabel(line)
	if label == "" {
		return "", false
	}
	key, ok := bySynonym[strings.ToUpper(label)]
	return key, ok
}

// headerLabel is a header line as written, without surrounding space or its trailing colon
func headerLabel(line string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ":"))
}
