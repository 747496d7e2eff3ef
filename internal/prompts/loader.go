// Package prompts holds the embedded model prompt templates.
// Each JSON file maps a prompt key to a template with {{.Name}} placeholders.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// EnhanceFile holds the section and details rewrite prompts
const EnhanceFile = "enhance.json"

// Prompt keys in EnhanceFile
const (
	KeyEnhanceSection = "enhance-section"
	KeyEnhanceDetails = "enhance-details"
)

// Set is the parsed content of one prompt file
type Set struct {
	file      string
	templates map[string]string
}

var sets sync.Map // filename -> *Set

// Load parses an embedded prompt file once and returns its set
func Load(filename string) (*Set, error) {
	if s, ok := sets.Load(filename); ok {
		return s.(*Set), nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	templates := map[string]string{}
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	s, _ := sets.LoadOrStore(filename, &Set{file: filename, templates: templates})
	return s.(*Set), nil
}

// Get returns the raw template stored under key
func (s *Set) Get(key string) (string, error) {
	t, ok := s.templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, s.file)
	}
	return t, nil
}

// Render fills the template stored under key
func (s *Set) Render(key string, data map[string]string) (string, error) {
	t, err := s.Get(key)
	if err != nil {
		return "", err
	}
	return Format(t, data), nil
}

// Keys lists the prompt keys in sorted order
func (s *Set) Keys() []string {
	return slices.Sorted(maps.Keys(s.templates))
}

// Get loads filename and returns the template under key
func Get(filename, key string) (string, error) {
	s, err := Load(filename)
	if err != nil {
		return "", err
	}
	return s.Get(key)
}

// Render loads filename and fills the template under key
func Render(filename, key string, data map[string]string) (string, error) {
	s, err := Load(filename)
	if err != nil {
		return "", err
	}
	return s.Render(key, data)
}

// Format substitutes {{.Key}} placeholders in a single pass, so values are never
// expanded again. Placeholders without a value stay as written.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
