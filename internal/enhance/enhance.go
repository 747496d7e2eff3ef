// Package enhance is the hook through which résumé text is sent to an external
// rewriting service and the result fed back into a document.
//
// The returned text always replaces the field it came from. A failed or cancelled
// call leaves the document unchanged.
package enhance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/resume-sections/internal/codec"
	"github.com/jonathan/resume-sections/internal/document"
	"github.com/jonathan/resume-sections/internal/logger"
	"github.com/jonathan/resume-sections/internal/sections"
)

// DefaultMaxInputRunes is the input ceiling used when none is configured
const DefaultMaxInputRunes = 4000

// SubDetails names the details sub-field of a structured record
const SubDetails = "details"

// Request is the text handed to the collaborator
type Request struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	// Section is the display label of the field, used only as prompt context
	Section string `json:"section,omitempty"`
	// Details marks the text as one entry's description rather than a whole section
	Details bool `json:"details,omitempty"`
}

// Result is the collaborator's answer
type Result struct {
	OptimizedText string `json:"optimized_text"`
}

// Enhancer rewrites a block of prose into a stronger version
type Enhancer interface {
	Enhance(ctx context.Context, req Request) (*Result, error)
}

// FieldKey identifies one editable field. Sub is empty for a whole section.
type FieldKey struct {
	DocumentID string
	SectionKey sections.Key
	Sub        string
}

// Service guards an Enhancer with an input ceiling and a per-field lock
type Service struct {
	enhancer Enhancer
	maxRunes int
	validate *validator.Validate
	logger   *zap.Logger

	mu       sync.Mutex
	inflight map[FieldKey]struct{}
}

// NewService creates a service; maxRunes <= 0 uses DefaultMaxInputRunes
func NewService(enhancer Enhancer, maxRunes int, log *zap.Logger) *Service {
	if maxRunes <= 0 {
		maxRunes = DefaultMaxInputRunes
	}
	return &Service{
		enhancer: enhancer,
		maxRunes: maxRunes,
		validate: validator.New(),
		logger:   logger.OrNop(log),
		inflight: make(map[FieldKey]struct{}),
	}
}

// MaxInputRunes returns the configured input ceiling
func (s *Service) MaxInputRunes() int {
	return s.maxRunes
}

// Acquire reserves the field identified by key until release is called.
// It fails with ErrFieldBusy while another holder has the field.
func (s *Service) Acquire(key FieldKey) (release func(), err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return nil, ErrFieldBusy
	}
	s.inflight[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.inflight, key)
			s.mu.Unlock()
		})
	}, nil
}

// Run sends req for the field identified by key and returns the rewritten text.
// A second call for the same field while one is in flight fails with ErrFieldBusy.
func (s *Service) Run(ctx context.Context, key FieldKey, req Request) (string, error) {
	if err := s.checkInput(req.Text); err != nil {
		return "", err
	}
	release, err := s.Acquire(key)
	if err != nil {
		return "", err
	}
	defer release()
	return s.call(ctx, key, req)
}

func (s *Service) call(ctx context.Context, key FieldKey, req Request) (string, error) {
	log := s.logger.With(logger.Section(key.DocumentID, string(key.SectionKey))...)
	log.Debug("enhancement requested",
		zap.String("sub", key.Sub),
		zap.Int("runes", utf8.RuneCountInString(req.Text)),
		zap.String("text", logger.Truncate(req.Text, 80)))

	res, err := s.enhancer.Enhance(ctx, req)
	if err != nil {
		log.Warn("enhancement failed", zap.Error(err))
		return "", &Error{Message: "collaborator call failed", Cause: err}
	}
	if res == nil || strings.TrimSpace(res.OptimizedText) == "" {
		log.Warn("enhancement returned no text")
		return "", &Error{Message: "collaborator returned no text"}
	}

	log.Info("enhancement completed", zap.Int("runes", utf8.RuneCountInString(res.OptimizedText)))
	return strings.TrimSpace(res.OptimizedText), nil
}

// EnhanceSection rewrites the whole value of an AI-eligible freeform section and
// stores it in doc. On failure doc is not modified.
func (s *Service) EnhanceSection(ctx context.Context, doc *document.Document, key sections.Key) (string, error) {
	return s.RewriteSection(ctx, doc, key, func(out string) error {
		return doc.SetValue(key, out)
	})
}

// RewriteSection rewrites the value of an AI-eligible freeform section read from doc
// and hands the result to apply. The field stays reserved until apply returns, so a
// second rewrite of the same field cannot start from text the first is about to replace.
func (s *Service) RewriteSection(ctx context.Context, doc *document.Document, key sections.Key, apply func(out string) error) (string, error) {
	sec, err := EligibleSection(doc, key)
	if err != nil {
		return "", err
	}
	req := Request{Text: sec.Value, Language: languageOf(doc), Section: sec.Label}
	if err := s.checkInput(req.Text); err != nil {
		return "", err
	}

	field := FieldKey{DocumentID: doc.ID.String(), SectionKey: key}
	release, err := s.Acquire(field)
	if err != nil {
		return "", err
	}
	defer release()

	out, err := s.call(ctx, field, req)
	if err != nil {
		return "", err
	}
	if err := apply(out); err != nil {
		return "", err
	}
	return out, nil
}

// EnhanceDetails rewrites the details of a structured record and returns a copy
// with only Details replaced. The section itself is untouched until the caller commits.
func (s *Service) EnhanceDetails(ctx context.Context, doc *document.Document, key sections.Key, rec codec.Record) (codec.Record, error) {
	sec, err := DetailsSection(doc, key)
	if err != nil {
		return rec, err
	}

	out, err := s.Run(ctx, FieldKey{DocumentID: doc.ID.String(), SectionKey: key, Sub: SubDetails}, Request{
		Text:     rec.Details,
		Language: languageOf(doc),
		Section:  sec.Label,
		Details:  true,
	})
	if err != nil {
		return rec, err
	}
	rec.Details = out
	return rec, nil
}

// EligibleSection returns the section if its whole value may be rewritten
func EligibleSection(doc *document.Document, key sections.Key) (document.Section, error) {
	sec, ok := doc.Get(key)
	if !ok {
		return sec, fmt.Errorf("%w: %q", document.ErrUnknownSection, key)
	}
	if !sec.AIEligible || sec.Structured {
		return sec, fmt.Errorf("%w: %q", ErrNotEligible, key)
	}
	return sec, nil
}

// DetailsSection returns the section if its records carry a rewritable details field
func DetailsSection(doc *document.Document, key sections.Key) (document.Section, error) {
	sec, ok := doc.Get(key)
	if !ok {
		return sec, fmt.Errorf("%w: %q", document.ErrUnknownSection, key)
	}
	if !sec.AIEligible || !sec.Structured {
		return sec, fmt.Errorf("%w: %q", ErrNotEligible, key)
	}
	return sec, nil
}

func (s *Service) checkInput(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyInput
	}
	err := s.validate.Var(text, fmt.Sprintf("required,max=%d", s.maxRunes))
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return &InputTooLongError{Runes: utf8.RuneCountInString(text), Max: s.maxRunes}
	}
	return fmt.Errorf("failed to check input: %w", err)
}

func languageOf(doc *document.Document) string {
	if doc.Language == "" {
		return "en"
	}
	return doc.Language
}
