package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-sections/internal/codec"
	"github.com/jonathan/resume-sections/internal/document"
	"github.com/jonathan/resume-sections/internal/logger"
	"github.com/jonathan/resume-sections/internal/schemas"
	"github.com/jonathan/resume-sections/internal/sections"
)

// CreateDocumentRequest is the body of POST /documents
type CreateDocumentRequest struct {
	Text     string `json:"text" validate:"required"`
	Language string `json:"language,omitempty" validate:"omitempty,bcp47_language_tag"`
}

// SetSectionRequest is the body of PUT /documents/{id}/sections/{key}
type SetSectionRequest struct {
	Value *string `json:"value" validate:"required"`
}

// CommitRecordRequest is the body of POST /documents/{id}/sections/{key}/record
type CommitRecordRequest struct {
	Record json.RawMessage `json:"record" validate:"required"`
	Locale string          `json:"locale,omitempty"`
}

// EnhanceRequest is the optional body of POST /documents/{id}/sections/{key}/enhance.
// A record is required for structured sections, whose details are rewritten.
type EnhanceRequest struct {
	Record json.RawMessage `json:"record,omitempty"`
}

// RecordResponse is returned by the record endpoints
type RecordResponse struct {
	Key    sections.Key    `json:"key"`
	Schema sections.Schema `json:"schema"`
	Record codec.Record    `json:"record"`
}

// SectionResponse reports the new value of a section alongside the document
type SectionResponse struct {
	Key      sections.Key       `json:"key"`
	Value    string             `json:"value"`
	Document *document.Document `json:"document,omitempty"`
}

// handleCreateDocument imports raw résumé text as a new document
func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var req CreateDocumentRequest
	if err := s.decodeBody(w, r, &req, false); err != nil {
		s.failure(w, err)
		return
	}
	language := req.Language
	if language == "" {
		language = s.language
	}

	doc := document.ImportWith(s.detector, req.Text, language)
	if err := s.store.Save(r.Context(), doc); err != nil {
		s.failure(w, err)
		return
	}

	s.logger.Info("document imported", zap.String("document_id", doc.ID.String()))
	s.jsonResponse(w, http.StatusCreated, doc)
}

// handleListDocuments lists stored documents, newest first
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	list, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"documents": list, "count": len(list)})
}

// handleGetDocument returns one document
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := s.documentID(w, r)
	if !ok {
		return
	}
	doc, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

// handleDeleteDocument removes a document
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := s.documentID(w, r)
	if !ok {
		return
	}
	unlock := s.locks.lock(id)
	defer unlock()

	if err := s.store.Delete(r.Context(), id); err != nil {
		s.failure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSetSection replaces the text of a section directly
func (s *Server) handleSetSection(w http.ResponseWriter, r *http.Request) {
	id, key, ok := s.sectionPath(w, r)
	if !ok {
		return
	}
	var req SetSectionRequest
	if err := s.decodeBody(w, r, &req, false); err != nil {
		s.failure(w, err)
		return
	}

	doc, err := s.update(r.Context(), id, func(doc *document.Document) error {
		return doc.SetValue(key, *req.Value)
	})
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, SectionResponse{Key: key, Value: doc.Value(key), Document: doc})
}

// handleOpenRecord parses a structured section into a form record
func (s *Server) handleOpenRecord(w http.ResponseWriter, r *http.Request) {
	id, key, ok := s.sectionPath(w, r)
	if !ok {
		return
	}
	doc, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.failure(w, err)
		return
	}
	rec, err := doc.OpenForEdit(key)
	if err != nil {
		s.failure(w, err)
		return
	}
	sec, _ := doc.Get(key)
	s.jsonResponse(w, http.StatusOK, RecordResponse{Key: key, Schema: sec.Schema(), Record: rec})
}

// handleCommitRecord validates a record and writes it into a structured section
func (s *Server) handleCommitRecord(w http.ResponseWriter, r *http.Request) {
	id, key, ok := s.sectionPath(w, r)
	if !ok {
		return
	}

	mode := codec.ModeCreate
	if v := r.URL.Query().Get("mode"); v != "" {
		m, err := codec.ParseMode(v)
		if err != nil {
			s.failure(w, &ErrValidation{Field: "mode", Message: err.Error()})
			return
		}
		mode = m
	}

	var req CommitRecordRequest
	if err := s.decodeBody(w, r, &req, false); err != nil {
		s.failure(w, err)
		return
	}
	rec, err := decodeRecord(req.Record)
	if err != nil {
		s.failure(w, err)
		return
	}

	var value string
	doc, err := s.update(r.Context(), id, func(doc *document.Document) error {
		locale := req.Locale
		if locale == "" {
			locale = doc.Language
		}
		v, err := doc.CommitEdit(key, rec, mode, locale)
		value = v
		return err
	})
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, SectionResponse{Key: key, Value: value, Document: doc})
}

// handleEnhance runs the enhancement hook on a section. The collaborator call runs
// outside the document lock but inside the field reservation; the result is applied
// to a freshly loaded copy before the field is released.
func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request) {
	id, key, ok := s.sectionPath(w, r)
	if !ok {
		return
	}
	if s.enhancer == nil {
		s.failure(w, ErrEnhancerUnavailable)
		return
	}

	var req EnhanceRequest
	if err := s.decodeBody(w, r, &req, true); err != nil {
		s.failure(w, err)
		return
	}

	doc, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.failure(w, err)
		return
	}
	sec, ok := doc.Get(key)
	if !ok {
		s.failure(w, fmt.Errorf("%w: %q", document.ErrUnknownSection, key))
		return
	}

	if sec.Structured {
		s.enhanceDetails(w, r, doc, key, req)
		return
	}

	var updated *document.Document
	out, err := s.enhancer.RewriteSection(r.Context(), doc, key, func(out string) error {
		var err error
		updated, err = s.update(r.Context(), id, func(doc *document.Document) error {
			return doc.SetValue(key, out)
		})
		return err
	})
	if err != nil {
		s.failure(w, err)
		return
	}
	s.logger.Info("section enhanced", logger.Section(id.String(), string(key))...)
	s.jsonResponse(w, http.StatusOK, SectionResponse{Key: key, Value: out, Document: updated})
}

// enhanceDetails rewrites the details of a record without touching the stored section
func (s *Server) enhanceDetails(w http.ResponseWriter, r *http.Request, doc *document.Document, key sections.Key, req EnhanceRequest) {
	if len(req.Record) == 0 {
		s.failure(w, &ErrValidation{Field: "record", Message: "required for structured sections"})
		return
	}
	rec, err := decodeRecord(req.Record)
	if err != nil {
		s.failure(w, err)
		return
	}
	out, err := s.enhancer.EnhanceDetails(r.Context(), doc, key, rec)
	if err != nil {
		s.failure(w, err)
		return
	}
	sec, _ := doc.Get(key)
	s.jsonResponse(w, http.StatusOK, RecordResponse{Key: key, Schema: sec.Schema(), Record: out})
}

// update applies fn to the stored document under its lock and saves the result
func (s *Server) update(ctx context.Context, id uuid.UUID, fn func(*document.Document) error) (*document.Document, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(doc); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Server) documentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid document ID format")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) sectionPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, sections.Key, bool) {
	id, ok := s.documentID(w, r)
	if !ok {
		return uuid.Nil, "", false
	}
	key, err := sections.ParseKey(r.PathValue("key"))
	if err != nil {
		s.failure(w, err)
		return uuid.Nil, "", false
	}
	return id, key, true
}

// decodeBody reads a JSON body into dst and runs struct validation.
// An empty body is accepted only when optional is set.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any, optional bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		return &ErrValidation{Field: "body", Message: "invalid request body: " + err.Error()}
	}
	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &ErrValidation{Field: strings.ToLower(fe.Field()), Message: "failed on " + fe.Tag()}
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

// decodeRecord checks a raw record against the record schema before decoding it
func decodeRecord(raw json.RawMessage) (codec.Record, error) {
	var rec codec.Record
	if err := schemas.ValidateRecord(raw); err != nil {
		return rec, &ErrValidation{Field: "record", Message: err.Error()}
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return rec, &ErrValidation{Field: "record", Message: err.Error()}
	}
	return rec, nil
}
