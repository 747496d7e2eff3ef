package server

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/resume-sections/internal/db"
	"github.com/jonathan/resume-sections/internal/document"
	"github.com/jonathan/resume-sections/internal/enhance"
	"github.com/jonathan/resume-sections/internal/sections"
	"github.com/jonathan/resume-sections/internal/validation"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrEnhancerUnavailable is returned when no enhancement collaborator is configured
var ErrEnhancerUnavailable = errors.New("enhancement is not configured")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		dateErr       *validation.DateError
		tooLong       *enhance.InputTooLongError
		unknownKey    *sections.UnknownKeyError
		collaborator  *enhance.Error
	)
	switch {
	case errors.As(err, &dateErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, enhance.ErrFieldBusy):
		return http.StatusConflict
	case errors.As(err, &validationErr), errors.As(err, &tooLong),
		errors.Is(err, enhance.ErrEmptyInput), errors.Is(err, enhance.ErrNotEligible),
		errors.Is(err, document.ErrNotStructured):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrNotFound), errors.Is(err, document.ErrUnknownSection), errors.As(err, &unknownKey):
		return http.StatusNotFound
	case errors.As(err, &collaborator):
		return http.StatusBadGateway
	case errors.Is(err, ErrEnhancerUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// failure writes err with the status HTTPStatus assigns to it. Date rule
// violations carry their code alongside the localised message.
func (s *Server) failure(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	}

	var dateErr *validation.DateError
	if errors.As(err, &dateErr) {
		s.jsonResponse(w, status, map[string]string{"error": dateErr.Message, "code": string(dateErr.Code)})
		return
	}
	s.errorResponse(w, status, err.Error())
}
