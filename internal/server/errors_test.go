package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-sections/internal/db"
	"github.com/jonathan/resume-sections/internal/document"
	"github.com/jonathan/resume-sections/internal/enhance"
	"github.com/jonathan/resume-sections/internal/sections"
	"github.com/jonathan/resume-sections/internal/validation"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"date rule", &validation.DateError{Code: validation.CodeEndBeforeStart}, http.StatusUnprocessableEntity},
		{"busy", enhance.ErrFieldBusy, http.StatusConflict},
		{"too long", &enhance.InputTooLongError{Runes: 5, Max: 4}, http.StatusBadRequest},
		{"empty input", enhance.ErrEmptyInput, http.StatusBadRequest},
		{"not eligible", fmt.Errorf("%w: %q", enhance.ErrNotEligible, "name"), http.StatusBadRequest},
		{"not structured", fmt.Errorf("%w: %q", document.ErrNotStructured, "skills"), http.StatusBadRequest},
		{"request validation", &ErrValidation{Field: "text", Message: "failed on required"}, http.StatusBadRequest},
		{"not found", db.ErrNotFound, http.StatusNotFound},
		{"unknown key", &sections.UnknownKeyError{Name: "hobbies"}, http.StatusNotFound},
		{"collaborator", &enhance.Error{Message: "collaborator call failed", Cause: errors.New("timeout")}, http.StatusBadGateway},
		{"unavailable", ErrEnhancerUnavailable, http.StatusServiceUnavailable},
		{"store failure", &db.StoreError{Message: "boom"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "text", Message: "failed on required"}
	assert.Equal(t, "validation error: text - failed on required", err.Error())
}
