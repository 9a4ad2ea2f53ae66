package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-matcher/internal/ingestion"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ingestion.ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, ingestion.ErrHTTPRequestFailed),
		errors.Is(err, ingestion.ErrContentExtractionFailed),
		errors.Is(err, ingestion.ErrEmptyContent):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// validationError converts validator output to an ErrValidation for the
// first failing field
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{Field: fe.Field(), Message: fe.Tag()}
	}
	return &ErrValidation{Field: "request", Message: err.Error()}
}
