package llm

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned when a Gemini client is requested without a key
var ErrMissingAPIKey = errors.New("API key is required")

// EmbeddingError represents a failed embedding call
type EmbeddingError struct {
	Message string
	Cause   error
}

func (e *EmbeddingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding failed: %s", e.Message)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Cause
}
