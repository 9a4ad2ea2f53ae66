package resume

import "fmt"

// LoadError represents a failure to produce a parsed resume record
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resume %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("resume %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
