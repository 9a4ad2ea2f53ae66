package pipeline

import "errors"

var (
	// ErrMissingResume is returned when a request names no resume file
	ErrMissingResume = errors.New("resume file is required")
	// ErrEmptyJobDescription is returned when no source yields job description text
	ErrEmptyJobDescription = errors.New("provide jd_text or jd_file")
)
