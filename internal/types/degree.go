// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// DegreeLevel is the ordinal rank of an academic credential.
type DegreeLevel int

const (
	// DegreeNone means no recognised degree
	DegreeNone DegreeLevel = 0
	// DegreeBachelor covers bachelor-equivalent credentials
	DegreeBachelor DegreeLevel = 1
	// DegreeMaster covers master-equivalent credentials
	DegreeMaster DegreeLevel = 2
	// DegreeDoctorate covers doctorate-equivalent credentials
	DegreeDoctorate DegreeLevel = 3
)

// String returns a human readable label for the level
func (l DegreeLevel) String() string {
	switch l {
	case DegreeBachelor:
		return "bachelor"
	case DegreeMaster:
		return "master"
	case DegreeDoctorate:
		return "doctorate"
	default:
		return "none"
	}
}
