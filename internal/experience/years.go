// Package experience estimates years of professional experience from resume text.
package experience

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MaxYears caps every experience estimate
const MaxYears = 40.0

// Bounds for a plausible employment year; ranges outside are ignored
const (
	minRangeYear = 1980
	maxRangeYear = 2035
)

var (
	explicitYears = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:years|yrs)`)
	yearRange     = regexp.MustCompile(`(19\d{2}|20\d{2})\s*[-–]\s*(19\d{2}|20\d{2}|present|current|now)`)
)

// CurrentYear is the default reference year for open-ended ranges
func CurrentYear() int {
	return time.Now().Year()
}

// ExtractYears estimates total years of experience from free text. It takes the
// larger of the biggest explicit "N years" mention and the summed length of
// distinct year ranges such as "2018-2021" or "2020 – present", where open
// ranges end at referenceYear. The result lies in [0, MaxYears] with one decimal.
func ExtractYears(text string, referenceYear int) float64 {
	lower := strings.ToLower(text)

	best := 0.0
	for _, m := range explicitYears.FindAllStringSubmatch(lower, -1) {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v > best {
			best = v
		}
	}

	best = math.Max(best, math.Min(rangeYears(lower, referenceYear), MaxYears))
	best = math.Min(best, MaxYears)
	return math.Round(best*10) / 10
}

// rangeYears sums end-start over distinct (start, end) literal pairs
func rangeYears(lower string, referenceYear int) float64 {
	type pair struct{ start, end string }
	seen := make(map[pair]struct{})

	total := 0
	for _, m := range yearRange.FindAllStringSubmatch(lower, -1) {
		p := pair{m[1], m[2]}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}

		start, err := strconv.Atoi(p.start)
		if err != nil {
			continue
		}
		end := referenceYear
		if !isOpenEnded(p.end) {
			if end, err = strconv.Atoi(p.end); err != nil {
				continue
			}
		}

		if start >= minRangeYear && start <= maxRangeYear &&
			end >= minRangeYear && end <= maxRangeYear && end >= start {
			total += end - start
		}
	}
	return float64(total)
}

func isOpenEnded(s string) bool {
	switch s {
	case "present", "current", "now":
		return true
	}
	return false
}
