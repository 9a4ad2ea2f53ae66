// Package ingestion turns resume and job description sources (files and job
// board URLs) into plain text.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun  = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	excessiveBlank = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes line endings and spacing while keeping headings, bullet
// lists and indentation intact. Runs of blank lines collapse to one blank line.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := excessiveBlank.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	// Markdown headings lose their indentation
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	indent := line[:len(line)-len(trimmed)]
	if isBulletLine(trimmed) {
		return indent + trimmed
	}
	return indent + whitespaceRun.ReplaceAllString(trimmed, " ")
}

func isBulletLine(trimmed string) bool {
	for _, b := range []string{"- ", "* ", "• ", "· "} {
		if strings.HasPrefix(trimmed, b) {
			return true
		}
	}
	return false
}
