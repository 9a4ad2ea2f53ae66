// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 8
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4)))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func pad(s string) string {
	if n := boxWidth - 4 - utf8.RuneCountInString(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// writeList writes "label: a, b, c" wrapped at the box width, or "label: -"
func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		fmt.Fprintf(sb, "%-9s -\n", label+":")
		return
	}

	shown := items
	if len(shown) > maxItemsToShow {
		shown = shown[:maxItemsToShow]
	}
	line := fmt.Sprintf("%-9s ", label+":")
	indent := strings.Repeat(" ", 10)
	for i, item := range shown {
		if i > 0 {
			line += ", "
		}
		if utf8.RuneCountInString(line)+utf8.RuneCountInString(item) > boxWidth-4 && i > 0 {
			sb.WriteString(strings.TrimRight(line, " ") + "\n")
			line = indent
		}
		line += item
	}
	if len(items) > maxItemsToShow {
		line += fmt.Sprintf(" (+%d more)", len(items)-maxItemsToShow)
	}
	sb.WriteString(line + "\n")
}

// PrintJobRecord outputs the structured view of a job description.
func (p *Printer) PrintJobRecord(jd *types.JobRecord) {
	if jd == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Title:    %s\n", jd.JobTitle)
	fmt.Fprintf(&sb, "Min exp:  %d years\n", jd.MinYearsExperience)
	writeList(&sb, "Skills", jd.Skills)
	writeList(&sb, "Degrees", jd.EducationTokens)

	p.printBox("PARSED JOB DESCRIPTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResumeRecord outputs the resume fields the scorer will use.
func (p *Printer) PrintResumeRecord(r *types.ResumeRecord) {
	if r == nil {
		return
	}

	var sb strings.Builder
	name := r.Name
	if name == "" {
		name = "(unknown)"
	}
	fmt.Fprintf(&sb, "Name:     %s\n", name)
	fmt.Fprintf(&sb, "Exp:      %.1f years\n", r.TotalExperienceYears)
	writeList(&sb, "Skills", r.Skills)
	writeList(&sb, "Degrees", r.DegreeTokens)

	p.printBox("RESUME RECORD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatch outputs the scores of a match and, when present, its explanation.
func (p *Printer) PrintMatch(resp *types.MatchResponse) {
	if resp == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Candidate:  %s\n", resp.CandidateName)
	fmt.Fprintf(&sb, "Job:        %s\n", resp.JobTitle)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Skills      %3d  %s\n", resp.MatchScores.SkillsMatch, bar(resp.MatchScores.SkillsMatch))
	fmt.Fprintf(&sb, "Experience  %3d  %s\n", resp.MatchScores.ExperienceMatch, bar(resp.MatchScores.ExperienceMatch))
	fmt.Fprintf(&sb, "Education   %3d  %s\n", resp.MatchScores.EducationMatch, bar(resp.MatchScores.EducationMatch))
	fmt.Fprintf(&sb, "Overall     %3d  %s\n", resp.MatchScores.OverallScore, bar(resp.MatchScores.OverallScore))

	if e := resp.Explanations; e != nil {
		sb.WriteString("\n")
		writeList(&sb, "Matched", e.SkillsMatched)
		writeList(&sb, "Missing", e.SkillsMissing)
		fmt.Fprintf(&sb, "Years:    %.2f of %d required\n", e.ResumeExperienceYears, e.JDMinExperienceYears)
		writeList(&sb, "Degrees", e.ResumeDegrees)
		method := types.MethodExact
		if e.UsedSemantic {
			method = types.MethodSemantic
		}
		fmt.Fprintf(&sb, "Method:   %s\n", method)
	}

	p.printBox("MATCH SCORES", strings.TrimSuffix(sb.String(), "\n"))
}

// bar renders a 0-100 score as a 20-cell gauge
func bar(score int) string {
	filled := max(0, min(20, score/5))
	return strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
}
