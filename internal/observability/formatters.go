// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-ats/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
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
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads s to exactly width runes.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		runes := []rune(s)
		return string(runes[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}

// PrintProfile outputs a human-readable summary of a parsed resume.
func (p *Printer) PrintProfile(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	if profile.HasError() {
		fmt.Fprintf(&sb, "Error:      %s\n", profile.Error)
		p.printBox("Candidate Profile", sb.String())
		return
	}

	fmt.Fprintf(&sb, "Name:       %s\n", orDash(types.StringValue(profile.Name)))
	fmt.Fprintf(&sb, "Email:      %s\n", orDash(types.StringValue(profile.Email)))
	fmt.Fprintf(&sb, "Phone:      %s\n", orDash(types.StringValue(profile.Phone)))
	fmt.Fprintf(&sb, "Experience: %d years\n", profile.ExperienceYears)
	fmt.Fprintf(&sb, "Education:  %s\n", orDash(strings.Join(types.EducationNames(profile.Education), ", ")))
	fmt.Fprintf(&sb, "Sections:   %s\n", orDash(strings.Join(profile.SectionsDetected, ", ")))
	fmt.Fprintf(&sb, "Parser:     %s\n", profile.ParserVersion)

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Skills (%d):\n", len(profile.Skills))
	writeList(&sb, profile.Skills)

	p.printBox("Candidate Profile", sb.String())
}

// PrintScore outputs the per-dimension breakdown and explanation of a score.
func (p *Printer) PrintScore(result *types.ScoreBreakdown) {
	if result == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Total: %s / %s\n", fmtNum(result.TotalScore), fmtNum(result.MaxScore))
	if !result.SufficientData {
		sb.WriteString("\nInsufficient data: the resume could not be scored.\n")
		p.printBox("ATS Score", sb.String())
		return
	}

	b := result.Breakdown
	sb.WriteString("\n")
	if b.Skills != nil {
		writeBar(&sb, "Required skills", b.Skills.Required.Score, b.Skills.Required.Max)
		writeBar(&sb, "Nice-to-have", b.Skills.NiceToHave.Score, b.Skills.NiceToHave.Max)
	}
	if b.Experience != nil {
		writeBar(&sb, "Experience", b.Experience.Score, b.Experience.Max)
	}
	if b.Education != nil {
		writeBar(&sb, "Education", b.Education.Score, b.Education.Max)
	}
	if b.JobTitleRelevance != nil {
		writeBar(&sb, "Title relevance", b.JobTitleRelevance.Score, b.JobTitleRelevance.Max)
	}

	if b.Skills != nil && len(b.Skills.Required.MissingSkills) > 0 {
		sb.WriteString("\nMissing required skills:\n")
		writeList(&sb, b.Skills.Required.MissingSkills)
	}

	sb.WriteString("\n")
	for _, line := range result.Explanation {
		fmt.Fprintf(&sb, "%s\n", line)
	}

	p.printBox("ATS Score", sb.String())
}

// RankRow is one line of a ranking table.
type RankRow struct {
	Name  string
	Score *types.ScoreBreakdown
}

// PrintRanking outputs candidates in the order given.
func (p *Printer) PrintRanking(rows []RankRow) {
	var sb strings.Builder
	if len(rows) == 0 {
		sb.WriteString("No candidates.\n")
	}
	for i, r := range rows {
		score := "n/a"
		if r.Score != nil {
			score = fmtNum(r.Score.TotalScore)
			if !r.Score.SufficientData {
				score += " (insufficient data)"
			}
		}
		fmt.Fprintf(&sb, "%2d. %-40s %s\n", i+1, r.Name, score)
	}
	p.printBox("Ranking", sb.String())
}

func writeBar(sb *strings.Builder, label string, score, maxScore float64) {
	const width = 20
	filled := 0
	if maxScore > 0 {
		filled = int(score / maxScore * width)
	}
	filled = min(max(filled, 0), width)
	fmt.Fprintf(sb, "%-16s %s%s %s/%s\n", label,
		strings.Repeat("█", filled), strings.Repeat("░", width-filled), fmtNum(score), fmtNum(maxScore))
}

func writeList(sb *strings.Builder, items []string) {
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		fmt.Fprintf(sb, "  • %s\n", items[i])
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
}

func fmtNum(x float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", x), "0"), ".")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
