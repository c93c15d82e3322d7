// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/interview-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
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
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSpec outputs a human-readable summary of the interview spec.
func (p *Printer) PrintSpec(spec *types.InterviewSpec) {
	if spec == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Type:     %s\n", spec.InterviewType))
	sb.WriteString(fmt.Sprintf("Spec ID:  %s\n", spec.SpecID))
	sb.WriteString(fmt.Sprintf("Duration: %d min, max %d exchanges\n",
		spec.Constraints.MaxDurationMinutes, spec.Constraints.MaxExchanges))
	sb.WriteString("\nCompetencies:\n")
	for _, sel := range spec.Competencies {
		sb.WriteString(fmt.Sprintf("  • %s (%s)\n", sel.CompetencyID, sel.Tier))
	}

	p.printBox("INTERVIEW SPEC", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTurn outputs the scoring state after one turn.
func (p *Printer) PrintTurn(state *types.SessionState) {
	if state == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Exchange: %d   Phase: %s\n", state.ExchangeCount(), state.CurrentPhase))
	sb.WriteString(fmt.Sprintf("Level:    %d (%s)   Trend: %s\n", state.OverallLevel, state.LevelName, state.LevelTrend))
	sb.WriteString(fmt.Sprintf("Urgency:  %s\n", state.Urgency))

	sb.WriteString("\nScores:\n")
	for _, sel := range state.Spec.Competencies {
		score := state.CompetencyScores[sel.CompetencyID]
		if score == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %-26s %d (%s)\n", sel.CompetencyID, score.CurrentLevel, score.Confidence))
	}

	p.printBox("TURN STATE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummary outputs the final hiring-decision summary.
func (p *Printer) PrintSummary(summary *types.Summary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:   level %d (%s)\n", summary.OverallLevel, summary.LevelName))
	sb.WriteString(fmt.Sprintf("Trend:     %s\n", summary.Trend))
	sb.WriteString(fmt.Sprintf("Exchanges: %d in %s\n\n", summary.ExchangeCount, summary.Duration))

	for _, comp := range summary.Competencies {
		sb.WriteString(fmt.Sprintf("%s [%s]\n", comp.Name, comp.Tier))
		sb.WriteString(fmt.Sprintf("  Level %d (%s), confidence %s\n", comp.Level, comp.LevelName, comp.Confidence))
		count := min(len(comp.Evidence), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", comp.Evidence[i]))
		}
		if len(comp.Evidence) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(comp.Evidence)-maxItemsToShow))
		}
	}

	if len(summary.RedFlags) > 0 {
		sb.WriteString("\nRed flags:\n")
		for _, flag := range summary.RedFlags {
			sb.WriteString(fmt.Sprintf("  ✗ %s\n", flag))
		}
	}
	if len(summary.GreenFlags) > 0 {
		sb.WriteString("\nGreen flags:\n")
		for _, flag := range summary.GreenFlags {
			sb.WriteString(fmt.Sprintf("  ✓ %s\n", flag))
		}
	}

	p.printBox("INTERVIEW SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}
