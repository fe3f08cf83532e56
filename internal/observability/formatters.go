// Package observability provides formatted output utilities for the
// simulate CLI's verbose mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/talenthq/onboarding-engine/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
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

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMessage outputs one transcript entry with its author tag.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintMessage(m types.Message) {
	tag := "YOU"
	if m.Author == types.AuthorAssistant {
		tag = "BOT"
	}
	fmt.Fprintf(p.out, "[%s] %s\n", tag, m.Text)
}

// PrintDraft outputs a human-readable summary of the profile draft.
func (p *Printer) PrintDraft(draft types.ProfileDraft) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:      %s\n", orDash(draft.BasicDetails.FullName)))
	sb.WriteString(fmt.Sprintf("Location:  %s\n", orDash(draft.BasicDetails.Location)))
	sb.WriteString(fmt.Sprintf("Email:     %s\n", orDash(draft.BasicDetails.Email)))
	sb.WriteString(fmt.Sprintf("Phone:     %s\n", orDash(draft.BasicDetails.ContactNumber)))
	sb.WriteString(fmt.Sprintf("Anonymous: %v\n", draft.IsAnonymous))
	sb.WriteString("\n")

	if draft.Intent.Availability != "" {
		sb.WriteString(fmt.Sprintf("Available: %s\n", draft.Intent.Availability.Label()))
	}
	if len(draft.Intent.WorkTypes) > 0 {
		labels := make([]string, 0, len(draft.Intent.WorkTypes))
		for _, wt := range draft.Intent.WorkTypes {
			labels = append(labels, wt.Label())
		}
		sb.WriteString(fmt.Sprintf("Open to:   %s\n", strings.Join(labels, ", ")))
	}
	if draft.Intent.WorkStyle != "" {
		sb.WriteString(fmt.Sprintf("Style:     %s\n", draft.Intent.WorkStyle.Label()))
	}

	if n := len(draft.Experience); n > 0 {
		sb.WriteString(fmt.Sprintf("\nExperience (%d):\n", n))
		for _, e := range draft.Experience {
			sb.WriteString(fmt.Sprintf("  %s at %s\n", e.Role, e.Company))
		}
	}
	if n := len(draft.Education); n > 0 {
		sb.WriteString(fmt.Sprintf("\nEducation (%d):\n", n))
		for _, e := range draft.Education {
			sb.WriteString(fmt.Sprintf("  %s — %s\n", e.Institution, orDash(e.Degree)))
		}
	}

	if draft.WorkStyle.TraitCount() > 0 {
		sb.WriteString("\nWork style:\n")
		for _, section := range types.WorkStyleSections {
			for _, trait := range draft.WorkStyle.Traits(section) {
				sb.WriteString(fmt.Sprintf("  [%s] %s\n", section, trait))
			}
		}
	}

	if draft.Decision.Interpretation != "" {
		sb.WriteString("\nInterpretation:\n")
		sb.WriteString("  " + draft.Decision.Interpretation + "\n")
		sb.WriteString(fmt.Sprintf("  confirmed: %v\n", draft.Decision.Confirmed))
	}

	if n := len(draft.Evidence); n > 0 {
		sb.WriteString(fmt.Sprintf("\nEvidence (%d):\n", n))
		for _, item := range draft.Evidence {
			sb.WriteString(fmt.Sprintf("  [%s] %s\n", item.Kind, item.Name))
		}
	}

	p.printBox("PROFILE DRAFT", strings.TrimRight(sb.String(), "\n"))
}

// PrintTranscript outputs the whole message log.
func (p *Printer) PrintTranscript(entries []types.Message) {
	for _, m := range entries {
		p.PrintMessage(m)
	}
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
