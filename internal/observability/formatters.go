// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/bob-diagnostic/internal/maintenance"
	"github.com/jonathan/bob-diagnostic/internal/types"
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
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDiagnostic outputs a human-readable summary of a project diagnostic.
func (p *Printer) PrintDiagnostic(diagnostic *types.Diagnostic) {
	if diagnostic == nil {
		return
	}

	var sb strings.Builder
	category := diagnostic.CategoryID
	if category == "" {
		category = "(none)"
	}
	sb.WriteString(fmt.Sprintf("Main challenge: %s\n", category))
	sb.WriteString(fmt.Sprintf("Score:          %d\n", diagnostic.OverallScore))
	if diagnostic.OverallSentence != "" {
		sb.WriteString(fmt.Sprintf("Sentence:       %s\n", diagnostic.OverallSentence))
	}
	sb.WriteString("\n")

	sb.WriteString("Categories:\n")
	for _, c := range diagnostic.Categories {
		marker := " "
		if c.IsHighlighted {
			marker = "★"
		}
		sb.WriteString(fmt.Sprintf("  %s %s: %s\n", marker, c.CategoryID, c.Relevance))
	}

	p.printBox("DIAGNOSTIC", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMissingFields outputs the project fields that would refine the diagnostic.
func (p *Printer) PrintMissingFields(fields []types.MissingField) {
	if len(fields) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(fields), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s (priority %d)\n", fields[i].Field, fields[i].Priority))
	}
	if len(fields) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(fields)-maxItemsToShow))
	}

	p.printBox("MISSING FIELDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQuickDiagnostic outputs the quick comments, one per commented field.
func (p *Printer) PrintQuickDiagnostic(quick *types.QuickDiagnostic) {
	if quick == nil || len(quick.Comments) == 0 {
		return
	}

	var sb strings.Builder
	for i, c := range quick.Comments {
		sb.WriteString(fmt.Sprintf("%s\n", c.Field))
		sb.WriteString(fmt.Sprintf("  %s\n", strings.Join(c.Comment.StringParts, "")))
		if i < len(quick.Comments)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("QUICK DIAGNOSTIC", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintViolations outputs the problems found in the content.
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) PrintViolations(violations []maintenance.Violation) {
	if len(violations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("✅ NO VIOLATIONS FOUND", boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d violations:\n\n", len(violations)))

	for i, v := range violations {
		icon := "⚠"
		if v.Severity == maintenance.SeverityError {
			icon = "✗"
		}
		sb.WriteString(fmt.Sprintf("%s %s %s/%s\n", icon, v.Type, v.Collection, v.RecordID))
		sb.WriteString(fmt.Sprintf("  %s\n", v.Details))
		if i < len(violations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("CONTENT VIOLATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// truncate shortens s to width runes, ending with "..." when cut.
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// pad right-pads s with spaces to width runes. fmt's %-*s counts bytes.
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
