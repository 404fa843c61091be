// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/doc-intake/internal/classify"
	"github.com/jonathan/doc-intake/internal/email"
	"github.com/jonathan/doc-intake/internal/pdf"
	"github.com/jonathan/doc-intake/internal/schema"
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

// PrintClassification outputs a human-readable summary of a classification.
func (p *Printer) PrintClassification(record *classify.Record) {
	if record == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Format:   %s\n", record.Format))
	sb.WriteString(fmt.Sprintf("Intent:   %s\n", record.Intent))
	if record.Subtype != "" {
		sb.WriteString(fmt.Sprintf("Subtype:  %s\n", record.Subtype))
	}
	sb.WriteString(fmt.Sprintf("Urgency:  %s\n", record.Urgency))
	sb.WriteString(fmt.Sprintf("Score:    %.2f\n", record.Metadata.ConfidenceScore))

	if len(record.KeyEntities) > 0 {
		sb.WriteString("\nKey Entities:\n")
		count := min(len(record.KeyEntities), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", record.KeyEntities[i]))
		}
		if len(record.KeyEntities) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(record.KeyEntities)-maxItemsToShow))
		}
	}

	p.printBox("CLASSIFICATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidation outputs a schema validation result with any missing fields,
// type errors, and anomalies found.
func (p *Printer) PrintValidation(result *schema.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Type:     %s\n", result.DocumentType))
	if result.Valid {
		sb.WriteString("Status:   ✅ valid\n")
	} else {
		sb.WriteString("Status:   ⚠ invalid\n")
	}

	if len(result.MissingFields) > 0 {
		sb.WriteString("\nMissing Fields:\n")
		for _, field := range result.MissingFields {
			sb.WriteString(fmt.Sprintf("  • %s\n", field))
		}
	}

	if len(result.TypeErrors) > 0 {
		sb.WriteString("\nType Errors:\n")
		count := min(len(result.TypeErrors), maxItemsToShow)
		for i := 0; i < count; i++ {
			msg := result.TypeErrors[i]
			if len(msg) > 50 {
				msg = msg[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", msg))
		}
		if len(result.TypeErrors) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.TypeErrors)-maxItemsToShow))
		}
	}

	if len(result.Anomalies) > 0 {
		sb.WriteString("\nAnomalies:\n")
		for _, anomaly := range result.Anomalies {
			if len(anomaly) > 50 {
				anomaly = anomaly[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", anomaly))
		}
	}

	p.printBox("SCHEMA VALIDATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEmailAnalysis outputs the parsed email headers and analysis.
func (p *Printer) PrintEmailAnalysis(record *email.Record) {
	if record == nil {
		return
	}

	var sb strings.Builder
	if record.Metadata.From != "" {
		sb.WriteString(fmt.Sprintf("From:     %s\n", record.Metadata.From))
	}
	if record.Metadata.Subject != "" {
		sb.WriteString(fmt.Sprintf("Subject:  %s\n", record.Metadata.Subject))
	}
	sb.WriteString(fmt.Sprintf("Intent:   %s\n", record.Analysis.Intent))
	sb.WriteString(fmt.Sprintf("Urgency:  %s\n", record.Analysis.Urgency))

	if len(record.Content.Attachments) > 0 {
		sb.WriteString("\nAttachments:\n")
		count := min(len(record.Content.Attachments), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", record.Content.Attachments[i].Filename))
		}
		if len(record.Content.Attachments) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(record.Content.Attachments)-maxItemsToShow))
		}
	}

	if record.Analysis.HasEmbeddedJSON {
		sb.WriteString("\nEmbedded JSON payload detected\n")
	}

	p.printBox("EMAIL ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPDFAnalysis outputs the extracted PDF text summary.
func (p *Printer) PrintPDFAnalysis(analysis *pdf.Analysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Type:     %s\n", analysis.DocumentType))
	sb.WriteString(fmt.Sprintf("Pages:    %d\n", analysis.Metadata.PageCount))
	sb.WriteString(fmt.Sprintf("Score:    %.2f\n", analysis.Metadata.Confidence))
	sb.WriteString(fmt.Sprintf("Length:   %d chars\n", analysis.Metadata.Length))

	preview := strings.ReplaceAll(analysis.Content, "\n", " ")
	if len(preview) > 50 {
		preview = preview[:47] + "..."
	}
	if preview != "" {
		sb.WriteString(fmt.Sprintf("\nPreview:  %s\n", preview))
	}

	if analysis.Metadata.Error != "" {
		sb.WriteString(fmt.Sprintf("\n⚠ %s\n", analysis.Metadata.Error))
	}

	p.printBox("PDF ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}
