package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/doc-intake/internal/classify"
	"github.com/jonathan/doc-intake/internal/email"
	"github.com/jonathan/doc-intake/internal/pdf"
	"github.com/jonathan/doc-intake/internal/schema"
)

func TestPrintClassification(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := &classify.Record{
		Format:      classify.FormatEmail,
		Intent:      "Complaint",
		Subtype:     "severe",
		Urgency:     "high",
		KeyEntities: []string{"urgent", "problem"},
		Metadata:    classify.Metadata{ConfidenceScore: 0.8},
	}

	p.PrintClassification(record)
	output := buf.String()

	assert.Contains(t, output, "CLASSIFICATION")
	assert.Contains(t, output, "Complaint")
	assert.Contains(t, output, "severe")
	assert.Contains(t, output, "high")
	assert.Contains(t, output, "0.80")
	assert.Contains(t, output, "urgent")
}

func TestPrintClassification_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintClassification(nil)

	assert.Empty(t, buf.String())
}

func TestPrintValidation_Invalid(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &schema.Result{
		Valid:         false,
		DocumentType:  "invoice",
		MissingFields: []string{"customer"},
		TypeErrors:    []string{"amount: expected number, got string"},
		Anomalies:     []string{"Total amount doesn't match sum of items"},
	}

	p.PrintValidation(result)
	output := buf.String()

	assert.Contains(t, output, "SCHEMA VALIDATION")
	assert.Contains(t, output, "invoice")
	assert.Contains(t, output, "invalid")
	assert.Contains(t, output, "customer")
	assert.Contains(t, output, "amount: expected number, got string")
	assert.Contains(t, output, "Total amount doesn't match")
}

func TestPrintValidation_Valid(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &schema.Result{Valid: true, DocumentType: "rfq"}

	p.PrintValidation(result)
	output := buf.String()

	assert.Contains(t, output, "rfq")
	assert.Contains(t, output, "valid")
	assert.NotContains(t, output, "Missing Fields")
}

func TestPrintEmailAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := &email.Record{
		Metadata: email.Metadata{
			From:    "buyer@example.com",
			Subject: "Quote request",
		},
		Content: email.Content{
			Attachments: []email.Attachment{
				{Filename: "specs.pdf", ContentType: "application/pdf"},
			},
		},
		Analysis: email.Analysis{
			Intent:          "Request for Quotation",
			Urgency:         "High",
			HasEmbeddedJSON: true,
		},
	}

	p.PrintEmailAnalysis(record)
	output := buf.String()

	assert.Contains(t, output, "EMAIL ANALYSIS")
	assert.Contains(t, output, "buyer@example.com")
	assert.Contains(t, output, "Quote request")
	assert.Contains(t, output, "Request for Quotation")
	assert.Contains(t, output, "specs.pdf")
	assert.Contains(t, output, "Embedded JSON payload detected")
}

func TestPrintPDFAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	analysis := &pdf.Analysis{
		DocumentType: "invoice",
		Content:      "Invoice #123 for $450",
		Metadata: pdf.AnalysisMetadata{
			PageCount:  2,
			Confidence: 0.8,
			Length:     21,
		},
	}

	p.PrintPDFAnalysis(analysis)
	output := buf.String()

	assert.Contains(t, output, "PDF ANALYSIS")
	assert.Contains(t, output, "invoice")
	assert.Contains(t, output, "2")
	assert.Contains(t, output, "0.80")
	assert.Contains(t, output, "Invoice #123")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := &classify.Record{
		Format:  classify.FormatUnknown,
		Intent:  "A Very Long Intent Name That Should Be Truncated To Fit The Box",
		Urgency: "normal",
	}

	p.PrintClassification(record)
	output := buf.String()

	// Should contain box characters
	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "│"))
}
