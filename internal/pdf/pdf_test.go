package pdf

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText_PlainTextRoundTrip(t *testing.T) {
	original := "Quotation request for 50 units of product X-9."
	encoded := base64.StdEncoding.EncodeToString([]byte(original))

	result := ExtractText(encoded)

	require.True(t, result.Success)
	assert.Equal(t, original, result.Text)
	assert.Empty(t, result.Error)
}

func TestExtractText_InvalidBase64(t *testing.T) {
	result := ExtractText("!!!not-base64!!!")

	assert.False(t, result.Success)
	assert.Empty(t, result.Text)
	assert.Contains(t, result.Error, "Invalid base64 content")
}

func TestExtractText_TruncatedPDFReportsFailure(t *testing.T) {
	// Carries the %PDF signature but is not a readable document.
	encoded := base64.StdEncoding.EncodeToString([]byte("%PDF-1.4\ngarbage"))

	result := ExtractText(encoded)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "PDF processing error")
}

func TestTextFromContentStream_TextOperators(t *testing.T) {
	stream := []byte("BT\n/F1 12 Tf\n(Invoice) Tj\n0 -14 Td\n[(amount) -250 (due)] TJ\nT*\n(now) Tj\nET\n")

	text := textFromContentStream(stream)

	assert.Contains(t, text, "Invoice")
	assert.Contains(t, text, "amount")
	assert.Contains(t, text, "due")
	assert.Contains(t, text, "now")
}

func TestDecodeLiteral_Escapes(t *testing.T) {
	assert.Equal(t, "a(b)c", decodeLiteral([]byte(`a\(b\)c`)))
	assert.Equal(t, "tab\there", decodeLiteral([]byte(`tab\there`)))
	assert.Equal(t, " ", decodeLiteral([]byte(`\040`)))
}

func TestAnalyze_InvoiceKeywords(t *testing.T) {
	analysis := Analyze("INVOICE\nTotal amount due: $500")

	assert.Equal(t, "invoice", analysis.DocumentType)
	assert.Equal(t, 0.8, analysis.Metadata.Confidence)
	assert.Equal(t, 1, analysis.Metadata.PageCount)
}

func TestAnalyze_FirstMatchWins(t *testing.T) {
	// Both invoice and regulation terms are present; the invoice entry is
	// checked first.
	analysis := Analyze("invoice issued under the new regulation")

	assert.Equal(t, "invoice", analysis.DocumentType)
	assert.Equal(t, 0.8, analysis.Metadata.Confidence)
}

func TestAnalyze_RegulationConfidence(t *testing.T) {
	analysis := Analyze("Updated compliance guidelines for data handling")

	assert.Equal(t, "regulation", analysis.DocumentType)
	assert.Equal(t, 0.9, analysis.Metadata.Confidence)
}

func TestAnalyze_PageCountFromFormFeeds(t *testing.T) {
	analysis := Analyze("page one\fpage two\fpage three")

	assert.Equal(t, 3, analysis.Metadata.PageCount)
}

func TestAnalyze_EmptyText(t *testing.T) {
	analysis := Analyze("")

	assert.Equal(t, "unknown", analysis.DocumentType)
	assert.Equal(t, 0, analysis.Metadata.PageCount)
	assert.Equal(t, "No text content provided", analysis.Metadata.Error)
}

func TestAnalyze_UnknownType(t *testing.T) {
	analysis := Analyze("completely unrelated text")

	assert.Equal(t, "unknown", analysis.DocumentType)
	assert.Equal(t, 0.0, analysis.Metadata.Confidence)
}
