// Package pdf decodes base64 PDF payloads, extracts their text, and
// classifies the extracted text into a document type.
package pdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfSignature is the magic byte prefix of a binary PDF file.
var pdfSignature = []byte("%PDF")

// ExtractionResult reports the outcome of text extraction. Text is set iff
// Success is true; Error carries the reason otherwise.
type ExtractionResult struct {
	Success bool   `json:"success"`
	Text    string `json:"text,omitempty"`
	Error   string `json:"error,omitempty"`
}

// failure builds an unsuccessful result with a descriptive reason.
func failure(format string, args ...any) ExtractionResult {
	return ExtractionResult{Success: false, Error: fmt.Sprintf(format, args...)}
}

// ExtractText decodes a base64 payload and extracts its text. Decoded bytes
// without the PDF signature are returned directly as plain UTF-8 text, which
// keeps small text fixtures round-trippable. All failures are reported as
// structured results, never as errors or panics.
func ExtractText(encoded string) ExtractionResult {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return failure("Invalid base64 content: %v", err)
	}

	if !bytes.HasPrefix(decoded, pdfSignature) {
		return ExtractionResult{Success: true, Text: string(decoded)}
	}

	text, err := extractFromBinary(decoded)
	if err != nil {
		return failure("PDF processing error: %v", err)
	}
	if text == "" {
		return failure("No text could be extracted from the PDF")
	}
	return ExtractionResult{Success: true, Text: text}
}

// extractFromBinary walks the document page by page, pulling text out of
// each page's content stream. Pages are joined with form feeds so the
// downstream page-count approximation holds.
func extractFromBinary(data []byte) (string, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}

	var pages []string
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		content, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil {
			continue
		}
		stream, err := io.ReadAll(content)
		if err != nil || len(stream) == 0 {
			continue
		}
		if pageText := textFromContentStream(stream); pageText != "" {
			pages = append(pages, pageText)
		}
	}

	return strings.Join(pages, "\f"), nil
}
