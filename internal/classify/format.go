// Package classify implements format detection and business-intent
// classification for raw document content.
package classify

import "strings"

// Format is the coarse structural category of a piece of content.
type Format string

// Known content formats.
const (
	FormatPDF     Format = "PDF"
	FormatEmail   Format = "Email"
	FormatJSON    Format = "JSON"
	FormatUnknown Format = "Unknown"
)

// pdfSignaturePrefixes are the base64 encodings of the PDF magic bytes
// ("%PDF" and "PDF-1.") as they appear at the start of an encoded document.
var pdfSignaturePrefixes = []string{"JVBERi", "UERGLTEu"}

// emailHeaderTokens are header names whose presence near the top of the
// content marks it as an email.
var emailHeaderTokens = []string{"From:", "To:", "Subject:", "Date:", "Message-ID:"}

// headerScanWindow limits the email header scan to the start of the content.
const headerScanWindow = 500

// DetectFormat inspects raw content and returns its structural format.
// Rules are applied in order, first match wins: base64 PDF signature,
// email headers within the first 500 characters, then a braced JSON body.
// Malformed input never fails; it degrades to FormatUnknown.
func DetectFormat(content string) Format {
	for _, prefix := range pdfSignaturePrefixes {
		if strings.HasPrefix(content, prefix) {
			return FormatPDF
		}
	}

	head := content
	if len(head) > headerScanWindow {
		head = head[:headerScanWindow]
	}
	for _, token := range emailHeaderTokens {
		if strings.Contains(head, token) {
			return FormatEmail
		}
	}

	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		return FormatJSON
	}

	return FormatUnknown
}
