package pdf

import (
	"strings"
	"unicode/utf8"
)

// AnalysisMetadata carries measurements taken during text analysis.
type AnalysisMetadata struct {
	PageCount  int     `json:"page_count"`
	Confidence float64 `json:"confidence"`
	Length     int     `json:"length"`
	Error      string  `json:"error,omitempty"`
}

// Analysis is the document-type classification of extracted PDF text.
type Analysis struct {
	DocumentType string           `json:"document_type"`
	Content      string           `json:"content"`
	Metadata     AnalysisMetadata `json:"metadata"`
}

// typeIndicators is the PDF-specific keyword table. Entries are checked in
// order and the first hit decides the type.
var typeIndicators = []struct {
	docType    string
	confidence float64
	terms      []string
}{
	{"invoice", 0.8, []string{"invoice", "bill", "payment", "amount due", "total amount"}},
	{"rfq", 0.8, []string{"quotation", "quote", "rfq", "price request", "pricing"}},
	{"complaint", 0.7, []string{"complaint", "dissatisfaction", "issue", "problem", "unsatisfactory"}},
	{"regulation", 0.9, []string{"regulation", "policy", "compliance", "directive", "guidelines"}},
}

// Analyze classifies extracted text into a document type. The page count is
// approximated from form-feed separators, which extraction inserts between
// pages.
func Analyze(text string) Analysis {
	if text == "" {
		return Analysis{
			DocumentType: "unknown",
			Content:      "",
			Metadata:     AnalysisMetadata{PageCount: 0, Error: "No text content provided"},
		}
	}

	lowered := strings.ToLower(text)
	docType := "unknown"
	confidence := 0.0
	for _, indicator := range typeIndicators {
		if containsAnyTerm(lowered, indicator.terms) {
			docType = indicator.docType
			confidence = indicator.confidence
			break
		}
	}

	return Analysis{
		DocumentType: docType,
		Content:      text,
		Metadata: AnalysisMetadata{
			PageCount:  strings.Count(text, "\f") + 1,
			Confidence: confidence,
			Length:     utf8.RuneCountInString(text),
		},
	}
}

func containsAnyTerm(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
