package classify

import (
	"strings"
	"unicode/utf8"
)

// Metadata carries intake-level measurements alongside a classification.
type Metadata struct {
	ContentLength   int     `json:"content_length"`
	HasAttachments  bool    `json:"has_attachments"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// Record is the classification produced once per intake. Records are never
// mutated; a later intake under the same document id supersedes them.
type Record struct {
	Format      Format   `json:"format"`
	Intent      string   `json:"intent"`
	Subtype     string   `json:"subtype,omitempty"`
	Urgency     string   `json:"urgency"`
	KeyEntities []string `json:"key_entities"`
	Metadata    Metadata `json:"metadata"`
}

// Classify runs format detection and intent analysis over raw content and
// assembles the combined classification record.
func Classify(content string) Record {
	format := DetectFormat(content)
	intent := ClassifyIntent(content)

	return Record{
		Format:      format,
		Intent:      intent.PrimaryType,
		Subtype:     intent.Subtype,
		Urgency:     intent.Urgency,
		KeyEntities: intent.KeyEntities,
		Metadata: Metadata{
			ContentLength:   utf8.RuneCountInString(content),
			HasAttachments:  strings.Contains(strings.ToLower(content), "attachment"),
			ConfidenceScore: intent.Confidence,
		},
	}
}
