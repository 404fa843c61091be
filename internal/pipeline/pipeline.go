// Package pipeline sequences the intake stages for one document: metadata
// capture, classification, the format-specific extractor, and the history
// writes recording each stage's output.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/doc-intake/internal/classify"
	"github.com/jonathan/doc-intake/internal/email"
	"github.com/jonathan/doc-intake/internal/history"
	"github.com/jonathan/doc-intake/internal/pdf"
	"github.com/jonathan/doc-intake/internal/schema"
)

// Content types the pipeline accepts.
const (
	ContentTypeText      = "text"
	ContentTypeEmail     = "email"
	ContentTypeJSON      = "json"
	ContentTypePDFBase64 = "pdf_base64"
)

// Stage sources recorded in history entry provenance.
const (
	sourceClientMetadata = "client_metadata"
	sourceClassifier     = "classifier_agent"
	sourcePDF            = "pdf_agent"
	sourceEmail          = "email_agent"
	sourceJSON           = "json_agent"
)

// Request is one intake: raw content plus a caller-chosen document id.
// When JSON is set it takes precedence over Content and forces the json
// content type.
type Request struct {
	ID          string
	Content     string
	ContentType string
	JSON        map[string]any
	Metadata    map[string]any
}

// Result is the synchronous response for a processed intake. Exactly one of
// the analysis fields is populated, matching the content type.
type Result struct {
	Status         string          `json:"status"`
	Classification classify.Record `json:"classification"`
	PDFAnalysis    *pdf.Analysis   `json:"pdf_analysis,omitempty"`
	EmailAnalysis  *email.Record   `json:"email_analysis,omitempty"`
	JSONAnalysis   *schema.Result  `json:"json_analysis,omitempty"`
}

// Pipeline runs intakes against a history store. It holds no per-document
// state; a single Pipeline may serve concurrent intakes for distinct ids.
type Pipeline struct {
	store history.Store
}

// New creates a Pipeline writing to the given store.
func New(store history.Store) *Pipeline {
	return &Pipeline{store: store}
}

// Process runs detection, classification, and the format-specific extractor
// for one intake, recording every stage in the history store. Extraction
// and classification degrade to low-confidence results rather than failing;
// the only hard failures are PDF decode/extraction errors, unparseable
// declared-JSON content, unsupported content types, and store errors, which
// propagate to the caller.
func (p *Pipeline) Process(ctx context.Context, req Request) (*Result, error) {
	content := req.Content
	contentType := req.ContentType
	if contentType == "" {
		contentType = ContentTypeText
	}

	// Webhook payloads carry the structured body in a separate field.
	if req.JSON != nil {
		raw, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal json payload: %w", err)
		}
		content = string(raw)
		contentType = ContentTypeJSON
	}

	metadata := req.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	if err := p.store.Store(ctx, history.Key(req.ID, history.StageMetadata), metadata, sourceClientMetadata); err != nil {
		return nil, err
	}

	classification := classify.Classify(content)
	if err := p.store.Store(ctx, history.Key(req.ID, history.StageClassification), classification, sourceClassifier); err != nil {
		return nil, err
	}

	result := &Result{Status: "processed", Classification: classification}

	switch contentType {
	case ContentTypeText:
		// Classification only; no format-specific extractor.

	case ContentTypePDFBase64:
		if err := p.processPDF(ctx, req.ID, content, result); err != nil {
			return nil, err
		}

	case ContentTypeEmail:
		if err := p.processEmail(ctx, req.ID, content, result); err != nil {
			return nil, err
		}

	case ContentTypeJSON:
		if err := p.processJSON(ctx, req.ID, content, result); err != nil {
			return nil, err
		}

	default:
		return nil, &ErrUnsupportedContentType{ContentType: contentType}
	}

	return result, nil
}

func (p *Pipeline) processPDF(ctx context.Context, id, content string, result *Result) error {
	extraction := pdf.ExtractText(content)
	if !extraction.Success {
		return &ErrPDFProcessing{Reason: extraction.Error}
	}

	analysis := pdf.Analyze(extraction.Text)
	if err := p.store.Store(ctx, history.Key(id, history.StagePDF), analysis, sourcePDF); err != nil {
		return err
	}
	result.PDFAnalysis = &analysis
	return nil
}

func (p *Pipeline) processEmail(ctx context.Context, id, content string, result *Result) error {
	// HTML email payloads are reduced to visible text before parsing.
	if strings.Contains(strings.ToLower(content), "<html") {
		content = email.StripHTML(content)
	}

	record := email.Extract(content)
	if err := p.store.Store(ctx, history.Key(id, history.StageEmail), record, sourceEmail); err != nil {
		return err
	}
	result.EmailAnalysis = record

	// Opportunistic embedded-JSON extraction: the widest {...} span in the
	// payload is fed through the schema validator when it parses.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return nil
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(content[start:end+1]), &payload); err != nil {
		return nil
	}

	validation, err := schema.Validate(payload)
	if err != nil {
		return err
	}
	if err := p.store.Store(ctx, history.Key(id, history.StageEmbeddedJSON), validation, sourceJSON); err != nil {
		return err
	}
	result.JSONAnalysis = validation
	return nil
}

func (p *Pipeline) processJSON(ctx context.Context, id, content string, result *Result) error {
	var payload map[string]any
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return &ErrInvalidJSON{}
	}

	validation, err := schema.Validate(payload)
	if err != nil {
		return err
	}
	if err := p.store.Store(ctx, history.Key(id, history.StageJSON), validation, sourceJSON); err != nil {
		return err
	}
	result.JSONAnalysis = validation
	return nil
}
