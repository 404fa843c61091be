package pipeline

import (
	"context"

	"github.com/jonathan/doc-intake/internal/history"
)

// Document assembles everything recorded for one document id: the latest
// classification and client metadata, the processing history, and whichever
// per-format analyses were stored.
type Document struct {
	ID                string             `json:"id"`
	Classification    any                `json:"classification"`
	Metadata          any                `json:"metadata"`
	ProcessingHistory []history.Metadata `json:"processing_history"`
	PDFAnalysis       any                `json:"pdf_analysis,omitempty"`
	EmailAnalysis     any                `json:"email_analysis,omitempty"`
	JSONAnalysis      any                `json:"json_analysis,omitempty"`
}

// Document retrieves the stored records for a document id. It returns
// (nil, nil) when neither a classification nor client metadata exists for
// the id.
func (p *Pipeline) Document(ctx context.Context, id string) (*Document, error) {
	classification, err := p.store.Get(ctx, history.Key(id, history.StageClassification))
	if err != nil {
		return nil, err
	}
	metadata, err := p.store.Get(ctx, history.Key(id, history.StageMetadata))
	if err != nil {
		return nil, err
	}
	if classification == nil && metadata == nil {
		return nil, nil
	}

	snapshots, err := p.store.History(ctx, id)
	if err != nil {
		return nil, err
	}

	doc := &Document{ID: id, ProcessingHistory: snapshots}
	if classification != nil {
		doc.Classification = classification.Data
	}
	if metadata != nil {
		doc.Metadata = metadata.Data
	}

	for stage, target := range map[string]*any{
		history.StagePDF:   &doc.PDFAnalysis,
		history.StageEmail: &doc.EmailAnalysis,
		history.StageJSON:  &doc.JSONAnalysis,
	} {
		entry, err := p.store.Get(ctx, history.Key(id, stage))
		if err != nil {
			return nil, err
		}
		if entry != nil {
			*target = entry.Data
		}
	}

	return doc, nil
}
