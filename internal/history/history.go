// Package history implements the processing-history store: an append or
// overwrite key-value ledger that records each stage's payload together with
// provenance metadata. Keys are namespaced per document id and stage.
package history

import (
	"context"
	"time"
)

// Version is the schema version stamped on every entry.
const Version = "1.0"

// Stage names used to derive composite keys for one document.
const (
	StageMetadata       = "metadata"
	StageClassification = "classification"
	StagePDF            = "pdf"
	StageEmail          = "email"
	StageJSON           = "json"
	StageEmbeddedJSON   = "embedded_json"
)

// Key derives the composite store key for a document stage.
func Key(documentID, stage string) string {
	return documentID + "_" + stage
}

// Metadata is the provenance attached to a stored entry.
type Metadata struct {
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
	Version   string `json:"version"`
}

// Entry pairs a stage payload with its provenance.
type Entry struct {
	Data     any      `json:"data"`
	Metadata Metadata `json:"metadata"`
}

// Store is the persistence contract the pipeline writes against.
//
// Store fully replaces any prior entry under the key. Get returns (nil, nil)
// when the key is absent. Update shallow-merges partial fields into an
// existing entry's data, falling back to Store when no entry exists.
// History returns the metadata snapshots observed for the key; the current
// implementations keep only the most recent snapshot, not a full audit
// trail. Concurrent writers to the same key race last-writer-wins.
type Store interface {
	Store(ctx context.Context, key string, data any, source string) error
	Get(ctx context.Context, key string) (*Entry, error)
	Update(ctx context.Context, key string, fields map[string]any, source string) error
	History(ctx context.Context, key string) ([]Metadata, error)
}

// newMetadata stamps provenance for a write. An empty source is recorded as
// "unknown".
func newMetadata(source string) Metadata {
	if source == "" {
		source = "unknown"
	}
	return Metadata{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Source:    source,
		Version:   Version,
	}
}

// mergeFields shallow-merges partial fields into existing entry data.
// Shared field names are overwritten, others preserved. Non-mapping data is
// replaced wholesale.
func mergeFields(existing any, fields map[string]any) any {
	data, ok := existing.(map[string]any)
	if !ok {
		return fields
	}
	for name, value := range fields {
		data[name] = value
	}
	return data
}
