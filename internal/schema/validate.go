package schema

import (
	"fmt"
	"math"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

// amountTolerance absorbs float rounding when comparing an invoice total
// against the sum of its line items.
const amountTolerance = 0.01

// ResultMetadata carries provenance for a validation result.
type ResultMetadata struct {
	Timestamp     string `json:"timestamp"`
	SchemaVersion string `json:"schema_version"`
}

// Result is the outcome of validating one structured payload.
// Valid is false iff MissingFields or TypeErrors is non-empty; anomalies are
// reported independently and do not affect Valid.
type Result struct {
	Valid         bool           `json:"valid"`
	DocumentType  string         `json:"document_type"`
	MissingFields []string       `json:"missing_fields"`
	TypeErrors    []string       `json:"type_errors"`
	Anomalies     []string       `json:"anomalies"`
	ProcessedData map[string]any `json:"processed_data"`
	Metadata      ResultMetadata `json:"metadata"`
}

// Validate checks a structured payload against the schema for its inferred
// document type and runs the anomaly pass. Unknown document types pass
// through unvalidated. The original payload is always echoed back verbatim
// as ProcessedData.
func Validate(payload map[string]any) (*Result, error) {
	result := &Result{
		Valid:         true,
		DocumentType:  DetectDocumentType(payload),
		MissingFields: []string{},
		TypeErrors:    []string{},
		Anomalies:     []string{},
		ProcessedData: payload,
		Metadata: ResultMetadata{
			Timestamp:     time.Now().UTC().Format(time.RFC3339),
			SchemaVersion: SchemaVersion,
		},
	}

	if compiled, ok := schemas[result.DocumentType]; ok {
		outcome, err := compiled.Validate(gojsonschema.NewGoLoader(payload))
		if err != nil {
			return nil, fmt.Errorf("failed to validate payload: %w", err)
		}
		for _, desc := range outcome.Errors() {
			switch desc.Type() {
			case "required":
				if property, ok := desc.Details()["property"].(string); ok {
					result.MissingFields = append(result.MissingFields, property)
				}
			default:
				result.TypeErrors = append(result.TypeErrors, fmt.Sprintf(
					"%s: expected %v, got %v",
					desc.Field(), desc.Details()["expected"], desc.Details()["given"],
				))
			}
		}
		if len(result.MissingFields) > 0 || len(result.TypeErrors) > 0 {
			result.Valid = false
		}
	}

	if result.DocumentType == TypeInvoice {
		result.Anomalies = append(result.Anomalies, detectInvoiceAnomalies(payload)...)
	}

	return result, nil
}

// detectInvoiceAnomalies cross-checks the invoice total against the sum of
// its line-item amounts. Items without a numeric amount count as zero.
func detectInvoiceAnomalies(payload map[string]any) []string {
	items, hasItems := payload["items"].([]any)
	total, hasTotal := asFloat(payload["total"])
	if !hasItems || !hasTotal {
		return nil
	}

	var itemsTotal float64
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if amount, ok := asFloat(item["amount"]); ok {
			itemsTotal += amount
		}
	}

	if math.Abs(itemsTotal-total) > amountTolerance {
		return []string{"Total amount doesn't match sum of items"}
	}
	return nil
}

// asFloat widens the numeric types a payload field may carry, whether it
// came from JSON decoding or was constructed in-process.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
