package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInvoicePayload() map[string]any {
	return map[string]any{
		"invoice_number": "I-1",
		"date":           "2025-01-01",
		"amount":         100,
		"customer":       map[string]any{"name": "A"},
		"items": []any{
			map[string]any{"amount": 40},
			map[string]any{"amount": 60},
		},
		"total": 100,
	}
}

func TestValidate_ValidInvoice(t *testing.T) {
	result, err := Validate(validInvoicePayload())
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Equal(t, TypeInvoice, result.DocumentType)
	assert.Empty(t, result.MissingFields)
	assert.Empty(t, result.TypeErrors)
	assert.Empty(t, result.Anomalies)
	assert.Equal(t, SchemaVersion, result.Metadata.SchemaVersion)
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	payload := map[string]any{"invoice_number": "I-2"}

	result, err := Validate(payload)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	assert.Contains(t, result.MissingFields, "date")
	assert.Contains(t, result.MissingFields, "amount")
	assert.Contains(t, result.MissingFields, "customer")
}

func TestValidate_TypeError(t *testing.T) {
	payload := validInvoicePayload()
	payload["amount"] = "not a number"

	result, err := Validate(payload)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	require.Len(t, result.TypeErrors, 1)
	assert.Contains(t, result.TypeErrors[0], "amount")
	assert.Empty(t, result.MissingFields)
}

func TestValidate_NumericFieldAcceptsIntAndFloat(t *testing.T) {
	payload := validInvoicePayload()
	payload["amount"] = 99.95

	result, err := Validate(payload)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidate_InvoiceTotalMismatchAnomaly(t *testing.T) {
	payload := validInvoicePayload()
	payload["total"] = 150

	result, err := Validate(payload)
	require.NoError(t, err)

	// Anomaly detection is independent of schema validity.
	assert.True(t, result.Valid)
	require.Len(t, result.Anomalies, 1)
	assert.Equal(t, "Total amount doesn't match sum of items", result.Anomalies[0])
}

func TestValidate_InvoiceTotalWithinTolerance(t *testing.T) {
	payload := validInvoicePayload()
	payload["total"] = 100.005

	result, err := Validate(payload)
	require.NoError(t, err)
	assert.Empty(t, result.Anomalies)
}

func TestValidate_RFQMissingItems(t *testing.T) {
	payload := map[string]any{
		"rfq_number": "R-7",
		"date":       "2025-02-02",
	}

	result, err := Validate(payload)
	require.NoError(t, err)

	assert.Equal(t, TypeRFQ, result.DocumentType)
	assert.False(t, result.Valid)
	assert.Contains(t, result.MissingFields, "items")
}

func TestValidate_ComplaintByReferenceKey(t *testing.T) {
	payload := map[string]any{
		"reference":   "C-9",
		"customer":    map[string]any{"name": "B"},
		"description": "damaged packaging",
	}

	result, err := Validate(payload)
	require.NoError(t, err)

	assert.Equal(t, TypeComplaint, result.DocumentType)
	assert.True(t, result.Valid)
}

func TestValidate_UnknownTypePassesThrough(t *testing.T) {
	payload := map[string]any{"something": "else"}

	result, err := Validate(payload)
	require.NoError(t, err)

	assert.Equal(t, TypeUnknown, result.DocumentType)
	assert.True(t, result.Valid)
	assert.Equal(t, payload, result.ProcessedData)
}

func TestDetectDocumentType_DiscriminatorOrder(t *testing.T) {
	// invoice_number wins over rfq_number when both are present.
	payload := map[string]any{"invoice_number": "I-1", "rfq_number": "R-1"}
	assert.Equal(t, TypeInvoice, DetectDocumentType(payload))
}
