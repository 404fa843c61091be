// Package schema validates structured document payloads against per-type
// JSON Schemas and runs cross-field anomaly checks.
package schema

import "github.com/xeipuuv/gojsonschema"

// SchemaVersion is stamped on every validation result.
const SchemaVersion = "1.0"

// Document types inferred from discriminating payload keys.
const (
	TypeInvoice   = "invoice"
	TypeRFQ       = "rfq"
	TypeComplaint = "complaint"
	TypeUnknown   = "unknown"
)

// Numeric fields accept either integers or floats, so they are declared as
// JSON Schema "number". Nested structures are only checked for their
// container type; their contents are free-form.
const invoiceSchemaJSON = `{
	"type": "object",
	"required": ["invoice_number", "date", "amount", "customer"],
	"properties": {
		"invoice_number": {"type": "string"},
		"date":           {"type": "string"},
		"amount":         {"type": "number"},
		"customer":       {"type": "object"},
		"items":          {"type": "array"},
		"tax":            {"type": "number"},
		"total":          {"type": "number"}
	}
}`

const rfqSchemaJSON = `{
	"type": "object",
	"required": ["rfq_number", "date", "items"],
	"properties": {
		"rfq_number": {"type": "string"},
		"date":       {"type": "string"},
		"customer":   {"type": "object"},
		"items":      {"type": "array"},
		"deadline":   {"type": "string"}
	}
}`

const complaintSchemaJSON = `{
	"type": "object",
	"required": ["reference", "customer", "description"],
	"properties": {
		"reference":   {"type": "string"},
		"customer":    {"type": "object"},
		"description": {"type": "string"},
		"severity":    {"type": "string"},
		"category":    {"type": "string"}
	}
}`

// schemas maps each known document type to its compiled JSON Schema.
var schemas = map[string]*gojsonschema.Schema{
	TypeInvoice:   mustCompile(invoiceSchemaJSON),
	TypeRFQ:       mustCompile(rfqSchemaJSON),
	TypeComplaint: mustCompile(complaintSchemaJSON),
}

func mustCompile(schemaJSON string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		panic(err)
	}
	return s
}

// DetectDocumentType infers the document type from the presence of a
// discriminating key, checked in fixed order.
func DetectDocumentType(payload map[string]any) string {
	if _, ok := payload["invoice_number"]; ok {
		return TypeInvoice
	}
	if _, ok := payload["rfq_number"]; ok {
		return TypeRFQ
	}
	if _, ok := payload["complaint"]; ok {
		return TypeComplaint
	}
	if _, ok := payload["reference"]; ok {
		return TypeComplaint
	}
	return TypeUnknown
}
