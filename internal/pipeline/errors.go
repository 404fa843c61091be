package pipeline

import "fmt"

// ErrPDFProcessing indicates PDF extraction failed for an intake.
type ErrPDFProcessing struct {
	Reason string
}

func (e *ErrPDFProcessing) Error() string {
	return fmt.Sprintf("PDF processing failed: %s", e.Reason)
}

// ErrInvalidJSON indicates declared-JSON content could not be parsed.
type ErrInvalidJSON struct{}

func (e *ErrInvalidJSON) Error() string {
	return "Invalid JSON content"
}

// ErrUnsupportedContentType indicates the caller declared a content type
// with no matching extractor.
type ErrUnsupportedContentType struct {
	ContentType string
}

func (e *ErrUnsupportedContentType) Error() string {
	return fmt.Sprintf("unsupported content type: %s", e.ContentType)
}
