package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/doc-intake/internal/pipeline"
)

// HTTPStatus returns the appropriate HTTP status code for a pipeline error.
func HTTPStatus(err error) int {
	var (
		pdfErr         *pipeline.ErrPDFProcessing
		jsonErr        *pipeline.ErrInvalidJSON
		contentTypeErr *pipeline.ErrUnsupportedContentType
	)
	switch {
	case errors.As(err, &pdfErr), errors.As(err, &jsonErr), errors.As(err, &contentTypeErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
