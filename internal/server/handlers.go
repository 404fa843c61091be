package server

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/doc-intake/internal/pipeline"
)

// ProcessRequest is the request body for POST /process.
type ProcessRequest struct {
	ID          string         `json:"id" validate:"required"`
	Content     string         `json:"content"`
	ContentType string         `json:"content_type" validate:"omitempty,oneof=text email json pdf_base64"`
	JSON        map[string]any `json:"json,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// handleProcess runs one intake synchronously and returns the stage results.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	result, err := s.pipe.Process(r.Context(), pipeline.Request{
		ID:          req.ID,
		Content:     req.Content,
		ContentType: req.ContentType,
		JSON:        req.JSON,
		Metadata:    req.Metadata,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleProcessFile accepts a multipart PDF upload and wraps it as a
// base64 intake. A missing document id is generated.
func (s *Server) handleProcessFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "file is required")
		return
	}
	defer func() { _ = file.Close() }()

	if header.Header.Get("Content-Type") != "application/pdf" {
		s.errorResponse(w, http.StatusBadRequest, "Unsupported file type")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to read upload: "+err.Error())
		return
	}

	id := r.FormValue("id")
	if id == "" {
		id = uuid.New().String()
	}

	result, err := s.pipe.Process(r.Context(), pipeline.Request{
		ID:          id,
		Content:     base64.StdEncoding.EncodeToString(content),
		ContentType: pipeline.ContentTypePDFBase64,
		Metadata: map[string]any{
			"filename":     header.Filename,
			"content_type": header.Header.Get("Content-Type"),
		},
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleGetDocument returns everything stored for a document id.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	doc, err := s.pipe.Document(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Store error: "+err.Error())
		return
	}
	if doc == nil {
		s.errorResponse(w, http.StatusNotFound, "Document not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, doc)
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
