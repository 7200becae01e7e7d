package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/passage/internal/core/domain"
	"github.com/custodia-labs/passage/internal/logger"
)

// documentJSON is the wire form of a document summary.
type documentJSON struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Source     string    `json:"source"`
	WordCount  int       `json:"wordCount"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// resultJSON is one retrieval hit on the wire.
type resultJSON struct {
	DocumentID string  `json:"documentId"`
	Title      string  `json:"title"`
	Source     string  `json:"source"`
	Text       string  `json:"text"`
	Score      float64 `json:"score"`
}

// errorJSON is the error body for all endpoints.
type errorJSON struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
}

func toDocumentJSON(s domain.DocumentSummary) documentJSON {
	return documentJSON{
		ID:         s.ID,
		Title:      s.Title,
		Source:     s.Source,
		WordCount:  s.WordCount,
		UploadedAt: s.UploadedAt,
	}
}

// handleUpload ingests the files of a multipart request.
// Files succeed or fail individually; the response lists both.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.maxUploadSize); err != nil {
		writeError(w, fmt.Errorf("%w: parsing multipart form: %v", domain.ErrInvalidInput, err))
		return
	}

	var raws []*domain.RawUpload
	for _, headers := range r.MultipartForm.File {
		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				writeError(w, fmt.Errorf("%w: opening %q: %v", domain.ErrInvalidInput, header.Filename, err))
				return
			}
			content, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				writeError(w, fmt.Errorf("%w: reading %q: %v", domain.ErrInvalidInput, header.Filename, err))
				return
			}
			raws = append(raws, &domain.RawUpload{
				Filename: header.Filename,
				MIMEType: header.Header.Get("Content-Type"),
				Content:  content,
			})
		}
	}

	if len(raws) == 0 {
		writeError(w, fmt.Errorf("%w: no files in upload", domain.ErrInvalidInput))
		return
	}

	summaries, errs := s.ingest.IngestAll(r.Context(), raws)

	if len(summaries) == 0 && len(errs) > 0 {
		writeError(w, errs[0])
		return
	}

	docs := make([]documentJSON, len(summaries))
	for i, summary := range summaries {
		docs[i] = toDocumentJSON(summary)
	}

	errMessages := make([]string, len(errs))
	for i, err := range errs {
		errMessages[i] = err.Error()
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"documents": docs,
		"errors":    errMessages,
	})
}

// handleDelete removes one document.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.ingest.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// queryRequest is the body of POST /query.
type queryRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"topK,omitempty"`
}

// handleQuery answers a retrieval query.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: decoding body: %v", domain.ErrInvalidInput, err))
		return
	}

	result, err := s.query.Answer(r.Context(), req.Query, req.TopK)
	if err != nil {
		writeError(w, err)
		return
	}

	hits := result.Hits()
	results := make([]resultJSON, len(hits))
	for i, hit := range hits {
		results[i] = resultJSON{
			DocumentID: hit.Document.ID,
			Title:      hit.Document.Title,
			Source:     hit.Document.Source,
			Text:       hit.Chunk.Content,
			Score:      hit.Score,
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":     result.Query,
		"results":   results,
		"synthesis": result.Synthesis,
	})
}

// handleListDocuments lists stored document summaries.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.documents.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	docs := make([]documentJSON, len(summaries))
	for i, summary := range summaries {
		docs[i] = toDocumentJSON(summary)
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

// handleGetDocument returns one document with its content.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.documents.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":         doc.ID,
		"title":      doc.Title,
		"source":     doc.Source,
		"content":    doc.Content,
		"wordCount":  doc.WordCount,
		"uploadedAt": doc.UploadedAt,
	})
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("Encoding response failed: %v", err)
	}
}

// writeError maps a domain error to an HTTP status and JSON body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	retryable := false

	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedType):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrEmbeddingProvider), errors.Is(err, domain.ErrEmbeddingUnavailable):
		status = http.StatusBadGateway
		retryable = true
	}

	writeJSON(w, status, errorJSON{Error: err.Error(), Retryable: retryable})
}
