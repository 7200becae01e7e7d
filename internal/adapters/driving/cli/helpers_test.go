package cli

import (
	"context"
	"time"

	"github.com/custodia-labs/passage/internal/core/domain"
)

type stubIngestService struct {
	summaries []domain.DocumentSummary
	errs      []error
	deleteErr error
	deleted   []string
}

func (s *stubIngestService) Ingest(_ context.Context, raw *domain.RawUpload) (*domain.DocumentSummary, error) {
	if len(s.errs) > 0 {
		return nil, s.errs[0]
	}
	summary := domain.DocumentSummary{ID: "doc-1", Title: "Doc", Source: raw.Filename}
	return &summary, nil
}

func (s *stubIngestService) IngestAll(_ context.Context, _ []*domain.RawUpload) ([]domain.DocumentSummary, []error) {
	return s.summaries, s.errs
}

func (s *stubIngestService) Delete(_ context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

type stubQueryService struct {
	result *domain.QueryResult
	err    error
	lastK  int
}

func (s *stubQueryService) Answer(_ context.Context, query string, k int) (*domain.QueryResult, error) {
	s.lastK = k
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return &domain.QueryResult{Query: query, Synthesis: "no relevant content"}, nil
}

type stubDocumentService struct {
	summaries []domain.DocumentSummary
	doc       *domain.Document
	content   string
	storeOnly []string
	indexOnly []string
	err       error
}

func (s *stubDocumentService) List(_ context.Context) ([]domain.DocumentSummary, error) {
	return s.summaries, s.err
}

func (s *stubDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.doc, nil
}

func (s *stubDocumentService) GetContent(_ context.Context, _ string) (string, error) {
	return s.content, s.err
}

func (s *stubDocumentService) Verify(_ context.Context) ([]string, []string, error) {
	return s.storeOnly, s.indexOnly, s.err
}

func sampleSummary(id string) domain.DocumentSummary {
	return domain.DocumentSummary{
		ID:         id,
		Title:      "Doc " + id,
		Source:     id + ".txt",
		WordCount:  42,
		UploadedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

// setupTestServices injects stub services and returns a cleanup func
// that restores the previous ones.
func setupTestServices() func() {
	oldIngest := ingestService
	oldQuery := queryService
	oldDocuments := documentService

	ingestService = &stubIngestService{summaries: []domain.DocumentSummary{sampleSummary("a")}}
	queryService = &stubQueryService{}
	documentService = &stubDocumentService{summaries: []domain.DocumentSummary{sampleSummary("a")}}

	return func() {
		ingestService = oldIngest
		queryService = oldQuery
		documentService = oldDocuments
	}
}
