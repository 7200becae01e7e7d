package driving

import (
	"context"

	"github.com/custodia-labs/passage/internal/core/domain"
)

// QueryService runs the retrieval read path: embed the query, search the
// vector index, resolve hits against the document store and synthesise a
// summary.
type QueryService interface {
	// Answer retrieves the top-k most relevant chunks for the query and
	// a short extractive synthesis. A blank query is rejected with
	// domain.ErrInvalidInput. An empty corpus yields an empty result
	// set with a sentinel synthesis, not an error.
	Answer(ctx context.Context, query string, k int) (*domain.QueryResult, error)
}
