package classify

import (
	"context"

	"github.com/kailas-cloud/dinewise/internal/domain"
	"github.com/kailas-cloud/dinewise/internal/domain/hit"
	"github.com/kailas-cloud/dinewise/internal/domain/intent"
)

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Searcher runs KNN queries against the similarity index. The classifier
// uses it for the label collection, the similarity fallback and the
// verification probes.
type Searcher interface {
	SearchKNN(ctx context.Context, q *domain.KNNQuery) ([]hit.SourceHit, error)
}

// Oracle is the LLM collaborator providing a second classification opinion.
type Oracle interface {
	Classify(ctx context.Context, query string) (intent.Result, error)
}
