package fanout

import (
	"context"

	"github.com/kailas-cloud/dinewise/internal/domain"
	"github.com/kailas-cloud/dinewise/internal/domain/hit"
)

// Searcher runs KNN queries against the similarity index.
type Searcher interface {
	SearchKNN(ctx context.Context, q *domain.KNNQuery) ([]hit.SourceHit, error)
}
