// Package fanout runs the concurrent multi-collection similarity search:
// one KNN query per routed collection, joined before aggregation.
package fanout

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/dinewise/internal/domain"
	"github.com/kailas-cloud/dinewise/internal/domain/collection"
	"github.com/kailas-cloud/dinewise/internal/domain/hit"
	"github.com/kailas-cloud/dinewise/internal/domain/intent"
	"github.com/kailas-cloud/dinewise/internal/logger"
	"github.com/kailas-cloud/dinewise/internal/metrics"
)

// Service fans a query vector out across the collections routed for an
// intent and joins the per-collection results.
type Service struct {
	index Searcher

	limitPerCollection int
	distanceCutoff     float64
	timeout            time.Duration
}

// New creates a fan-out service.
func New(index Searcher, limitPerCollection int, distanceCutoff float64, timeout time.Duration) *Service {
	if limitPerCollection <= 0 {
		limitPerCollection = 5
	}
	if distanceCutoff <= 0 {
		distanceCutoff = 0.6
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Service{
		index:              index,
		limitPerCollection: limitPerCollection,
		distanceCutoff:     distanceCutoff,
		timeout:            timeout,
	}
}

// Search queries every collection routed for the intent concurrently.
// The whole fan-out shares one timeout budget. A failing collection
// contributes an empty slice and a warning, never an error: partial
// results beat no results. OwnerID, when set, restricts the
// non-primary collections to one venue's documents.
func (s *Service) Search(
	ctx context.Context, i intent.Intent, vector []float32, ownerID string,
) map[collection.Collection][]hit.SourceHit {
	log := logger.FromContext(ctx)

	cols := collection.Route(i)
	out := make(map[collection.Collection][]hit.SourceHit, len(cols))
	for _, col := range cols {
		out[col] = nil
	}

	if len(vector) == 0 {
		return out
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	results := make([][]hit.SourceHit, len(cols))

	g, gctx := errgroup.WithContext(ctx)
	for idx, col := range cols {
		idx, col := idx, col
		g.Go(func() error {
			q := &domain.KNNQuery{
				Collection:  col,
				Vector:      vector,
				K:           s.limitPerCollection,
				MaxDistance: s.distanceCutoff,
			}
			if !col.Primary() {
				q.OwnerID = ownerID
			}

			hits, err := s.index.SearchKNN(gctx, q)
			if err != nil {
				metrics.CollectionSearchFailuresTotal.WithLabelValues(string(col)).Inc()
				log.Warn("Collection search failed",
					zap.String("collection", string(col)),
					zap.Error(err),
				)
				return nil
			}
			results[idx] = hits
			return nil
		})
	}

	// errgroup workers never return errors; Wait is the join barrier.
	_ = g.Wait()

	for idx, col := range cols {
		out[col] = results[idx]
	}
	return out
}
