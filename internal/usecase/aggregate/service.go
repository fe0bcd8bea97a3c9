// Package aggregate joins per-collection hits into per-venue entities:
// grouping by owner, additive scoring, sub-item filing and primary
// attribute backfill.
package aggregate

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dinewise/internal/domain/aggregate"
	"github.com/kailas-cloud/dinewise/internal/domain/collection"
	"github.com/kailas-cloud/dinewise/internal/domain/hit"
	"github.com/kailas-cloud/dinewise/internal/logger"
)

// Service builds the cross-collection aggregation.
type Service struct {
	docs DocFetcher
}

// New creates an aggregation service.
func New(docs DocFetcher) *Service {
	return &Service{docs: docs}
}

// Aggregate groups every hit under its owning venue, sums similarity
// contributions into the entity score, and backfills primary attributes
// for venues that were reached only through sub-item collections. The
// result is ordered by score descending with entity id as the
// tiebreaker, so the outcome does not depend on which collection
// answered first.
func (s *Service) Aggregate(
	ctx context.Context, byCollection map[collection.Collection][]hit.SourceHit,
) []*aggregate.Entity {
	log := logger.FromContext(ctx)

	entities := make(map[string]*aggregate.Entity)

	// Deterministic fold order over an unordered map input: collections
	// in route-independent name order, hits in their per-collection order.
	cols := make([]collection.Collection, 0, len(byCollection))
	for col := range byCollection {
		cols = append(cols, col)
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i] < cols[j] })

	for _, col := range cols {
		for _, h := range byCollection[col] {
			if h.OwnerID == "" {
				continue
			}
			e, ok := entities[h.OwnerID]
			if !ok {
				e = aggregate.New(h.OwnerID)
				entities[h.OwnerID] = e
			}
			e.Add(h)
		}
	}

	s.backfillPrimaries(ctx, log, entities)

	out := make([]*aggregate.Entity, 0, len(entities))
	for _, e := range entities {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].EntityID < out[j].EntityID
	})
	return out
}

// backfillPrimaries loads venue documents for entities that have no
// primary attributes yet, in one batch lookup. A failed or empty lookup
// leaves the entity with sub-items only; it still ranks.
func (s *Service) backfillPrimaries(
	ctx context.Context, log *zap.Logger, entities map[string]*aggregate.Entity,
) {
	var missing []string
	for id, e := range entities {
		if e.PrimaryAttributes == nil {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return
	}
	sort.Strings(missing)

	docs, err := s.docs.FetchDocs(ctx, collection.Venues, missing)
	if err != nil {
		log.Warn("Primary backfill failed", zap.Int("missing", len(missing)), zap.Error(err))
		return
	}

	for i, attrs := range docs {
		if len(attrs) == 0 {
			continue
		}
		entities[missing[i]].PrimaryAttributes = attrs
	}
}
