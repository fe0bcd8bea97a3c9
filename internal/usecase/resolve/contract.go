package resolve

import (
	"context"

	"github.com/kailas-cloud/dinewise/internal/domain"
	"github.com/kailas-cloud/dinewise/internal/domain/aggregate"
	"github.com/kailas-cloud/dinewise/internal/domain/collection"
	"github.com/kailas-cloud/dinewise/internal/domain/hit"
	"github.com/kailas-cloud/dinewise/internal/domain/intent"
	"github.com/kailas-cloud/dinewise/internal/domain/profile"
	"github.com/kailas-cloud/dinewise/internal/turnstate"
)

// Classifier resolves query intent and returns the query vector for reuse.
type Classifier interface {
	Classify(ctx context.Context, query string) (intent.Result, []float32)
}

// Profiler extracts the preference profile for a query.
type Profiler interface {
	ExtractProfile(ctx context.Context, query string) (profile.Profile, error)
}

// Embedder vectorizes the enriched search phrase.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Searcher fans the query out across the routed collections.
type Searcher interface {
	Search(ctx context.Context, i intent.Intent, vector []float32, ownerID string) map[collection.Collection][]hit.SourceHit
}

// Aggregator joins per-collection hits into ranked entities.
type Aggregator interface {
	Aggregate(ctx context.Context, byCollection map[collection.Collection][]hit.SourceHit) []*aggregate.Entity
}

// TurnStates reads and writes per-user conversational context.
type TurnStates interface {
	Get(userID string) (turnstate.TurnState, bool)
	Put(state turnstate.TurnState)
}
