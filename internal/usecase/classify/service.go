// Package classify resolves a query's intent through a cascade of
// providers: curated label embeddings, the oracle, keyword heuristics and
// a similarity fallback, followed by a verification pass.
package classify

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dinewise/internal/domain"
	"github.com/kailas-cloud/dinewise/internal/domain/collection"
	"github.com/kailas-cloud/dinewise/internal/domain/intent"
	"github.com/kailas-cloud/dinewise/internal/logger"
	"github.com/kailas-cloud/dinewise/internal/metrics"
)

// Service runs the classification cascade.
type Service struct {
	embed  Embedder
	index  Searcher
	oracle Oracle

	// labelCutoff is the max cosine distance for a label match to count.
	labelCutoff float64
	// distanceCutoff bounds the verification probes and similarity fallback.
	distanceCutoff float64
}

// New creates a classification service.
func New(embed Embedder, index Searcher, oracle Oracle, labelCutoff, distanceCutoff float64) *Service {
	if labelCutoff <= 0 {
		labelCutoff = 0.4
	}
	if distanceCutoff <= 0 {
		distanceCutoff = 0.6
	}
	return &Service{
		embed:          embed,
		index:          index,
		oracle:         oracle,
		labelCutoff:    labelCutoff,
		distanceCutoff: distanceCutoff,
	}
}

// Classify resolves the intent of a query. The query should already have
// its back-references expanded. Classification never fails: when every
// provider is down the result degrades to general at heuristic
// confidence. The returned vector is the query embedding, reusable by the
// caller for retrieval; it is nil when the embedder was unavailable.
func (s *Service) Classify(ctx context.Context, query string) (intent.Result, []float32) {
	log := logger.FromContext(ctx)

	var vector []float32
	if emb, err := s.embed.Embed(ctx, query); err != nil {
		log.Warn("Embedding unavailable for classification", zap.Error(err))
	} else {
		vector = emb.Embedding
	}

	label := s.labelMatch(ctx, vector)
	if label.Confidence >= labelShortCircuit {
		final := s.verify(ctx, query, promoteComposite(query, label), vector)
		s.record(log, query, final)
		return final, vector
	}

	oracleRes, err := s.oracle.Classify(ctx, query)
	if err != nil {
		log.Warn("Oracle classification unavailable", zap.Error(err))
		oracleRes = intent.Zero()
	}

	heuristicRes := Heuristic(query)

	combined := combine(label, oracleRes, heuristicRes, func() intent.Result {
		return s.similarityFallback(ctx, vector)
	})
	combined = promoteComposite(query, combined)

	// A confident oracle verdict is final: the structural checks exist to
	// correct weaker signals, not to second-guess a provider that saw the
	// full query.
	if combined.Source == intent.SourceOracle && !combined.Adjusted && combined.Confidence >= 0.6 {
		s.record(log, query, combined)
		return combined, vector
	}

	final := s.verify(ctx, query, combined, vector)
	s.record(log, query, final)
	return final, vector
}

// labelMatch searches the curated label collection for the nearest
// example phrase. A close match converts distance to confidence, capped
// below certainty since labels are examples, not the query itself.
func (s *Service) labelMatch(ctx context.Context, vector []float32) intent.Result {
	if len(vector) == 0 {
		return intent.Zero()
	}

	hits, err := s.index.SearchKNN(ctx, &domain.KNNQuery{
		Collection: collection.IntentLabels,
		Vector:     vector,
		K:          1,
	})
	if err != nil || len(hits) == 0 {
		return intent.Zero()
	}

	top := hits[0]
	if top.Distance >= s.labelCutoff {
		return intent.Zero()
	}

	labeled := intent.Intent(top.Attributes["intent"])
	if !intent.Valid(labeled) {
		return intent.Zero()
	}

	conf := (1 - top.Distance) * 0.95
	if conf > 0.98 {
		conf = 0.98
	}

	return intent.Result{
		Intent:     labeled,
		Confidence: conf,
		Source:     intent.SourceEmbeddingLabel,
	}
}

// similarityFallback probes the primary collection: a query that lands
// near a venue document is most likely looking for a venue.
func (s *Service) similarityFallback(ctx context.Context, vector []float32) intent.Result {
	if len(vector) == 0 {
		return intent.Zero()
	}

	hits, err := s.index.SearchKNN(ctx, &domain.KNNQuery{
		Collection:  collection.Venues,
		Vector:      vector,
		K:           1,
		MaxDistance: s.distanceCutoff,
	})
	if err != nil || len(hits) == 0 {
		return intent.Zero()
	}

	conf := hits[0].Similarity()
	if conf > 0.65 {
		conf = 0.65
	}

	return intent.Result{
		Intent:     intent.VenueSearch,
		Confidence: conf,
		Source:     intent.SourceSimilarity,
	}
}

func (s *Service) record(log *zap.Logger, query string, r intent.Result) {
	metrics.ClassifierDecisionsTotal.WithLabelValues(string(r.Intent), string(r.Source)).Inc()
	log.Debug("Intent resolved",
		zap.String("query", query),
		zap.String("intent", string(r.Intent)),
		zap.Float64("confidence", r.Confidence),
		zap.String("source", string(r.Source)),
		zap.Bool("adjusted", r.Adjusted),
	)
}
