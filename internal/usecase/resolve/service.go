// Package resolve orchestrates the full query pipeline: turn-state
// recall, intent classification, profile extraction, collection fan-out,
// exclusion filtering, aggregation and re-ranking.
package resolve

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dinewise/internal/domain"
	"github.com/kailas-cloud/dinewise/internal/domain/aggregate"
	"github.com/kailas-cloud/dinewise/internal/domain/intent"
	"github.com/kailas-cloud/dinewise/internal/domain/profile"
	"github.com/kailas-cloud/dinewise/internal/logger"
	"github.com/kailas-cloud/dinewise/internal/metrics"
	"github.com/kailas-cloud/dinewise/internal/turnstate"
	"github.com/kailas-cloud/dinewise/internal/usecase/classify"
	"github.com/kailas-cloud/dinewise/internal/usecase/exclusion"
	"github.com/kailas-cloud/dinewise/internal/usecase/rerank"
)

// Result is one resolved query: the classified intent, the extracted
// profile and the ranked entities. Empty marks the no-results outcome,
// which is a valid answer and never an error.
type Result struct {
	Query    string
	Intent   intent.Result
	Profile  profile.Profile
	Entities []*aggregate.Entity

	Empty bool
	// ReferenceUsed marks a follow-up query that was resolved against the
	// previous turn's entity.
	ReferenceUsed bool
	// BookingRedirect marks a query with explicit reservation phrasing,
	// so the caller can hand the user to the booking flow.
	BookingRedirect bool
}

// bookingCues are explicit reservation phrases, in Vietnamese and English.
var bookingCues = []string{
	"đặt bàn", "đặt chỗ", "giữ chỗ", "book a table", "reservation", "reserve",
}

func wantsBooking(query string, i intent.Intent) bool {
	if i != intent.AvailabilitySearch && i != intent.TableInquiry {
		return false
	}
	lower := strings.ToLower(query)
	for _, cue := range bookingCues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

// Service wires the pipeline stages together.
type Service struct {
	classifier Classifier
	profiler   Profiler
	embed      Embedder
	fanout     Searcher
	aggregator Aggregator
	turns      TurnStates
}

// New creates a resolve service.
func New(
	classifier Classifier,
	profiler Profiler,
	embed Embedder,
	fanout Searcher,
	aggregator Aggregator,
	turns TurnStates,
) *Service {
	return &Service{
		classifier: classifier,
		profiler:   profiler,
		embed:      embed,
		fanout:     fanout,
		aggregator: aggregator,
		turns:      turns,
	}
}

// Resolve runs a natural-language query through the pipeline and returns
// the ranked entities. Provider failures degrade the answer, they do not
// fail the request: only an unusable query yields an error. Turn state is
// written after the pipeline completes with at least one entity, so a
// failed or empty turn never clobbers usable context.
func (s *Service) Resolve(ctx context.Context, query, userID string) (*Result, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	query = strings.TrimSpace(query)
	if query == "" {
		metrics.ResolveDuration.WithLabelValues("", "invalid").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("empty query: %w", domain.ErrInvalidQuery)
	}

	var state turnstate.TurnState
	if userID != "" {
		state, _ = s.turns.Get(userID)
	}

	expanded, usedRef := classify.ExpandReferences(query, state.LastEntityName)
	if usedRef {
		log.Debug("Follow-up reference expanded",
			zap.String("entity_id", state.LastEntityID),
			zap.String("entity_name", state.LastEntityName),
		)
	}

	intentRes, vector := s.classifier.Classify(ctx, expanded)

	prof, err := s.profiler.ExtractProfile(ctx, expanded)
	if err != nil {
		log.Warn("Profile extraction degraded to defaults", zap.Error(err))
	}

	searchVec := s.searchVector(ctx, expanded, vector, prof)

	ownerID := s.scopeOwner(state, intentRes.Intent, usedRef)

	byCollection := s.fanout.Search(ctx, intentRes.Intent, searchVec, ownerID)
	byCollection = exclusion.Filter(byCollection, exclusion.ForbiddenTags(prof))

	entities := s.aggregator.Aggregate(ctx, byCollection)
	entities = rerank.Rerank(entities, prof)

	result := &Result{
		Query:           query,
		Intent:          intentRes,
		Profile:         prof,
		Entities:        entities,
		Empty:           len(entities) == 0,
		ReferenceUsed:   usedRef,
		BookingRedirect: wantsBooking(expanded, intentRes.Intent),
	}

	status := "ok"
	if result.Empty {
		status = "empty"
	} else if userID != "" {
		s.turns.Put(turnstate.TurnState{
			UserID:         userID,
			LastEntityID:   entities[0].EntityID,
			LastEntityName: entities[0].Name(),
			LastIntent:     intentRes.Intent,
		})
	}
	metrics.ResolveDuration.WithLabelValues(string(intentRes.Intent), status).Observe(time.Since(start).Seconds())

	log.Info("Query resolved",
		zap.String("intent", string(intentRes.Intent)),
		zap.Float64("confidence", intentRes.Confidence),
		zap.Int("entities", len(entities)),
		zap.Bool("empty", result.Empty),
	)
	return result, nil
}

// searchVector returns the vector to fan out with. When the oracle
// produced an enriched search phrase the phrase is embedded fresh;
// otherwise, or when the embedder is down, the classification vector is
// reused.
func (s *Service) searchVector(ctx context.Context, query string, classifyVec []float32, prof profile.Profile) []float32 {
	phrase := prof.SearchPhrase(query)
	if phrase == query {
		return classifyVec
	}
	emb, err := s.embed.Embed(ctx, phrase)
	if err != nil {
		logger.FromContext(ctx).Warn("Search phrase embedding failed, reusing query vector", zap.Error(err))
		return classifyVec
	}
	return emb.Embedding
}

// scopeOwner narrows the fan-out to the previous turn's entity for
// follow-up queries: either an explicit back-reference, or an inquiry
// intent that only makes sense about a specific venue.
func (s *Service) scopeOwner(state turnstate.TurnState, i intent.Intent, usedRef bool) string {
	if state.LastEntityID == "" {
		return ""
	}
	if usedRef {
		return state.LastEntityID
	}
	switch i {
	case intent.MenuInquiry, intent.TableInquiry, intent.VoucherInquiry:
		return state.LastEntityID
	}
	return ""
}
