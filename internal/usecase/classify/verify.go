package classify

import (
	"context"
	"strings"

	"github.com/kailas-cloud/dinewise/internal/domain"
	"github.com/kailas-cloud/dinewise/internal/domain/collection"
	"github.com/kailas-cloud/dinewise/internal/domain/intent"
)

var (
	menuCues         = []string{"menu", "thực đơn", "món", "có gì ăn"}
	venueCues        = []string{"nhà hàng", "restaurant", "quán", "chỗ ăn"}
	availabilityCues = []string{"có bàn", "bàn trống", "availability", "còn chỗ", "đặt được"}
	cuisineCues      = []string{"nhật", "japanese", "hàn", "korean", "ý", "italian", "việt", "vietnamese"}
	timeCues         = []string{"ngày mai", "hôm nay", "tối nay", "trưa nay", "chiều nay", "tonight", "tomorrow", "today"}
)

func containsAny(s string, cues []string) bool {
	for _, c := range cues {
		if strings.Contains(s, c) {
			return true
		}
	}
	return false
}

// isCompositeAvailability detects queries that combine venue criteria with
// a table availability ask, e.g. "tìm nhà hàng Hàn Quốc có bàn trống tối
// nay". Requires venue and availability cues plus a cuisine or time cue.
func isCompositeAvailability(lower string) bool {
	return containsAny(lower, venueCues) &&
		containsAny(lower, availabilityCues) &&
		(containsAny(lower, cuisineCues) || containsAny(lower, timeCues))
}

// promoteComposite rewrites venue-flavored intents to availability_search
// when the query combines venue criteria with an availability ask. It
// runs on every classification, even a locked oracle verdict, because
// the promotion strictly widens the retrieval.
func promoteComposite(query string, r intent.Result) intent.Result {
	lower := strings.ToLower(query)
	if r.Intent != intent.VenueSearch && r.Intent != intent.TableInquiry && r.Intent != intent.General {
		return r
	}
	if !isCompositeAvailability(lower) {
		return r
	}
	out := r
	out.Intent = intent.AvailabilitySearch
	if out.Confidence < 0.8 {
		out.Confidence = 0.8
	}
	out.Adjusted = true
	out.Rationale = "composite venue + availability query"
	return out
}

// verify cross-checks a combined classification against the query text
// and the actual index contents, adjusting the result when it cannot
// hold up. The structural cue checks catch provider mix-ups between
// venue and menu intents; a one-hit index probe downgrades intents the
// data cannot serve. Probe errors leave the result alone.
func (s *Service) verify(ctx context.Context, query string, r intent.Result, vector []float32) intent.Result {
	lower := strings.ToLower(query)

	switch r.Intent {
	case intent.VenueSearch:
		if containsAny(lower, menuCues) {
			return intent.Result{
				Intent: intent.MenuInquiry, Confidence: 0.8,
				Source: r.Source, Adjusted: true,
				Rationale: "menu cues in a venue-classified query",
			}
		}
		if s.probeEmpty(ctx, collection.Venues, vector) {
			return downgrade(r)
		}
	case intent.MenuInquiry:
		if containsAny(lower, venueCues) && !containsAny(lower, menuCues) {
			return intent.Result{
				Intent: intent.VenueSearch, Confidence: 0.7,
				Source: r.Source, Adjusted: true,
				Rationale: "venue cues without menu cues",
			}
		}
		if s.probeEmpty(ctx, collection.Dishes, vector) {
			return downgrade(r)
		}
	}

	return r
}

// probeEmpty reports whether a one-hit KNN probe finds nothing relevant
// in a collection. Probe failures count as non-empty so an index outage
// never rewrites the intent.
func (s *Service) probeEmpty(ctx context.Context, col collection.Collection, vector []float32) bool {
	if len(vector) == 0 {
		return false
	}
	hits, err := s.index.SearchKNN(ctx, &domain.KNNQuery{
		Collection:  col,
		Vector:      vector,
		K:           1,
		MaxDistance: s.distanceCutoff,
	})
	if err != nil {
		return false
	}
	return len(hits) == 0
}

// downgrade demotes an unverifiable intent to the general catch-all.
func downgrade(r intent.Result) intent.Result {
	return intent.Result{
		Intent:     intent.General,
		Confidence: 0.5,
		Source:     r.Source,
		Adjusted:   true,
		Rationale:  "no matching documents for classified intent",
	}
}
