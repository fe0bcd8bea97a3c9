// Package rerank reorders aggregated entities and their menu items by
// preference-profile boosts. Re-ranking is membership-preserving: it
// never adds or removes an entity or item, only moves them.
package rerank

import (
	"sort"

	"github.com/kailas-cloud/dinewise/internal/domain/aggregate"
	"github.com/kailas-cloud/dinewise/internal/domain/hit"
	"github.com/kailas-cloud/dinewise/internal/domain/profile"
)

// Rerank applies preference boosts to every entity. Each menu item's
// final score is min(1.0, similarity + boost), written back as distance
// 1 - finalScore so downstream consumers read one consistent scale.
// Entities are re-sorted by boosted score with id as tiebreaker.
func Rerank(entities []*aggregate.Entity, p profile.Profile) []*aggregate.Entity {
	for _, e := range entities {
		bestItemBoost := 0.0

		items := e.Items(hit.Submenu)
		for i := range items {
			boost := itemBoost(items[i], p)
			if boost > bestItemBoost {
				bestItemBoost = boost
			}

			final := items[i].Similarity() + boost
			if final > 1.0 {
				final = 1.0
			}
			items[i].Distance = 1.0 - final
		}

		// Items re-sort by boosted score; name breaks ties so the order
		// is stable across runs.
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Distance != items[j].Distance {
				return items[i].Distance < items[j].Distance
			}
			return items[i].Name() < items[j].Name()
		})

		e.Score += bestItemBoost + venueBoost(e.PrimaryAttributes, p)
	}

	sort.SliceStable(entities, func(i, j int) bool {
		if entities[i].Score != entities[j].Score {
			return entities[i].Score > entities[j].Score
		}
		return entities[i].EntityID < entities[j].EntityID
	})

	return entities
}
