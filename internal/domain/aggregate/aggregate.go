// Package aggregate defines the per-entity view built by joining hits from
// multiple collections.
package aggregate

import (
	"github.com/kailas-cloud/dinewise/internal/domain/collection"
	"github.com/kailas-cloud/dinewise/internal/domain/hit"
)

// Entity is one venue plus every sub-item that matched the query, across all
// contributing collections. EntityID is never empty: hits without a resolvable
// owner are discarded before an Entity is built.
type Entity struct {
	EntityID          string
	PrimaryAttributes map[string]string
	MatchedItems      map[hit.ItemType][]hit.SourceHit
	Score             float64
	Contributing      map[collection.Collection]struct{}
}

// New creates an empty aggregate for an entity id.
func New(id string) *Entity {
	return &Entity{
		EntityID:     id,
		MatchedItems: make(map[hit.ItemType][]hit.SourceHit),
		Contributing: make(map[collection.Collection]struct{}),
	}
}

// Add folds one hit into the aggregate: accumulates the similarity score,
// records the contributing collection, and files non-primary hits under their
// item type.
func (e *Entity) Add(h hit.SourceHit) {
	e.Score += h.Similarity()
	e.Contributing[h.Collection] = struct{}{}
	if h.ItemType == hit.Primary {
		if e.PrimaryAttributes == nil {
			e.PrimaryAttributes = h.Attributes
		}
		return
	}
	e.MatchedItems[h.ItemType] = append(e.MatchedItems[h.ItemType], h)
}

// Items returns the sub-items of one type.
func (e *Entity) Items(t hit.ItemType) []hit.SourceHit {
	return e.MatchedItems[t]
}

// Name returns the display name from the primary attributes, if known.
func (e *Entity) Name() string {
	for _, k := range []string{"name", "venue_name", "venueName", "restaurantName", "title"} {
		if v, ok := e.PrimaryAttributes[k]; ok && v != "" {
			return v
		}
	}
	return ""
}
