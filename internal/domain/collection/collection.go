// Package collection defines the similarity-searchable partitions and the
// static intent → collections routing table.
package collection

import "github.com/kailas-cloud/dinewise/internal/domain/intent"

// Collection is a closed enum of index partitions.
type Collection string

const (
	// Venues is the primary collection: one document per venue.
	Venues Collection = "venues"
	// Dishes holds menu items, services and tables, keyed to an owning venue.
	Dishes Collection = "dishes"
	// Tables holds table inventory documents, keyed to an owning venue.
	Tables Collection = "tables"
	// Layouts holds floor-plan and media documents, keyed to an owning venue.
	Layouts Collection = "layouts"
	// IntentLabels holds curated per-intent example embeddings for the
	// classifier cascade. Never routed for retrieval.
	IntentLabels Collection = "intent_labels"
)

// Primary reports whether c is the primary (venue) collection.
func (c Collection) Primary() bool { return c == Venues }

// routes maps each intent to the ordered set of collections to fan out to.
// The General entry doubles as the catch-all for unresolved intents.
var routes = map[intent.Intent][]Collection{
	intent.VenueSearch:        {Venues, Dishes, Layouts},
	intent.MenuInquiry:        {Dishes, Venues, Layouts},
	intent.TableInquiry:       {Tables, Venues, Layouts},
	intent.VoucherInquiry:     {Venues},
	intent.AvailabilitySearch: {Venues, Tables, Layouts},
	intent.General:            {Venues, Dishes, Layouts},
}

// Route returns the ordered, deduplicated collections to query for an intent.
// Unknown intents fall back to the catch-all route.
func Route(i intent.Intent) []Collection {
	r, ok := routes[i]
	if !ok {
		r = routes[intent.General]
	}
	out := make([]Collection, 0, len(r))
	seen := make(map[Collection]struct{}, len(r))
	for _, c := range r {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
