package exclusion

import (
	"strings"

	"github.com/kailas-cloud/dinewise/internal/domain/collection"
	"github.com/kailas-cloud/dinewise/internal/domain/hit"
)

// Filter removes menu-item hits carrying a forbidden tag. Only submenu
// hits are candidates: venues, tables, services and layouts pass through
// untouched, so an excluded dish never hides its venue. Filter is a pure
// function of its inputs and idempotent; the input map is not mutated.
func Filter(
	byCollection map[collection.Collection][]hit.SourceHit, forbidden []string,
) map[collection.Collection][]hit.SourceHit {
	if len(forbidden) == 0 {
		return byCollection
	}

	out := make(map[collection.Collection][]hit.SourceHit, len(byCollection))
	for col, hits := range byCollection {
		kept := make([]hit.SourceHit, 0, len(hits))
		for _, h := range hits {
			if h.ItemType == hit.Submenu && matchesForbidden(h, forbidden) {
				continue
			}
			kept = append(kept, h)
		}
		out[col] = kept
	}
	return out
}

// matchesForbidden checks one hit against the forbidden set in three
// tiers: exact ingredient tag, exact lifestyle tag, then substring over
// the free-text fields.
func matchesForbidden(h hit.SourceHit, forbidden []string) bool {
	ingredientTags := hit.Tags(h.Attributes, "ingredient_tags")
	lifestyleTags := hit.Tags(h.Attributes, "tags")

	freeText := strings.ToLower(
		h.Attributes["name"] + " " +
			h.Attributes["dish_name"] + " " +
			h.Attributes["description"] + " " +
			h.Attributes["ingredients"],
	)

	for _, f := range forbidden {
		fl := strings.ToLower(f)

		if tagMatch(ingredientTags, fl) {
			return true
		}
		if tagMatch(lifestyleTags, fl) {
			return true
		}
		if strings.Contains(freeText, fl) {
			return true
		}
	}
	return false
}

func tagMatch(tags []string, forbidden string) bool {
	for _, t := range tags {
		if strings.ToLower(t) == forbidden {
			return true
		}
	}
	return false
}
