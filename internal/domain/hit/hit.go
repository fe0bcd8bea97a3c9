// Package hit defines the transient per-collection search hit and its
// classification into sub-item types.
package hit

import (
	"strconv"
	"strings"

	"github.com/kailas-cloud/dinewise/internal/domain/collection"
)

// ItemType classifies what a hit represents within an aggregate entity.
type ItemType string

const (
	// Primary is a hit from the primary (venue) collection itself.
	Primary ItemType = "primary"
	// Submenu is a dish or menu item belonging to a venue.
	Submenu ItemType = "submenu"
	// Subservice is a bookable service belonging to a venue.
	Subservice ItemType = "subservice"
	// Subtable is a table or seating unit belonging to a venue.
	Subtable ItemType = "subtable"
	// Subimage is a layout or media document belonging to a venue.
	Subimage ItemType = "subimage"
)

// SourceHit is a single similarity hit from one collection. Hits live only for
// the duration of a request.
type SourceHit struct {
	Collection collection.Collection
	// OwnerID is the owning venue id. Empty means the owner could not be
	// resolved and the hit must be discarded before aggregation.
	OwnerID    string
	ItemType   ItemType
	Distance   float64
	Attributes map[string]string
}

// Similarity converts the hit distance to a score, clamped at zero.
func (h SourceHit) Similarity() float64 {
	if s := 1 - h.Distance; s > 0 {
		return s
	}
	return 0
}

// ownerKeys are the attribute names an owning venue id may hide behind,
// checked in order. The upstream sync jobs are not consistent about casing.
var ownerKeys = []string{"owner_id", "venue_id", "venueId", "restaurant_id", "restaurantId", "id"}

// OwnerID extracts the owning venue id from a hit's attributes.
// Returns "" when no candidate key holds a non-empty value.
func OwnerID(attrs map[string]string) string {
	for _, k := range ownerKeys {
		if v, ok := attrs[k]; ok && v != "" {
			return v
		}
	}
	lowered := make(map[string]string, len(attrs))
	for k, v := range attrs {
		lowered[strings.ToLower(k)] = v
	}
	for _, k := range ownerKeys {
		if v, ok := lowered[strings.ToLower(k)]; ok && v != "" {
			return v
		}
	}
	return ""
}

var (
	serviceIndicators = []string{"service_id", "serviceid", "service_name", "servicename", "service_category", "servicecategory", "duration"}
	tableIndicators   = []string{"table_id", "tableid", "table_name", "tablename", "capacity", "table_type", "tabletype"}
	imageIndicators   = []string{"url", "media_id", "mediaid", "layout_url"}
)

// Classify infers the sub-item type of a non-primary hit from the shape of its
// attributes: capacity-like fields mean a table, duration/service fields mean a
// service, media fields mean an image, and everything else is a menu item.
func Classify(c collection.Collection, attrs map[string]string) ItemType {
	if c.Primary() {
		return Primary
	}
	keys := make(map[string]struct{}, len(attrs))
	for k := range attrs {
		keys[strings.ToLower(k)] = struct{}{}
	}
	hasAny := func(indicators []string) bool {
		for _, in := range indicators {
			if _, ok := keys[in]; ok {
				return true
			}
		}
		return false
	}
	switch {
	case c == collection.Layouts || hasAny(imageIndicators):
		return Subimage
	case c == collection.Tables || hasAny(tableIndicators):
		return Subtable
	case hasAny(serviceIndicators):
		return Subservice
	default:
		return Submenu
	}
}

// Price returns a hit's price attribute if it parses, for presentation layers.
func (h SourceHit) Price() (float64, bool) {
	for _, k := range []string{"price", "cost", "amount"} {
		if v, ok := h.Attributes[k]; ok {
			if p, err := strconv.ParseFloat(v, 64); err == nil {
				return p, true
			}
		}
	}
	return 0, false
}

// Name returns the best display name for a hit.
func (h SourceHit) Name() string {
	for _, k := range []string{"name", "dish_name", "dishName", "service_name", "serviceName", "table_name", "tableName", "title"} {
		if v, ok := h.Attributes[k]; ok && v != "" {
			return v
		}
	}
	return ""
}
