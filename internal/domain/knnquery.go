package domain

import "github.com/kailas-cloud/dinewise/internal/domain/collection"

// KNNQuery describes a single vector search against one collection.
type KNNQuery struct {
	Collection collection.Collection
	Vector     []float32
	K          int
	// OwnerID, when set, restricts hits to documents owned by one venue.
	OwnerID string
	// MaxDistance, when positive, drops hits beyond this cosine distance.
	MaxDistance float64
}
