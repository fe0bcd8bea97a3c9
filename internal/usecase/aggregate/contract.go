package aggregate

import (
	"context"

	"github.com/kailas-cloud/dinewise/internal/domain/collection"
)

// DocFetcher batch-loads stored documents for primary backfill.
type DocFetcher interface {
	FetchDocs(ctx context.Context, col collection.Collection, ids []string) ([]map[string]string, error)
}
