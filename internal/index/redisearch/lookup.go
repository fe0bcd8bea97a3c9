package redisearch

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/dinewise/internal/domain/collection"
)

// FetchDocs fetches the stored attributes of multiple documents from one
// collection in a single DoMulti round-trip. Missing documents come back
// as empty maps in the same order as ids.
func (s *Store) FetchDocs(ctx context.Context, col collection.Collection, ids []string) ([]map[string]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cmds := make([]rueidis.Completed, len(ids))
	for i, id := range ids {
		cmds[i] = s.b().Hgetall().Key(DocKey(col, id)).Build()
	}

	results := s.client.DoMulti(ctx, cmds...)
	out := make([]map[string]string, len(results))

	for i, res := range results {
		m, err := res.AsStrMap()
		if err != nil {
			return nil, fmt.Errorf("fetch %s doc %s: %w", col, ids[i], err)
		}
		out[i] = m
	}

	return out, nil
}
