package redisearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/dinewise/internal/domain"
)

// GetBytes reads a binary value. Returns domain.ErrNotFound on a missing key.
func (s *Store) GetBytes(ctx context.Context, key string) ([]byte, error) {
	cmd := s.b().Get().Key(key).Build()
	b, err := s.do(ctx, cmd).AsBytes()
	if err != nil {
		if errors.Is(err, rueidis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return b, nil
}

// SetBytes writes a binary value with a TTL. A non-positive TTL stores
// the value without expiry.
func (s *Store) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var cmd rueidis.Completed
	if ttl > 0 {
		cmd = s.b().Set().Key(key).Value(rueidis.BinaryString(value)).Ex(ttl).Build()
	} else {
		cmd = s.b().Set().Key(key).Value(rueidis.BinaryString(value)).Build()
	}
	if err := s.do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
