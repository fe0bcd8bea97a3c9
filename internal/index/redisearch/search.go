package redisearch

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/dinewise/internal/domain"
	"github.com/kailas-cloud/dinewise/internal/domain/collection"
	"github.com/kailas-cloud/dinewise/internal/domain/hit"
)

// SearchKNN runs a KNN vector search against one collection's index and
// returns classified hits. Hits with no resolvable owner are kept for
// primary collections (the document id is the owner) and dropped otherwise.
func (s *Store) SearchKNN(ctx context.Context, q *domain.KNNQuery) ([]hit.SourceHit, error) {
	if len(q.Vector) == 0 {
		return nil, fmt.Errorf("vector is required")
	}
	if q.K <= 0 {
		return nil, fmt.Errorf("k must be positive")
	}

	knnPart := fmt.Sprintf("[KNN %d @vector $BLOB]", q.K)
	queryStr := "*=>" + knnPart
	if q.OwnerID != "" {
		queryStr = fmt.Sprintf("(@owner_id:{%s})=>%s", escapeTag(q.OwnerID), knnPart)
	}

	args := []string{indexName(q.Collection), queryStr,
		"PARAMS", "2", "BLOB", vectorToBytes(q.Vector),
		"DIALECT", "2",
	}

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, fmt.Errorf("search %s: %w: %w", q.Collection, domain.ErrIndexUnavailable, err)
	}

	return parseKNNResult(raw, q.Collection, q.MaxDistance)
}

// indexName maps a collection to its RediSearch index.
func indexName(col collection.Collection) string {
	return domain.KeyPrefix + "idx:" + string(col)
}

// DocKey is the hash key of one document in a collection.
func DocKey(col collection.Collection, id string) string {
	return domain.KeyPrefix + "doc:" + string(col) + ":" + id
}

func parseKNNResult(raw []rueidis.RedisMessage, col collection.Collection, maxDistance float64) ([]hit.SourceHit, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return nil, nil
	}

	hits := make([]hit.SourceHit, 0, total)
	// 2-stride: [total, key1, fields1, key2, fields2, ...]
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		fields, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}
		attrs := parseFieldPairs(fields)

		distance := math.MaxFloat64
		if scoreStr, ok := attrs["__vector_score"]; ok {
			if d, err := strconv.ParseFloat(scoreStr, 64); err == nil {
				distance = d
			}
			delete(attrs, "__vector_score")
		}
		if maxDistance > 0 && distance > maxDistance {
			continue
		}

		owner := hit.OwnerID(attrs)
		if owner == "" {
			if !col.Primary() {
				continue
			}
			owner = docID(key)
		}

		hits = append(hits, hit.SourceHit{
			Collection: col,
			OwnerID:    owner,
			ItemType:   hit.Classify(col, attrs),
			Distance:   distance,
			Attributes: attrs,
		})
	}

	return hits, nil
}

// docID strips the key prefix from a hash key, leaving the bare document id.
func docID(key string) string {
	if i := strings.LastIndexByte(key, ':'); i >= 0 {
		return key[i+1:]
	}
	return key
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	" ", "\\ ",
)

func escapeTag(s string) string {
	return tagEscaper.Replace(s)
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
