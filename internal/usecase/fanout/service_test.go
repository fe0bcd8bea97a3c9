package fanout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kailas-cloud/dinewise/internal/domain"
	"github.com/kailas-cloud/dinewise/internal/domain/collection"
	"github.com/kailas-cloud/dinewise/internal/domain/hit"
	"github.com/kailas-cloud/dinewise/internal/domain/intent"
)

type mockSearcher struct {
	mu      sync.Mutex
	queries []*domain.KNNQuery
	fn      func(q *domain.KNNQuery) ([]hit.SourceHit, error)
}

func (m *mockSearcher) SearchKNN(_ context.Context, q *domain.KNNQuery) ([]hit.SourceHit, error) {
	m.mu.Lock()
	m.queries = append(m.queries, q)
	m.mu.Unlock()
	return m.fn(q)
}

func oneHit(col collection.Collection) []hit.SourceHit {
	return []hit.SourceHit{{
		Collection: col,
		OwnerID:    "venue-1",
		Distance:   0.2,
		Attributes: map[string]string{"name": "x"},
	}}
}

func TestSearch_QueriesEveryRoutedCollection(t *testing.T) {
	idx := &mockSearcher{fn: func(q *domain.KNNQuery) ([]hit.SourceHit, error) {
		return oneHit(q.Collection), nil
	}}
	svc := New(idx, 5, 0.6, time.Second)

	got := svc.Search(context.Background(), intent.VenueSearch, []float32{0.1}, "")

	want := collection.Route(intent.VenueSearch)
	if len(got) != len(want) {
		t.Fatalf("got %d collections, want %d", len(got), len(want))
	}
	for _, col := range want {
		hits, ok := got[col]
		if !ok {
			t.Errorf("missing collection %s in result", col)
			continue
		}
		if len(hits) != 1 {
			t.Errorf("collection %s: got %d hits, want 1", col, len(hits))
		}
	}
	if len(idx.queries) != len(want) {
		t.Errorf("issued %d queries, want %d", len(idx.queries), len(want))
	}
}

func TestSearch_FailingCollectionYieldsEmpty(t *testing.T) {
	idx := &mockSearcher{fn: func(q *domain.KNNQuery) ([]hit.SourceHit, error) {
		if q.Collection == collection.Dishes {
			return nil, errors.New("index down")
		}
		return oneHit(q.Collection), nil
	}}
	svc := New(idx, 5, 0.6, time.Second)

	got := svc.Search(context.Background(), intent.MenuInquiry, []float32{0.1}, "")

	if len(got[collection.Dishes]) != 0 {
		t.Errorf("failed collection should contribute no hits, got %d", len(got[collection.Dishes]))
	}
	if len(got[collection.Venues]) != 1 {
		t.Errorf("healthy collection lost its hits: got %d, want 1", len(got[collection.Venues]))
	}
}

func TestSearch_OwnerFilterSkipsPrimary(t *testing.T) {
	idx := &mockSearcher{fn: func(q *domain.KNNQuery) ([]hit.SourceHit, error) {
		return nil, nil
	}}
	svc := New(idx, 5, 0.6, time.Second)

	svc.Search(context.Background(), intent.MenuInquiry, []float32{0.1}, "venue-9")

	for _, q := range idx.queries {
		if q.Collection.Primary() && q.OwnerID != "" {
			t.Errorf("primary collection must not be owner-filtered, got %q", q.OwnerID)
		}
		if !q.Collection.Primary() && q.OwnerID != "venue-9" {
			t.Errorf("collection %s: owner = %q, want venue-9", q.Collection, q.OwnerID)
		}
	}
}

func TestSearch_EmptyVectorShortCircuits(t *testing.T) {
	idx := &mockSearcher{fn: func(q *domain.KNNQuery) ([]hit.SourceHit, error) {
		t.Error("index must not be queried without a vector")
		return nil, nil
	}}
	svc := New(idx, 5, 0.6, time.Second)

	got := svc.Search(context.Background(), intent.VenueSearch, nil, "")

	if len(got) != len(collection.Route(intent.VenueSearch)) {
		t.Errorf("expected empty buckets for every routed collection")
	}
	for col, hits := range got {
		if len(hits) != 0 {
			t.Errorf("collection %s: expected no hits", col)
		}
	}
}

func TestSearch_AppliesLimitsToQueries(t *testing.T) {
	idx := &mockSearcher{fn: func(q *domain.KNNQuery) ([]hit.SourceHit, error) {
		return nil, nil
	}}
	svc := New(idx, 7, 0.45, time.Second)

	svc.Search(context.Background(), intent.General, []float32{0.1}, "")

	for _, q := range idx.queries {
		if q.K != 7 {
			t.Errorf("K = %d, want 7", q.K)
		}
		if q.MaxDistance != 0.45 {
			t.Errorf("MaxDistance = %f, want 0.45", q.MaxDistance)
		}
	}
}
