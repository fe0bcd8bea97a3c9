package aggregate

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/kailas-cloud/dinewise/internal/domain/collection"
	"github.com/kailas-cloud/dinewise/internal/domain/hit"
)

type mockDocs struct {
	docs map[string]map[string]string
	err  error
}

func (m *mockDocs) FetchDocs(_ context.Context, _ collection.Collection, ids []string) ([]map[string]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]map[string]string, len(ids))
	for i, id := range ids {
		out[i] = m.docs[id]
	}
	return out, nil
}

func venueHit(owner string, distance float64) hit.SourceHit {
	return hit.SourceHit{
		Collection: collection.Venues,
		OwnerID:    owner,
		ItemType:   hit.Primary,
		Distance:   distance,
		Attributes: map[string]string{"name": "Venue " + owner},
	}
}

func dishHit(owner string, distance float64, name string) hit.SourceHit {
	return hit.SourceHit{
		Collection: collection.Dishes,
		OwnerID:    owner,
		ItemType:   hit.Submenu,
		Distance:   distance,
		Attributes: map[string]string{"dish_name": name, "owner_id": owner},
	}
}

func TestAggregate_SumsScoresAcrossCollections(t *testing.T) {
	svc := New(&mockDocs{})

	// venue hit at 0.2 and dish hit at 0.5: score = 0.8 + 0.5 = 1.3
	got := svc.Aggregate(context.Background(), map[collection.Collection][]hit.SourceHit{
		collection.Venues: {venueHit("v1", 0.2)},
		collection.Dishes: {dishHit("v1", 0.5, "pho")},
	})

	if len(got) != 1 {
		t.Fatalf("got %d entities, want 1", len(got))
	}
	e := got[0]
	if math.Abs(e.Score-1.3) > 1e-9 {
		t.Errorf("score = %f, want 1.3", e.Score)
	}
	if len(e.Items(hit.Submenu)) != 1 {
		t.Errorf("submenu items = %d, want 1", len(e.Items(hit.Submenu)))
	}
	if e.Name() != "Venue v1" {
		t.Errorf("name = %q, want Venue v1", e.Name())
	}
	if _, ok := e.Contributing[collection.Dishes]; !ok {
		t.Error("dishes collection should be recorded as contributing")
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	svc := New(&mockDocs{})

	a := map[collection.Collection][]hit.SourceHit{
		collection.Venues: {venueHit("v1", 0.2), venueHit("v2", 0.1)},
		collection.Dishes: {dishHit("v1", 0.4, "pho"), dishHit("v2", 0.6, "bun")},
	}
	b := map[collection.Collection][]hit.SourceHit{
		collection.Dishes: {dishHit("v2", 0.6, "bun"), dishHit("v1", 0.4, "pho")},
		collection.Venues: {venueHit("v2", 0.1), venueHit("v1", 0.2)},
	}

	ra := svc.Aggregate(context.Background(), a)
	rb := svc.Aggregate(context.Background(), b)

	if len(ra) != len(rb) {
		t.Fatalf("result sizes differ: %d vs %d", len(ra), len(rb))
	}
	for i := range ra {
		if ra[i].EntityID != rb[i].EntityID {
			t.Errorf("position %d: %s vs %s", i, ra[i].EntityID, rb[i].EntityID)
		}
		if math.Abs(ra[i].Score-rb[i].Score) > 1e-9 {
			t.Errorf("entity %s: scores differ %f vs %f", ra[i].EntityID, ra[i].Score, rb[i].Score)
		}
	}
}

func TestAggregate_BackfillsMissingPrimaries(t *testing.T) {
	svc := New(&mockDocs{docs: map[string]map[string]string{
		"v1": {"name": "Backfilled Venue"},
	}})

	got := svc.Aggregate(context.Background(), map[collection.Collection][]hit.SourceHit{
		collection.Dishes: {dishHit("v1", 0.3, "pho")},
	})

	if len(got) != 1 {
		t.Fatalf("got %d entities, want 1", len(got))
	}
	if got[0].Name() != "Backfilled Venue" {
		t.Errorf("name = %q, want Backfilled Venue", got[0].Name())
	}
}

func TestAggregate_BackfillFailureKeepsEntity(t *testing.T) {
	svc := New(&mockDocs{err: errors.New("index down")})

	got := svc.Aggregate(context.Background(), map[collection.Collection][]hit.SourceHit{
		collection.Dishes: {dishHit("v1", 0.3, "pho")},
	})

	if len(got) != 1 {
		t.Fatalf("entity must survive a failed backfill, got %d", len(got))
	}
	if got[0].PrimaryAttributes != nil {
		t.Error("expected no primary attributes after failed backfill")
	}
}

func TestAggregate_DropsOwnerlessHits(t *testing.T) {
	svc := New(&mockDocs{})

	got := svc.Aggregate(context.Background(), map[collection.Collection][]hit.SourceHit{
		collection.Dishes: {{Collection: collection.Dishes, OwnerID: "", ItemType: hit.Submenu, Distance: 0.1}},
	})

	if len(got) != 0 {
		t.Errorf("ownerless hits must be discarded, got %d entities", len(got))
	}
}

func TestAggregate_NegativeSimilarityClamped(t *testing.T) {
	svc := New(&mockDocs{})

	// Distance beyond 1.0 contributes zero, not a negative score.
	got := svc.Aggregate(context.Background(), map[collection.Collection][]hit.SourceHit{
		collection.Venues: {venueHit("v1", 1.4)},
	})

	if len(got) != 1 {
		t.Fatalf("got %d entities, want 1", len(got))
	}
	if got[0].Score != 0 {
		t.Errorf("score = %f, want 0", got[0].Score)
	}
}

func TestAggregate_RankedByScoreThenID(t *testing.T) {
	svc := New(&mockDocs{})

	got := svc.Aggregate(context.Background(), map[collection.Collection][]hit.SourceHit{
		collection.Venues: {venueHit("v2", 0.5), venueHit("v1", 0.5), venueHit("v3", 0.1)},
	})

	wantOrder := []string{"v3", "v1", "v2"}
	for i, id := range wantOrder {
		if got[i].EntityID != id {
			t.Errorf("position %d: got %s, want %s", i, got[i].EntityID, id)
		}
	}
}
