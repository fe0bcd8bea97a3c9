package rerank

import (
	"math"
	"testing"

	"github.com/kailas-cloud/dinewise/internal/domain/aggregate"
	"github.com/kailas-cloud/dinewise/internal/domain/collection"
	"github.com/kailas-cloud/dinewise/internal/domain/hit"
	"github.com/kailas-cloud/dinewise/internal/domain/profile"
)

func menuItem(name string, distance float64, attrs map[string]string) hit.SourceHit {
	if attrs == nil {
		attrs = map[string]string{}
	}
	attrs["name"] = name
	return hit.SourceHit{
		Collection: collection.Dishes,
		OwnerID:    "v1",
		ItemType:   hit.Submenu,
		Distance:   distance,
		Attributes: attrs,
	}
}

func entityWith(id string, score float64, items ...hit.SourceHit) *aggregate.Entity {
	e := aggregate.New(id)
	e.Score = score
	for _, it := range items {
		e.MatchedItems[hit.Submenu] = append(e.MatchedItems[hit.Submenu], it)
	}
	return e
}

func TestItemBoost_DietAndOccasionStack(t *testing.T) {
	p := profile.Profile{
		Diet:     profile.DietProfile{HighProtein: true},
		Occasion: profile.OccasionGym,
	}
	h := menuItem("ga nuong", 0.3, map[string]string{"tags": `["high_protein"]`})

	got := itemBoost(h, p)

	// 0.15 diet + 0.10 gym occasion on the same tag
	if math.Abs(got-0.25) > 1e-9 {
		t.Errorf("boost = %f, want 0.25", got)
	}
}

func TestItemBoost_HotFoodCue(t *testing.T) {
	p := profile.Profile{Temperature: profile.TemperatureHot}
	h := menuItem("phở bò tái", 0.3, nil)

	if got := itemBoost(h, p); math.Abs(got-0.12) > 1e-9 {
		t.Errorf("boost = %f, want 0.12 for hot dish", got)
	}

	cold := menuItem("gỏi cuốn", 0.3, nil)
	if got := itemBoost(cold, p); got != 0 {
		t.Errorf("boost = %f, want 0 for non-hot dish", got)
	}
}

func TestRerank_CapsFinalScore(t *testing.T) {
	p := profile.Profile{
		Diet:     profile.DietProfile{HighProtein: true, LowCarb: true, LowFat: true},
		Occasion: profile.OccasionGym,
	}
	// similarity 0.9 + boosts 0.49 must cap at 1.0
	e := entityWith("v1", 0.9, menuItem("steak", 0.1, map[string]string{
		"tags": `["high_protein","low_carb","low_fat"]`,
	}))

	Rerank([]*aggregate.Entity{e}, p)

	item := e.Items(hit.Submenu)[0]
	if item.Distance != 0 {
		t.Errorf("distance = %f, want 0 (score capped at 1.0)", item.Distance)
	}
}

func TestRerank_MembershipPreserved(t *testing.T) {
	p := profile.Profile{Diet: profile.DietProfile{HighProtein: true}}
	entities := []*aggregate.Entity{
		entityWith("v1", 0.5, menuItem("a", 0.4, nil), menuItem("b", 0.2, nil)),
		entityWith("v2", 0.9),
	}

	got := Rerank(entities, p)

	if len(got) != 2 {
		t.Fatalf("entity count changed: %d", len(got))
	}
	ids := map[string]bool{}
	for _, e := range got {
		ids[e.EntityID] = true
	}
	if !ids["v1"] || !ids["v2"] {
		t.Error("entity membership changed")
	}
	if len(got[1].Items(hit.Submenu))+len(got[0].Items(hit.Submenu)) != 2 {
		t.Error("item membership changed")
	}
}

func TestRerank_BoostReordersEntities(t *testing.T) {
	p := profile.Profile{Diet: profile.DietProfile{HighProtein: true}}

	// v2 starts ahead on base score; v1's boosted dish overtakes it.
	v1 := entityWith("v1", 0.50, menuItem("steak", 0.3, map[string]string{"tags": `["high_protein"]`}))
	v2 := entityWith("v2", 0.60)

	got := Rerank([]*aggregate.Entity{v2, v1}, p)

	if got[0].EntityID != "v1" {
		t.Errorf("boosted entity should rank first, got %s", got[0].EntityID)
	}
}

func TestRerank_VenueCuisineBoost(t *testing.T) {
	p := profile.Profile{Cuisine: []string{"korean"}}
	v1 := entityWith("v1", 0.5)
	v1.PrimaryAttributes = map[string]string{"cuisineType": "Korean BBQ"}
	v2 := entityWith("v2", 0.55)
	v2.PrimaryAttributes = map[string]string{"cuisineType": "Italian"}

	got := Rerank([]*aggregate.Entity{v1, v2}, p)

	if got[0].EntityID != "v1" {
		t.Errorf("cuisine-matched venue should rank first, got %s", got[0].EntityID)
	}
	if math.Abs(got[0].Score-0.58) > 1e-9 {
		t.Errorf("score = %f, want 0.58", got[0].Score)
	}
}

func TestRerank_EmptyProfileIsStable(t *testing.T) {
	p := profile.Default("anything")
	entities := []*aggregate.Entity{
		entityWith("v2", 0.4),
		entityWith("v1", 0.8),
	}

	got := Rerank(entities, p)

	if got[0].EntityID != "v1" || got[1].EntityID != "v2" {
		t.Error("default profile must preserve score ordering")
	}
}
