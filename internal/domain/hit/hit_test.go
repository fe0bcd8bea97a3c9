package hit

import (
	"reflect"
	"testing"

	"github.com/kailas-cloud/dinewise/internal/domain/collection"
)

func TestOwnerID(t *testing.T) {
	tests := []struct {
		name  string
		attrs map[string]string
		want  string
	}{
		{"owner_id", map[string]string{"owner_id": "v1"}, "v1"},
		{"camel case", map[string]string{"venueId": "v2"}, "v2"},
		{"mixed casing fallback", map[string]string{"Restaurant_Id": "v3"}, "v3"},
		{"first candidate wins", map[string]string{"owner_id": "v1", "id": "other"}, "v1"},
		{"empty value skipped", map[string]string{"owner_id": "", "id": "v4"}, "v4"},
		{"nothing", map[string]string{"name": "x"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OwnerID(tt.attrs); got != tt.want {
				t.Errorf("OwnerID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		col   collection.Collection
		attrs map[string]string
		want  ItemType
	}{
		{"primary collection", collection.Venues, map[string]string{"capacity": "4"}, Primary},
		{"capacity means table", collection.Dishes, map[string]string{"capacity": "4"}, Subtable},
		{"duration means service", collection.Dishes, map[string]string{"duration": "60"}, Subservice},
		{"url means image", collection.Dishes, map[string]string{"url": "http://x"}, Subimage},
		{"layouts are images", collection.Layouts, map[string]string{"name": "floor 1"}, Subimage},
		{"tables collection", collection.Tables, map[string]string{"name": "t1"}, Subtable},
		{"default is menu", collection.Dishes, map[string]string{"name": "pho", "price": "50000"}, Submenu},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.col, tt.attrs); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	if got := (SourceHit{Distance: 0.3}).Similarity(); got != 0.7 {
		t.Errorf("Similarity = %f, want 0.7", got)
	}
	if got := (SourceHit{Distance: 1.4}).Similarity(); got != 0 {
		t.Errorf("Similarity = %f, want clamp at 0", got)
	}
}

func TestTags(t *testing.T) {
	attrs := map[string]string{
		"json": `["a","b"]`,
		"csv":  "a, b",
	}
	if got := Tags(attrs, "json"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("json tags = %v", got)
	}
	if got := Tags(attrs, "csv"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("csv tags = %v", got)
	}
	if got := Tags(attrs, "missing"); got != nil {
		t.Errorf("missing tags = %v", got)
	}
	if !HasTag([]string{"High_Protein"}, "high_protein") {
		t.Error("HasTag should match case-insensitively")
	}
}
