// Package profile defines the structured preference profile supplied by the
// oracle collaborator. Oracle output is untrusted input: every field is
// validated against a closed value set and defaulted when absent or invalid.
package profile

// Occasion values the re-ranker understands.
const (
	OccasionGym         = "gym"
	OccasionSick        = "sick"
	OccasionComfort     = "comfort"
	OccasionCelebration = "celebration"
	OccasionAny         = "any"
)

// Temperature values.
const (
	TemperatureHot  = "hot"
	TemperatureCold = "cold"
	TemperatureAny  = "any"
)

// Spice levels.
const (
	SpiceMild   = "mild"
	SpiceMedium = "medium"
	SpiceSpicy  = "spicy"
	SpiceAny    = "any"
)

// DietProfile flags the common dietary dimensions used for boosting.
type DietProfile struct {
	HighProtein bool `json:"high_protein"`
	LowCarb     bool `json:"low_carb"`
	LowFat      bool `json:"low_fat"`
	LightMeal   bool `json:"light_meal"`
}

// Profile is the hybrid preference descriptor: structured fields drive
// boost/filter decisions, free-text fields keep semantic search from ever
// missing a constraint the schema has no slot for.
type Profile struct {
	Diet             DietProfile `json:"diet_profile"`
	Occasion         string      `json:"occasion"`
	Temperature      string      `json:"temperature"`
	SpiceLevel       string      `json:"spice_level"`
	Cuisine          []string    `json:"cuisine"`
	IsLocalSpecialty bool        `json:"is_local_specialty"`

	Goals           []string `json:"goals"`
	ConstraintsText []string `json:"constraints_text"`
	SearchQuery     string   `json:"search_query"`
	Summary         string   `json:"summary"`
}

// Default returns the all-default profile for a raw query. Summary and
// SearchQuery carry the raw text so downstream semantic search still works
// when the oracle gave us nothing.
func Default(rawQuery string) Profile {
	return Profile{
		Occasion:        OccasionAny,
		Temperature:     TemperatureAny,
		SpiceLevel:      SpiceAny,
		Cuisine:         []string{},
		Goals:           []string{},
		ConstraintsText: []string{},
		SearchQuery:     rawQuery,
		Summary:         rawQuery,
	}
}

// Validate normalizes an oracle-supplied profile in place against the closed
// value sets, falling back to defaults field by field. rawQuery backfills
// SearchQuery and Summary when the oracle left them empty.
func Validate(p Profile, rawQuery string) Profile {
	out := p

	if !oneOf(out.Occasion, OccasionGym, OccasionSick, OccasionComfort, OccasionCelebration, OccasionAny) {
		out.Occasion = OccasionAny
	}
	if !oneOf(out.Temperature, TemperatureHot, TemperatureCold, TemperatureAny) {
		out.Temperature = TemperatureAny
	}
	if !oneOf(out.SpiceLevel, SpiceMild, SpiceMedium, SpiceSpicy, SpiceAny) {
		out.SpiceLevel = SpiceAny
	}
	out.Cuisine = compact(out.Cuisine)
	out.Goals = compact(out.Goals)
	out.ConstraintsText = compact(out.ConstraintsText)

	if out.SearchQuery == "" {
		if out.Summary != "" {
			out.SearchQuery = out.Summary
		} else {
			out.SearchQuery = rawQuery
		}
	}
	if out.Summary == "" {
		out.Summary = rawQuery
	}
	return out
}

// SearchPhrase is the text the fan-out should embed: the oracle's optimized
// search query plus its summary when the two differ.
func (p Profile) SearchPhrase(rawQuery string) string {
	q := p.SearchQuery
	if q == "" {
		q = rawQuery
	}
	if p.Summary != "" && p.Summary != q {
		return q + ". " + p.Summary
	}
	return q
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
