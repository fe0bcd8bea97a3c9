package rerank

import (
	"strings"

	"github.com/kailas-cloud/dinewise/internal/domain/hit"
	"github.com/kailas-cloud/dinewise/internal/domain/profile"
)

// hotFoodCues mark dishes served hot, matched against category, name and
// description when the profile asks for hot food.
var hotFoodCues = []string{
	"cháo", "soup", "canh", "lẩu", "phở", "bún", "miến", "nước dùng", "hot pot",
}

// itemBoost computes the preference boost for one menu item. Every
// matching dimension adds its increment; the caller caps the final score.
func itemBoost(h hit.SourceHit, p profile.Profile) float64 {
	tags := hit.Tags(h.Attributes, "tags")
	boost := 0.0

	if p.Diet.HighProtein && hit.HasTag(tags, "high_protein") {
		boost += 0.15
	}
	if p.Diet.LowCarb && hit.HasTag(tags, "low_carb") {
		boost += 0.12
	}
	if p.Diet.LowFat && hit.HasTag(tags, "low_fat") {
		boost += 0.12
	}
	if p.Diet.LightMeal && hit.HasTag(tags, "light_meal") {
		boost += 0.10
	}

	switch p.Occasion {
	case profile.OccasionGym:
		if hit.HasTag(tags, "high_protein") {
			boost += 0.10
		}
	case profile.OccasionSick:
		if hit.HasTag(tags, "good_when_sick") {
			boost += 0.15
		}
	case profile.OccasionComfort:
		if hit.HasTag(tags, "comfort_food") {
			boost += 0.10
		}
	case profile.OccasionCelebration:
		if hit.HasTag(tags, "celebration") {
			boost += 0.08
		}
	}

	if p.Temperature == profile.TemperatureHot && isHotFood(h.Attributes) {
		boost += 0.12
	}

	switch p.SpiceLevel {
	case profile.SpiceSpicy:
		if hit.HasTag(tags, "spicy") || h.Attributes["is_spicy"] == "true" {
			boost += 0.08
		}
	case profile.SpiceMild, profile.SpiceMedium:
		if hit.HasTag(tags, "non_spicy") || h.Attributes["is_non_spicy"] == "true" {
			boost += 0.06
		}
	}

	boost += constraintBoost(tags, h.Attributes, p.ConstraintsText)

	return boost
}

// constraintBoost rewards items satisfying explicit free-text
// constraints. These are positive signals; hard exclusions were already
// pruned by the exclusion filter.
func constraintBoost(tags []string, attrs map[string]string, constraints []string) float64 {
	boost := 0.0
	for _, c := range constraints {
		lower := strings.ToLower(c)
		if strings.Contains(lower, "chay") &&
			(hit.HasTag(tags, "vegetarian") || attrs["is_vegetarian"] == "true") {
			boost += 0.10
		}
		if (strings.Contains(lower, "ít dầu") || strings.Contains(lower, "ít béo")) &&
			hit.HasTag(tags, "low_fat") {
			boost += 0.08
		}
		if strings.Contains(lower, "không cay") &&
			(hit.HasTag(tags, "non_spicy") || attrs["is_non_spicy"] == "true") {
			boost += 0.08
		}
	}
	return boost
}

// venueBoost computes entity-level boosts from the venue's own
// attributes: cuisine match and local specialty.
func venueBoost(attrs map[string]string, p profile.Profile) float64 {
	if attrs == nil {
		return 0
	}
	boost := 0.0

	venueCuisine := strings.ToLower(attrs["cuisine"] + " " + attrs["cuisineType"] + " " + attrs["category"])
	for _, c := range p.Cuisine {
		if c != "" && strings.Contains(venueCuisine, strings.ToLower(c)) {
			boost += 0.08
			break
		}
	}

	if p.IsLocalSpecialty && attrs["is_local_specialty"] == "true" {
		boost += 0.10
	}
	return boost
}

func isHotFood(attrs map[string]string) bool {
	text := strings.ToLower(attrs["category"] + " " + attrs["name"] + " " + attrs["dish_name"] + " " + attrs["description"])
	for _, cue := range hotFoodCues {
		if strings.Contains(text, cue) {
			return true
		}
	}
	return false
}
