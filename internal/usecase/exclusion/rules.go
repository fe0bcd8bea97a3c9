// Package exclusion derives hard dietary exclusions from a preference
// profile and prunes matching menu items before aggregation. Exclusions
// are condition-scoped: a fresh incision excludes beef and seafood only,
// not all meat.
package exclusion

import (
	"strings"

	"github.com/kailas-cloud/dinewise/internal/domain/profile"
)

// Tag bundles, bilingual: index documents may carry either language.
var (
	beefTags = []string{"beef", "thịt bò", "bò"}
	seafoodTags = []string{
		"seafood", "hải sản",
		"shrimp", "tôm",
		"crab", "cua",
		"squid", "mực",
		"clam", "nghêu",
		"scallop", "sò", "sò điệp",
		"snail", "ốc",
		"oyster", "hàu",
	}
	allMeatTags = []string{"beef", "pork", "chicken", "meat", "thịt bò", "thịt heo", "thịt gà", "thịt"}
	redMeatTags = []string{"beef", "thịt bò", "pork", "thịt heo", "lamb", "thịt cừu"}
	spicyTags   = []string{"spicy", "cay", "ớt", "pepper", "chili"}
	friedTags   = []string{"fried", "deep_fried", "chiên", "xào", "pan_fried"}
	sugarTags   = []string{"sweet", "dessert", "sugar", "đường", "ngọt", "caramel"}
	saltTags    = []string{"mặn", "muối", "salty"}
	alcoholTags = []string{"alcohol", "rượu", "beer", "bia", "wine"}
)

// phraseRule maps constraint phrases to the tags they forbid.
type phraseRule struct {
	phrases []string
	tags    []string
}

var phraseRules = []phraseRule{
	{[]string{"tránh thịt bò", "kiêng bò", "không bò", "tránh bò"}, beefTags},
	{[]string{"tránh hải sản", "kiêng hải sản", "không hải sản"}, seafoodTags},
	{[]string{"tránh tôm", "kiêng tôm"}, []string{"shrimp", "tôm"}},
	{[]string{"tránh cua", "kiêng cua"}, []string{"crab", "cua"}},
	{[]string{"tránh mực", "kiêng mực"}, []string{"squid", "mực"}},
	{[]string{"không cay", "tránh cay", "kiêng cay", "không quá cay", "ít cay", "hạn chế cay", "không ớt"}, spicyTags},
	{[]string{"tránh đồ chiên", "tránh đồ xào", "kiêng chiên xào", "hạn chế đồ chiên xào", "không chiên", "không xào"}, friedTags},
	{[]string{"ít đường", "không đường", "tránh đường", "kiêng đường", "tránh đồ ngọt", "ít ngọt", "không ngọt", "tiểu đường"}, sugarTags},
	{[]string{"ít muối", "không muối", "tránh muối", "huyết áp cao", "tăng huyết áp", "ít mặn", "không mặn"}, saltTags},
	{[]string{"tránh rượu", "kiêng rượu", "không rượu", "gan yếu", "viêm gan"}, alcoholTags},
}

var (
	incisionCues   = []string{"sẹo", "vết mổ", "mới phẫu thuật", "phẫu thuật", "vết thương"}
	vegetarianCues = []string{"ăn chay", "đồ chay", "vegetarian", "vegan", "không ăn thịt"}
	goutCues       = []string{"gout", "đau khớp", "thịt đỏ"}
	genericMeatCue = []string{"không thịt", "tránh thịt", "kiêng thịt", "không có thịt"}
)

// ForbiddenTags derives the forbidden tag set from a validated profile.
// Phrase rules fire on individual constraint lines; condition bundles fire
// on the summary and constraints as a whole. The result is deduplicated
// and order-stable, and empty when nothing is excluded.
func ForbiddenTags(p profile.Profile) []string {
	var tags []string

	for _, constraint := range p.ConstraintsText {
		lower := strings.ToLower(constraint)
		for _, rule := range phraseRules {
			if containsAny(lower, rule.phrases) {
				tags = append(tags, rule.tags...)
			}
		}
	}

	summary := strings.ToLower(p.Summary)
	joined := summary + " " + strings.ToLower(strings.Join(p.ConstraintsText, " "))

	isIncision := containsAny(joined, incisionCues)
	isVegetarian := containsAny(joined, vegetarianCues)
	isGout := containsAny(joined, goutCues)

	// Incision excludes beef and seafood only. Never all meat.
	if isIncision {
		tags = append(tags, beefTags...)
		tags = append(tags, seafoodTags...)
	}
	if isVegetarian {
		tags = append(tags, allMeatTags...)
	}
	if isGout {
		tags = append(tags, redMeatTags...)
	}

	// Generic "no meat" only applies outside the narrower conditions,
	// so an incision constraint does not balloon into full vegetarian.
	if !isIncision && !isGout && containsAny(joined, genericMeatCue) {
		tags = append(tags, allMeatTags...)
	}

	return dedupe(tags)
}

func containsAny(s string, cues []string) bool {
	for _, c := range cues {
		if strings.Contains(s, c) {
			return true
		}
	}
	return false
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
