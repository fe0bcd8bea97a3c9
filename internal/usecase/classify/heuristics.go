package classify

import (
	"strings"

	"github.com/kailas-cloud/dinewise/internal/domain/intent"
)

// heuristicCap scales every keyword rule down: substring matching is the
// weakest signal in the cascade and must never outrank a confident
// provider on its own.
const heuristicCap = 0.7

// keywordRule maps substrings to an intent. Rules are checked in order,
// so the more specific intents come before the catch-all venue phrases.
type keywordRule struct {
	intent   intent.Intent
	base     float64
	keywords []string
}

var keywordRules = []keywordRule{
	{
		intent: intent.VoucherInquiry,
		base:   0.9,
		keywords: []string{
			"voucher", "khuyến mãi", "giảm giá", "mã giảm", "ưu đãi", "promotion", "discount",
		},
	},
	{
		intent: intent.TableInquiry,
		base:   0.9,
		keywords: []string{
			"đặt bàn", "bàn trống", "còn bàn", "chỗ ngồi", "sức chứa", "table", "seat", "capacity",
		},
	},
	{
		intent: intent.MenuInquiry,
		base:   0.85,
		keywords: []string{
			"thực đơn", "menu", "món ăn", "có gì ăn", "món",
		},
	},
	{
		intent: intent.VenueSearch,
		base:   0.85,
		keywords: []string{
			"tìm nhà hàng", "nhà hàng", "restaurant", "địa điểm ăn", "chỗ ăn", "quán ăn", "muốn ăn", "đi ăn",
		},
	},
}

// greetingKeywords match small talk and meta questions that carry no
// retrieval intent at all.
var greetingKeywords = []string{
	"xin chào", "hello", "chào", "help", "giá cả", "pricing", "thông tin", "info",
}

// Heuristic classifies a query by keyword matching. It never errors and
// never returns a confidence above heuristicCap; an unmatched query comes
// back as general at 0.3.
func Heuristic(query string) intent.Result {
	lower := strings.ToLower(query)

	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return intent.Result{
					Intent:     rule.intent,
					Confidence: rule.base * heuristicCap,
					Source:     intent.SourceHeuristic,
					Rationale:  "keyword: " + kw,
				}
			}
		}
	}

	for _, kw := range greetingKeywords {
		if strings.Contains(lower, kw) {
			return intent.Result{
				Intent:     intent.General,
				Confidence: 0.6,
				Source:     intent.SourceHeuristic,
				Rationale:  "greeting: " + kw,
			}
		}
	}

	return intent.Result{
		Intent:     intent.General,
		Confidence: 0.3,
		Source:     intent.SourceHeuristic,
	}
}
