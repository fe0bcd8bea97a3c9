package openai

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dinewise/internal/domain/profile"
	"github.com/kailas-cloud/dinewise/internal/metrics"
)

const profilePrompt = `You analyze a diner's food request and return a HYBRID preference profile:
structured fields for the common dimensions, free-text fields for everything else.
Queries may be in Vietnamese or English; write summary in the query's language.

Return JSON only, with this exact shape:
{
  "diet_profile": {
    "high_protein": boolean,
    "low_carb": boolean,
    "low_fat": boolean,
    "light_meal": boolean
  },
  "occasion": "gym" | "sick" | "comfort" | "celebration" | "any",
  "temperature": "hot" | "cold" | "any",
  "spice_level": "mild" | "medium" | "spicy" | "any",
  "cuisine": [string],
  "is_local_specialty": boolean,
  "goals": [string],
  "constraints_text": [string],
  "search_query": string,
  "summary": string
}

Rules:
- Set a structured field only when the user clearly asks for it; otherwise use the default ("any" or false).
- Capture EVERYTHING the user wants in goals / constraints_text / search_query, including things the structured fields cannot express.
- search_query is a full, clear phrasing of the whole need, optimized for semantic search.
- Sickness or health complaints: occasion="sick", light_meal=true, temperature="hot" unless stated otherwise.
- Vietnamese food-culture rules: fresh surgical wounds or scars avoid beef and seafood; stomach problems avoid spicy, oily, sour food; cold or fever suggests hot, easy-to-digest dishes; gym training means high protein, low carb.
- Any health condition with no specific rule still gets the safe default: low_fat=true, light_meal=true, spice_level="mild", plain light food in constraints_text.`

// ExtractProfile asks the oracle for a preference profile. On any failure
// the all-default profile carrying the raw query is returned, so the
// pipeline always has something to search and rank with.
func (o *Oracle) ExtractProfile(ctx context.Context, query string) (profile.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0.1,
		MaxTokens:   600,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: profilePrompt},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
	})
	if err != nil {
		metrics.OracleFailuresTotal.WithLabelValues("profile").Inc()
		return profile.Default(query), fmt.Errorf("oracle profile: %w", err)
	}
	if len(resp.Choices) == 0 {
		metrics.OracleFailuresTotal.WithLabelValues("profile").Inc()
		return profile.Default(query), fmt.Errorf("oracle profile: empty response")
	}

	var parsed profile.Profile
	content := stripFences(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		metrics.OracleFailuresTotal.WithLabelValues("profile").Inc()
		o.logger.Warn("Oracle returned unparseable profile", zap.String("content", content), zap.Error(err))
		return profile.Default(query), fmt.Errorf("oracle profile: parse response: %w", err)
	}

	return profile.Validate(parsed, query), nil
}
