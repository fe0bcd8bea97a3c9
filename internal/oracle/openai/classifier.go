package openai

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dinewise/internal/domain"
	"github.com/kailas-cloud/dinewise/internal/domain/intent"
	"github.com/kailas-cloud/dinewise/internal/metrics"
)

const classifyPrompt = `You are an intent classifier for a restaurant discovery assistant.
Queries may be in Vietnamese or English.

Classify the user message into exactly one of these intents:
- venue_search: the user wants to find or be recommended a restaurant or venue
- menu_inquiry: the user asks about dishes, menus or food at a venue
- table_inquiry: the user asks about tables, seating or capacity
- voucher_inquiry: the user asks about vouchers, discounts or promotions
- availability_search: the user wants a venue that has free tables at a given time, combining venue criteria with availability
- general: anything else, or when the intent is unclear

Respond with JSON only:
{"intent": "<intent>", "confidence": <0.0-1.0>, "reasoning": "<short reason>"}

Confidence guidance: 0.9+ when certain, 0.7-0.8 when fairly sure, 0.5-0.6 when unsure.
When unsure, choose "general" with low confidence.`

// classifyResponse is the oracle's JSON reply shape.
type classifyResponse struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// Classify asks the oracle to label a query. Any failure, from transport
// to malformed JSON, degrades to the zero-confidence result with an error
// for the caller to log; the cascade treats that as an absent signal.
func (o *Oracle) Classify(ctx context.Context, query string) (intent.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0.1,
		MaxTokens:   200,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifyPrompt},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
	})
	if err != nil {
		metrics.OracleFailuresTotal.WithLabelValues("classify").Inc()
		return intent.Zero(), fmt.Errorf("oracle classify: %w: %w", domain.ErrOracleUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		metrics.OracleFailuresTotal.WithLabelValues("classify").Inc()
		return intent.Zero(), fmt.Errorf("oracle classify: empty response: %w", domain.ErrOracleUnavailable)
	}

	var parsed classifyResponse
	content := stripFences(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		metrics.OracleFailuresTotal.WithLabelValues("classify").Inc()
		o.logger.Warn("Oracle returned unparseable classification", zap.String("content", content), zap.Error(err))
		return intent.Zero(), fmt.Errorf("oracle classify: parse response: %w", err)
	}

	got := intent.Intent(parsed.Intent)
	if !intent.Valid(got) {
		o.logger.Warn("Oracle returned unknown intent", zap.String("intent", parsed.Intent))
		got = intent.General
	}

	conf := parsed.Confidence
	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}

	return intent.Result{
		Intent:     got,
		Confidence: conf,
		Source:     intent.SourceOracle,
		Rationale:  parsed.Reasoning,
	}, nil
}
