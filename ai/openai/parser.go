// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/codechronicle/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// QueryParser implements ai.QueryParser using OpenAI-compatible chat APIs.
type QueryParser struct {
	client llms.Model
	model  string
	logger *slog.Logger
	now    func() time.Time
}

// newQueryParser is an internal constructor that returns the concrete type.
func newQueryParser(config *ai.Config) (*QueryParser, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &QueryParser{
		client: client,
		model:  config.Model,
		logger: slog.Default().With("component", "openai-parser"),
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// NewQueryParser creates a new query parser using the provided configuration.
//
// Returns ai.QueryParser interface to enforce abstraction.
func NewQueryParser(config *ai.Config) (ai.QueryParser, error) {
	return newQueryParser(config)
}

// PromptVersion returns the prompt/schema revision identifier.
func (p *QueryParser) PromptVersion() string {
	return promptVersion
}

// Model returns the underlying model identifier.
func (p *QueryParser) Model() string {
	return p.model
}

// ParseQuery extracts structured search parameters from a question using an LLM.
func (p *QueryParser) ParseQuery(ctx context.Context, text string) (*ai.ParsedFields, error) {
	systemPrompt := buildSystemPrompt(p.now())
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(strings.TrimSpace(text)),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result ai.ParsedFields
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := p.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			p.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, fmt.Errorf("%w: %w", classifyBackendError(err), err)
		}

		if len(response.Choices) < 1 {
			p.logger.Debug("no choices returned from model")
			return &ai.ParsedFields{}, nil
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			p.logger.Warn("error parsing model response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		p.logger.Error("failed to parse model response after retries", "err", lastErr)
		return nil, fmt.Errorf("%w: %w", ai.ErrMalformedResponse, lastErr)
	}

	sanitizeFields(&result)
	p.logger.Debug("parsed query",
		"keywords", len(result.Keywords),
		"date", result.Date,
		"province", result.Province)
	return &result, nil
}

// classifyBackendError translates a transport failure into the typed error
// taxonomy at the adapter boundary, so callers branch on error kind instead
// of matching message strings.
func classifyBackendError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "401") || strings.Contains(msg, "api key") || strings.Contains(msg, "unauthorized") {
		return ai.ErrAuthentication
	}
	return ai.ErrUnavailable
}

// sanitizeFields normalizes casing and drops values outside the allowed sets.
// Keyword vocabulary validation happens downstream.
func sanitizeFields(fields *ai.ParsedFields) {
	for i, kw := range fields.Keywords {
		fields.Keywords[i] = strings.ToLower(strings.TrimSpace(kw))
	}

	fields.Province = strings.ToUpper(strings.TrimSpace(fields.Province))
	if !slices.Contains(ai.Provinces, fields.Province) {
		fields.Province = ""
	}

	fields.BuildingType = strings.ToLower(strings.TrimSpace(fields.BuildingType))
	if !slices.Contains(ai.BuildingTypes, fields.BuildingType) {
		fields.BuildingType = ""
	}
}
