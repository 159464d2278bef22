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


// Package codechronicle answers natural-language questions about Canadian
// building codes: which edition applied in a jurisdiction on a date, and
// which sections of that edition match the question.
package codechronicle

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/codechronicle/ai"
	"github.com/poiesic/codechronicle/ai/openai"
	"github.com/poiesic/codechronicle/core"
	"github.com/poiesic/codechronicle/interpret"
	"github.com/poiesic/codechronicle/registry"
	"github.com/poiesic/codechronicle/search"
	"github.com/poiesic/codechronicle/storage"
	"github.com/poiesic/codechronicle/storage/badger"
)

// Service wires the interpreter, registry, and search layers over one
// storage backend. It is the single entry point consumed by outer layers.
type Service struct {
	backend      *badger.Backend
	sections     storage.SectionRepository
	cache        storage.QueryCacheRepository
	history      storage.HistoryRepository
	registry     *registry.MemoryRegistry
	interpreter  *interpret.Interpreter
	orchestrator *search.Orchestrator
	logger       *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig        *ai.Config
	parser          ai.QueryParser
	registry        *registry.MemoryRegistry
	regulationsPath string
	inMemory        bool
}

// WithAIConfig sets the query-parsing backend configuration.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = config
	}
}

// WithQueryParser injects a query parser directly, bypassing the AI config.
// Used by tests and embedders with their own backend.
func WithQueryParser(parser ai.QueryParser) ServiceOption {
	return func(o *serviceOptions) {
		o.parser = parser
	}
}

// WithRegistry substitutes the edition registry. The default is the built-in
// Canadian catalog.
func WithRegistry(reg *registry.MemoryRegistry) ServiceOption {
	return func(o *serviceOptions) {
		o.registry = reg
	}
}

// WithRegulations merges historical provincial editions from a
// regulations.json file at startup.
func WithRegulations(path string) ServiceOption {
	return func(o *serviceOptions) {
		o.regulationsPath = path
	}
}

// WithInMemory opens the storage backend in memory. Used by tests.
func WithInMemory() ServiceOption {
	return func(o *serviceOptions) {
		o.inMemory = true
	}
}

// NewService opens the storage backend at filePath and assembles the service.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	logger := slog.Default().With("component", "codechronicle")

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	sections, err := badger.NewSectionRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	cache, err := badger.NewQueryCacheRepository(backend)
	if err != nil {
		sections.Close()
		backend.Close()
		return nil, err
	}

	history, err := badger.NewHistoryRepository(backend)
	if err != nil {
		cache.Close()
		sections.Close()
		backend.Close()
		return nil, err
	}

	reg := options.registry
	if reg == nil {
		reg = registry.DefaultRegistry()
	}
	if options.regulationsPath != "" {
		if err := registry.LoadRegulations(reg, options.regulationsPath, logger); err != nil {
			history.Close()
			cache.Close()
			sections.Close()
			backend.Close()
			return nil, err
		}
	}

	parser := options.parser
	if parser == nil {
		parser, err = openai.NewQueryParser(options.aiConfig)
		if err != nil {
			history.Close()
			cache.Close()
			sections.Close()
			backend.Close()
			return nil, err
		}
	}

	orchestrator, err := search.NewOrchestrator(reg, sections, search.NewEngine(sections))
	if err != nil {
		history.Close()
		cache.Close()
		sections.Close()
		backend.Close()
		return nil, err
	}

	return &Service{
		backend:      backend,
		sections:     sections,
		cache:        cache,
		history:      history,
		registry:     reg,
		interpreter:  interpret.NewInterpreter(parser, cache),
		orchestrator: orchestrator,
		logger:       logger,
	}, nil
}

// Close releases the worker pool, repositories, and storage backend.
func (s *Service) Close() error {
	s.orchestrator.Release()

	if err := s.history.Close(); err != nil {
		s.logger.Error("error closing history repository", "err", err)
	}
	if err := s.cache.Close(); err != nil {
		s.logger.Error("error closing query cache", "err", err)
	}
	if err := s.sections.Close(); err != nil {
		s.logger.Error("error closing section repository", "err", err)
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// SectionRepository exposes the section store for data-loading tooling.
func (s *Service) SectionRepository() storage.SectionRepository {
	return s.sections
}

// HistoryRepository exposes the search-history sink.
func (s *Service) HistoryRepository() storage.HistoryRepository {
	return s.history
}

// Registry exposes the edition registry.
func (s *Service) Registry() registry.Registry {
	return s.registry
}

// SearchOptions are the per-request knobs of RunSearch.
type SearchOptions struct {
	// DateOverride replaces the interpreted date, as "YYYY-MM-DD".
	DateOverride string
	// ProvinceOverride replaces the interpreted province code.
	ProvinceOverride string
	// Limit caps per-document results; see search.DefaultLimit.
	Limit int
	// Actor identifies the requesting user for history logging.
	Actor string
	// IPAddress identifies anonymous requesters for history logging.
	IPAddress string
}

// SearchResponse is the outcome of RunSearch. Failures are reported in
// Error, never as a Go error: user-correctable problems carry their own
// message, backend problems a sanitized one.
type SearchResponse struct {
	Success         bool              `json:"success"`
	Results         []DisplayResult   `json:"results"`
	Error           string            `json:"error,omitempty"`
	Message         string            `json:"message,omitempty"`
	ApplicableCodes []string          `json:"applicable_codes,omitempty"`
	ParsedParams    *core.ParsedQuery `json:"parsed_params,omitempty"`
	TopResults      []core.TopResult  `json:"top_results_metadata,omitempty"`
}

// RunSearch answers a natural-language building-code question end to end:
// interpret, apply overrides, resolve and search the applicable editions,
// format for display, and record history. History failures never fail the
// search.
func (s *Service) RunSearch(ctx context.Context, query string, opts *SearchOptions) *SearchResponse {
	if opts == nil {
		opts = &SearchOptions{}
	}

	params, err := s.interpreter.Interpret(ctx, query)
	if err != nil {
		return s.failureResponse(err)
	}

	if opts.DateOverride != "" {
		if date, parseErr := time.Parse("2006-01-02", opts.DateOverride); parseErr == nil {
			params.Date = date.UTC()
		} else {
			s.logger.Warn("ignoring malformed date override", "date", opts.DateOverride)
		}
	}
	if opts.ProvinceOverride != "" {
		params.Province = strings.ToUpper(strings.TrimSpace(opts.ProvinceOverride))
	}

	outcome, err := s.orchestrator.Search(ctx, *params, opts.Limit)
	if err != nil {
		return s.failureResponse(err)
	}

	response := &SearchResponse{
		Success:         true,
		Results:         formatResults(s.registry, outcome.Results),
		Message:         outcome.Message,
		ApplicableCodes: outcome.ApplicableCodes,
		ParsedParams:    params,
		TopResults:      outcome.TopResults,
	}

	s.recordHistory(ctx, query, params, opts, response)
	return response
}

// recordHistory appends the search to the history sink. Failures are logged
// and swallowed.
func (s *Service) recordHistory(ctx context.Context, query string, params *core.ParsedQuery, opts *SearchOptions, response *SearchResponse) {
	actor := opts.Actor
	ip := ""
	if actor == "" {
		actor = "anonymous"
		ip = opts.IPAddress
	}

	entry := &core.HistoryEntry{
		ID:          uuid.NewString(),
		Actor:       actor,
		IPAddress:   ip,
		Query:       query,
		Params:      *params,
		ResultCount: len(response.Results),
		TopResults:  response.TopResults,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.history.Record(ctx, entry); err != nil {
		s.logger.Error("error recording search history", "err", err)
	}
}

// failureResponse maps the error taxonomy to displayable messages.
// User-correctable errors keep their own text; backend errors are logged in
// full and returned sanitized.
func (s *Service) failureResponse(err error) *SearchResponse {
	response := &SearchResponse{Results: []DisplayResult{}}

	switch {
	case errors.Is(err, interpret.ErrNoRecognizedTerms),
		errors.Is(err, interpret.ErrEmptyQuery),
		errors.Is(err, search.ErrNoApplicableCode):
		response.Error = upperFirst(userMessage(err))
	case errors.Is(err, ai.ErrAuthentication):
		s.logger.Error("search service error", "err", err)
		response.Error = "Search engine authentication failure. Please check the API token configuration."
	default:
		s.logger.Error("search service error", "err", err)
		response.Error = "Search engine unavailable. Please try again later."
	}
	return response
}

// userMessage strips the sentinel prefix from a wrapped user-facing error,
// leaving the formatted detail ("no building codes found for ON on ...").
func userMessage(err error) string {
	msg := err.Error()
	if _, detail, found := strings.Cut(msg, ": no "); found {
		return "no " + detail
	}
	return msg
}

// upperFirst capitalizes the first byte for display.
func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
