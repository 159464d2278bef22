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


package interpret

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/codechronicle/ai"
	"github.com/poiesic/codechronicle/core"
	"github.com/poiesic/codechronicle/storage"
	"github.com/poiesic/codechronicle/vocab"
)

// DefaultProvince is assumed when a query names no jurisdiction.
const DefaultProvince = "ON"

// Interpreter turns free-form questions into structured search parameters.
// Parsing results are cached by (normalized query, prompt revision) so a
// repeated question never pays for a second model call. Section references
// are extracted lexically, bypass the model entirely when they are all the
// query contains, and are never part of the cached value.
type Interpreter struct {
	parser ai.QueryParser
	cache  storage.QueryCacheRepository
	logger *slog.Logger
	now    func() time.Time
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		i.logger = logger
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(i *Interpreter) {
		i.now = now
	}
}

// NewInterpreter creates an Interpreter. The cache may be nil, in which case
// every non-reference query goes to the parser.
func NewInterpreter(parser ai.QueryParser, cache storage.QueryCacheRepository, opts ...Option) *Interpreter {
	interpreter := &Interpreter{
		parser: parser,
		cache:  cache,
		logger: slog.Default().With("component", "interpreter"),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(interpreter)
	}
	return interpreter
}

// Interpret resolves a raw question into search parameters.
//
// Returns ErrEmptyQuery for blank input and ErrNoRecognizedTerms when the
// question yields neither vocabulary keywords nor section references. Backend
// failures pass through wrapping ai.ErrUnavailable or ai.ErrMalformedResponse.
func (i *Interpreter) Interpret(ctx context.Context, rawQuery string) (*core.ParsedQuery, error) {
	rawQuery = strings.TrimSpace(rawQuery)
	if rawQuery == "" {
		return nil, ErrEmptyQuery
	}

	refs, remainder := ExtractRefs(rawQuery)

	// A bare reference lookup needs no model call: current date, home
	// jurisdiction, no keywords.
	if len(refs) > 0 && refsOnly(remainder) {
		i.logger.Debug("reference-only query", "refs", refs)
		return &core.ParsedQuery{
			Date:        i.today(),
			Province:    DefaultProvince,
			SectionRefs: refs,
		}, nil
	}

	// The backend sees the residual text with references removed; the cache
	// key stays the full normalized query.
	backendText := rawQuery
	if len(refs) > 0 {
		backendText = remainder
	}

	params, err := i.lookupOrParse(ctx, rawQuery, backendText, len(refs) > 0)
	if err != nil {
		return nil, err
	}

	if len(params.Keywords) == 0 && len(refs) == 0 {
		return nil, ErrNoRecognizedTerms
	}

	// Defaults and references are applied per request, never cached: a
	// dateless question asked tomorrow means tomorrow.
	result := *params
	result.SectionRefs = refs
	if result.Date.IsZero() {
		result.Date = i.today()
	}
	if result.Province == "" {
		result.Province = DefaultProvince
	}
	return &result, nil
}

// lookupOrParse returns the cached interpretation of the query, or parses
// backendText and caches the result. The returned params carry a zero date
// when the question had no temporal anchor and an empty province when none
// was named. Results that would fail term validation (no keywords, no
// references) are not persisted.
func (i *Interpreter) lookupOrParse(ctx context.Context, rawQuery, backendText string, haveRefs bool) (*core.ParsedQuery, error) {
	queryHash := core.IDFromContent(strings.ToLower(rawQuery))
	promptHash := core.IDFromContent(i.parser.PromptVersion())

	if i.cache != nil {
		cached, err := i.cache.Get(ctx, queryHash, promptHash)
		if err != nil {
			i.logger.Warn("cache lookup failed", "err", err)
		} else if cached != nil {
			if _, err := i.cache.IncrementHits(ctx, queryHash, promptHash); err != nil {
				i.logger.Warn("cache hit count update failed", "err", err)
			}
			i.logger.Debug("interpretation cache hit", "query", rawQuery)
			params := cached.Params
			return &params, nil
		}
	}

	fields, err := i.parser.ParseQuery(ctx, backendText)
	if err != nil {
		return nil, err
	}

	params := &core.ParsedQuery{
		Date:         parseDate(fields.Date, i.logger),
		Keywords:     vocab.Filter(fields.Keywords),
		BuildingType: fields.BuildingType,
		Province:     fields.Province,
	}

	if i.cache != nil && (len(params.Keywords) > 0 || haveRefs) {
		entry := &core.CachedQuery{
			RawQuery:  rawQuery,
			Params:    *params,
			Model:     i.parser.Model(),
			CreatedAt: i.now(),
		}
		if err := i.cache.Put(ctx, queryHash, promptHash, entry); err != nil {
			i.logger.Warn("cache write failed", "err", err)
		}
	}

	return params, nil
}

// today returns the current date truncated to midnight UTC.
func (i *Interpreter) today() time.Time {
	now := i.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// parseDate resolves the model's date string. A bare year means January 1 of
// that year; a malformed value is treated as no date.
func parseDate(value string, logger *slog.Logger) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse("2006", value); err == nil {
		return t.UTC()
	}
	logger.Warn("unparseable date from model", "date", value)
	return time.Time{}
}
