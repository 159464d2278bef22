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


package search

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/codechronicle/core"
	"github.com/poiesic/codechronicle/registry"
	"github.com/poiesic/codechronicle/storage"
)

// TopResultCount caps the compact result summary kept for history logging.
const TopResultCount = 10

// Outcome is the merged result of a fan-out search.
type Outcome struct {
	// ApplicableCodes are the edition names searched, provincial first.
	ApplicableCodes []string
	// Results is the deduplicated, enriched result list.
	Results []core.SearchResult
	// Message carries a "did you mean" suggestion when Results is empty.
	Message string
	// TopResults is the compact summary for history logging.
	TopResults []core.TopResult
}

// Orchestrator fans a query out over every document of every applicable code
// edition. Documents are searched concurrently on a shared worker pool;
// results land in pre-indexed slots so the merge order - edition order, then
// document order - stays deterministic regardless of scheduling.
type Orchestrator struct {
	engine   *Engine
	registry registry.Registry
	resolver *registry.Resolver
	sections storage.SectionRepository
	pool     *ants.Pool
	logger   *slog.Logger
	now      func() time.Time
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithOrchestratorLogger sets the logger.
func WithOrchestratorLogger(logger *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithOrchestratorClock overrides the time source. Used by tests.
func WithOrchestratorClock(now func() time.Time) OrchestratorOption {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// NewOrchestrator creates an Orchestrator. The worker pool is sized to half
// the CPUs, minimum one. Call Release when done.
func NewOrchestrator(reg registry.Registry, sections storage.SectionRepository, engine *Engine, opts ...OrchestratorOption) (*Orchestrator, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	orchestrator := &Orchestrator{
		engine:   engine,
		registry: reg,
		resolver: registry.NewResolver(reg),
		sections: sections,
		pool:     pool,
		logger:   slog.Default().With("component", "search-orchestrator"),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(orchestrator)
	}
	return orchestrator, nil
}

// Release releases the worker pool. The orchestrator must not be used after.
func (o *Orchestrator) Release() {
	if o.pool != nil {
		o.pool.Release()
	}
}

type docTask struct {
	edition string
	mapCode string
}

// Search resolves the applicable editions for the parsed query and searches
// every one of their documents. "No results" is a valid outcome, not an
// error; the only error conditions are an uncovered jurisdiction/date
// (ErrNoApplicableCode) and an unusable section store.
func (o *Orchestrator) Search(ctx context.Context, params core.ParsedQuery, limit int) (*Outcome, error) {
	asOf := params.Date
	if asOf.IsZero() {
		now := o.now()
		asOf = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	sourceDate := asOf.Format("2006-01-02")

	codes := o.resolver.Resolve(params.Province, asOf)
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: no building codes found for %s on %s",
			ErrNoApplicableCode, params.Province, sourceDate)
	}

	var tasks []docTask
	for _, code := range codes {
		mapCodes := o.registry.MapCodes(code)
		if len(mapCodes) == 0 {
			o.logger.Warn("no documents configured for edition, skipping", "edition", code)
			continue
		}
		for _, mapCode := range mapCodes {
			tasks = append(tasks, docTask{edition: code, mapCode: mapCode})
		}
	}

	query := Query{
		Terms: params.Keywords,
		Refs:  params.SectionRefs,
		Limit: limit,
	}

	slots := make([]*Hits, len(tasks))
	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		run := func() {
			defer wg.Done()
			hits, err := o.searchDocument(ctx, task, query, sourceDate)
			if err != nil {
				o.logger.Error("document search failed",
					"edition", task.edition,
					"map_code", task.mapCode,
					"err", err)
				return
			}
			slots[i] = hits
		}
		if err := o.pool.Submit(run); err != nil {
			// Pool saturated or released; do the work on this goroutine.
			run()
		}
	}
	wg.Wait()

	outcome := &Outcome{ApplicableCodes: codes}
	seen := make(map[string]struct{})
	for _, hits := range slots {
		if hits == nil {
			continue
		}
		for _, result := range hits.Results {
			key := result.Edition + ":" + result.SectionID
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			outcome.Results = append(outcome.Results, result)
		}
	}

	if len(outcome.Results) == 0 {
		for _, hits := range slots {
			if hits != nil && hits.Suggestion != "" {
				outcome.Message = hits.Suggestion
				break
			}
		}
	}

	for _, result := range outcome.Results {
		if len(outcome.TopResults) == TopResultCount {
			break
		}
		outcome.TopResults = append(outcome.TopResults, core.TopResult{
			Code:      result.Edition,
			Year:      result.SourceDate[:4],
			SectionID: result.SectionID,
			Title:     result.Title,
		})
	}

	o.logger.Info("search complete",
		"editions", len(codes),
		"documents", len(tasks),
		"results", len(outcome.Results))
	return outcome, nil
}

// searchDocument runs the engine over one document, then tags and enriches
// the hits with content fetched in a single bulk read.
func (o *Orchestrator) searchDocument(ctx context.Context, task docTask, query Query, sourceDate string) (*Hits, error) {
	hits, err := o.engine.Search(ctx, task.mapCode, query)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(hits.Results))
	for i, result := range hits.Results {
		ids[i] = result.SectionID
	}

	var byID map[string]*core.Section
	if len(ids) > 0 {
		sections, err := o.sections.BulkFetch(ctx, task.mapCode, ids)
		if err != nil {
			return nil, err
		}
		byID = make(map[string]*core.Section, len(sections))
		for _, section := range sections {
			byID[section.ID] = section
		}
	}

	for i := range hits.Results {
		result := &hits.Results[i]
		result.Edition = task.edition
		result.MapCode = task.mapCode
		result.SourceDate = sourceDate
		if section, ok := byID[result.SectionID]; ok {
			result.HTML = section.HTML
			result.NotesHTML = section.NotesHTML
			result.BBox = section.BBox
		}
	}
	return hits, nil
}
