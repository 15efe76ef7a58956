// file: internal/search/search.go
// version: 1.6.0
// guid: 3a8d5f1c-9e4b-4a2d-8c7f-5b3e9a1d6c82

// Package search implements the multi-strategy fuzzy matcher used to resolve
// product and category name queries against typos, abbreviations, and
// partial input. Six independent strategies generate candidates, a
// priority-aware merge deduplicates them, a second stage enforces that every
// word of a multi-word query is present, and a deterministic tie-break sort
// produces the final ranking.
package search

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/mfigueroa/stockroom/internal/database"
	"github.com/mfigueroa/stockroom/internal/models"
)

// Catalog is the tabular matching capability the engine runs against.
// Implemented by *database.SQLiteStore.
type Catalog interface {
	MatchCatalog(ctx context.Context, shopID string, kind models.ItemKind, spec database.MatchSpec) ([]models.ScoredItem, error)
	CountCatalog(ctx context.Context, shopID string, kind models.ItemKind) (int, error)
}

// Options tune a single search call.
type Options struct {
	// MaxResults caps the ranked output. Zero means the default cap.
	MaxResults int
	// Fuzzy enables the full six-strategy pipeline. When false (or the
	// query is below MinQueryLength), only exact/prefix/substring run.
	Fuzzy bool
	// MinQueryLength is the shortest query the fuzzy pipeline accepts.
	// Zero means the engine default.
	MinQueryLength int
	// LowLatency switches to the sequential priority-ordered variant with
	// early termination. Cheaper, but when a strategy's cap (rather than
	// relevance) excluded an entity, a lower-priority strategy that would
	// have surfaced it may never run. Recall can differ from the
	// concurrent path on datasets that overflow the caps.
	LowLatency bool

	// Optional post-merge restrictions (products only).
	CategoryID    *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

const (
	defaultMaxResults     = 50
	defaultMinQueryLength = 2
)

// Engine runs search calls against a Catalog. It holds no per-call state;
// every invocation is self-contained and safe for concurrent use.
type Engine struct {
	catalog Catalog
}

// NewEngine creates a search engine over the given catalog.
func NewEngine(catalog Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Search resolves query against the shop's catalog and returns ranked
// matches. An empty or whitespace-only query returns an empty result without
// touching the store. Any strategy failure aborts the whole call: partial
// strategy results would silently corrupt the priority ranking.
func (e *Engine) Search(ctx context.Context, shopID, query string, kind models.ItemKind, opts Options) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Result{}, nil
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	minLen := opts.MinQueryLength
	if minLen <= 0 {
		minLen = defaultMinQueryLength
	}

	active := strategies
	if !opts.Fuzzy || utf8.RuneCountInString(query) < minLen {
		active = strategies[:basicStrategyCount]
	}

	var merged map[string]Candidate
	var err error
	if opts.LowLatency {
		merged, err = e.runSequential(ctx, shopID, query, kind, active, maxResults)
	} else {
		merged, err = e.runConcurrent(ctx, shopID, query, kind, active)
	}
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(merged))
	for _, c := range merged {
		candidates = append(candidates, c)
	}

	candidates = applyPrecisionFilter(candidates, query)
	candidates = applyRestrictions(candidates, opts)

	return rankCandidates(candidates, maxResults), nil
}

// runConcurrent fans out all active strategies and waits for every one of
// them. Executor completion order does not matter: the merge compares
// candidates explicitly instead of relying on insertion sequence.
func (e *Engine) runConcurrent(ctx context.Context, shopID, query string, kind models.ItemKind, active []Strategy) (map[string]Candidate, error) {
	lists := make([][]Candidate, len(active))

	g, gctx := errgroup.WithContext(ctx)
	for i, st := range active {
		i, st := i, st
		g.Go(func() error {
			candidates, err := st.execute(gctx, e.catalog, shopID, kind, query)
			if err != nil {
				return err
			}
			lists[i] = candidates
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return mergeCandidates(lists), nil
}

// runSequential executes strategies from highest to lowest priority and
// stops once the merged set reaches want entities. Once a higher-priority
// match exists for an entity, lower-priority strategies cannot improve it,
// so for the entities it returns this produces the same ranking as the
// concurrent path. See Options.LowLatency for the recall caveat.
func (e *Engine) runSequential(ctx context.Context, shopID, query string, kind models.ItemKind, active []Strategy, want int) (map[string]Candidate, error) {
	merged := make(map[string]Candidate)
	for _, st := range active {
		if len(merged) >= want {
			break
		}
		candidates, err := st.execute(ctx, e.catalog, shopID, kind, query)
		if err != nil {
			return nil, err
		}
		mergeInto(merged, candidates)
	}
	return merged, nil
}

// applyRestrictions applies the optional category and date-range filters.
// Like the precision filter, it only removes candidates.
func applyRestrictions(candidates []Candidate, opts Options) []Candidate {
	if opts.CategoryID == nil && opts.CreatedAfter == nil && opts.CreatedBefore == nil {
		return candidates
	}

	kept := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if opts.CategoryID != nil {
			if c.Item.CategoryID == nil || *c.Item.CategoryID != *opts.CategoryID {
				continue
			}
		}
		if opts.CreatedAfter != nil && c.Item.CreatedAt.Before(*opts.CreatedAfter) {
			continue
		}
		if opts.CreatedBefore != nil && c.Item.CreatedAt.After(*opts.CreatedBefore) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}
