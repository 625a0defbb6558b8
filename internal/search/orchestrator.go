package search

import (
	"context"

	"jobradar-engine/internal/dedup"
	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/profile"
	"jobradar-engine/internal/source"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Progress fires after every individual query completes.
type Progress func(done, total int, sourceName string)

// SourceProgress fires once when a source's first query begins
// (state "started") and once when its last query completes
// (state "complete"). "started" always precedes "complete".
type SourceProgress func(displayName string, n, totalSources int, state string, jobCount int)

const (
	StateStarted  = "started"
	StateComplete = "complete"
)

// Engine runs source fetchers concurrently in two ordered phases:
// scrapers first, then APIs. The scraper phase drains fully before the
// API phase starts, so scraped results populate the seen set first and
// later exact duplicates from APIs are dropped on merge.
type Engine struct {
	fetchers map[string]source.Fetcher
	logger   *zap.Logger

	OnProgress       Progress
	OnSourceProgress SourceProgress
}

func NewEngine(logger *zap.Logger, fetchers ...source.Fetcher) *Engine {
	m := make(map[string]source.Fetcher, len(fetchers))
	for _, f := range fetchers {
		m[f.Name()] = f
	}
	return &Engine{fetchers: m, logger: logger.Named("search")}
}

// FetchAll builds queries from the profile, runs both phases, merges with
// exact-key dedup and finishes with the cross-source fuzzy pass. A failed
// query contributes zero results; FetchAll itself never fails.
func (e *Engine) FetchAll(ctx context.Context, p profile.Profile) []domain.JobResult {
	queries := BuildQueries(p)

	var scraperQs, apiQs []source.Query
	for _, q := range queries {
		f, ok := e.fetchers[q.Source]
		if !ok {
			e.logger.Warn("no fetcher registered for source", zap.String("source", q.Source))
			continue
		}
		if f.Kind() == source.KindScraper {
			scraperQs = append(scraperQs, q)
		} else {
			apiQs = append(apiQs, q)
		}
	}

	st := newMergeState(e, append(append([]source.Query{}, scraperQs...), apiQs...))

	workers := p.Workers
	if workers <= 0 {
		workers = 6
	}

	e.runPhase(ctx, scraperQs, workers, st)
	e.runPhase(ctx, apiQs, workers, st)

	e.logger.Info("fetch complete",
		zap.Int("queries", st.total),
		zap.Int("merged", len(st.results)),
	)
	return dedup.CrossSource(st.results, dedup.DefaultThreshold)
}

type eventKind int

const (
	evStarted eventKind = iota
	evDone
)

type queryEvent struct {
	kind eventKind
	q    source.Query
	jobs []domain.JobResult
}

// runPhase dispatches one worker task per query over a bounded pool and
// drains completion events on the calling goroutine. The seen set and the
// accumulator are only touched here, never by workers.
func (e *Engine) runPhase(ctx context.Context, queries []source.Query, workers int, st *mergeState) {
	if len(queries) == 0 {
		return
	}
	if workers > len(queries) {
		workers = len(queries)
	}

	workCh := make(chan source.Query)
	events := make(chan queryEvent, 2*len(queries))

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for q := range workCh {
				events <- queryEvent{kind: evStarted, q: q}

				f := e.fetchers[q.Source]
				jobs, err := f.Fetch(ctx, q)
				if err != nil {
					// Best-effort: a failed query is zero results, siblings
					// keep running.
					e.logger.Warn("query failed",
						zap.String("source", q.Source),
						zap.String("query", q.Text),
						zap.Error(err),
					)
					jobs = nil
				}
				events <- queryEvent{kind: evDone, q: q, jobs: jobs}
			}
			return nil
		})
	}

	go func() {
		defer close(workCh)
		for _, q := range queries {
			select {
			case <-ctx.Done():
				return
			case workCh <- q:
			}
		}
	}()

	go func() {
		_ = g.Wait()
		close(events)
	}()

	for ev := range events {
		st.apply(e, ev)
	}
}

// mergeState is the run accumulator: exact-key seen set, merged results in
// completion order, and per-source progress bookkeeping.
type mergeState struct {
	seen    map[string]bool
	results []domain.JobResult

	total     int
	completed int

	pending      map[string]int // queries outstanding per source
	started      map[string]bool
	fetched      map[string]int // raw jobs fetched per source
	totalSources int
	startedCount int
	doneCount    int
}

func newMergeState(e *Engine, queries []source.Query) *mergeState {
	st := &mergeState{
		seen:    make(map[string]bool),
		pending: make(map[string]int),
		started: make(map[string]bool),
		fetched: make(map[string]int),
		total:   len(queries),
	}
	for _, q := range queries {
		if st.pending[q.Source] == 0 {
			st.totalSources++
		}
		st.pending[q.Source]++
	}
	return st
}

func (st *mergeState) apply(e *Engine, ev queryEvent) {
	f := e.fetchers[ev.q.Source]

	switch ev.kind {
	case evStarted:
		if !st.started[ev.q.Source] {
			st.started[ev.q.Source] = true
			st.startedCount++
			if e.OnSourceProgress != nil {
				e.OnSourceProgress(f.DisplayName(), st.startedCount, st.totalSources, StateStarted, 0)
			}
		}

	case evDone:
		for _, job := range ev.jobs {
			key := job.DedupKey()
			if st.seen[key] {
				continue
			}
			st.seen[key] = true
			st.results = append(st.results, job)
		}
		st.fetched[ev.q.Source] += len(ev.jobs)

		st.completed++
		if e.OnProgress != nil {
			e.OnProgress(st.completed, st.total, ev.q.Source)
		}

		st.pending[ev.q.Source]--
		if st.pending[ev.q.Source] == 0 {
			st.doneCount++
			if e.OnSourceProgress != nil {
				e.OnSourceProgress(f.DisplayName(), st.doneCount, st.totalSources, StateComplete, st.fetched[ev.q.Source])
			}
		}
	}
}
