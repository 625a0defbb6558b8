package search

import (
	"context"
	"errors"
	"sync"
	"testing"

	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/profile"
	"jobradar-engine/internal/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubFetcher serves canned results (or an error) for its source.
type stubFetcher struct {
	name    string
	display string
	kind    source.Kind

	mu      sync.Mutex
	calls   int
	results []domain.JobResult
	err     error
}

func (f *stubFetcher) Name() string        { return f.name }
func (f *stubFetcher) DisplayName() string { return f.display }
func (f *stubFetcher) Kind() source.Kind   { return f.kind }

func (f *stubFetcher) Fetch(_ context.Context, _ source.Query) ([]domain.JobResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func fetchProfile() profile.Profile {
	p := profile.Profile{
		TargetTitles: []string{"Backend Engineer"},
		TargetMarket: "Austin, TX",
	}
	p.ApplyDefaults()
	return p
}

func mkJob(title, company, src string) domain.JobResult {
	return domain.JobResult{Title: title, Company: company, Source: src, URL: "https://example.com", Location: "Remote"}
}

func TestFetchAllMergesAcrossSources(t *testing.T) {
	dice := &stubFetcher{name: source.Dice, display: "Dice", kind: source.KindScraper,
		results: []domain.JobResult{mkJob("Backend Engineer", "Acme", "Dice")}}
	adz := &stubFetcher{name: source.Adzuna, display: "Adzuna", kind: source.KindAPI,
		results: []domain.JobResult{mkJob("Platform Engineer", "Initech", "Adzuna")}}

	e := NewEngine(zap.NewNop(), dice, adz)
	out := e.FetchAll(context.Background(), fetchProfile())

	require.Len(t, out, 2)
	assert.Equal(t, 1, dice.calls)
	assert.Equal(t, 1, adz.calls)
}

func TestFetchAllExactKeyStability(t *testing.T) {
	// Same (title, company) from two sources: exactly one survives, and
	// the scraper-phase copy wins because its phase merges first.
	dice := &stubFetcher{name: source.Dice, display: "Dice", kind: source.KindScraper,
		results: []domain.JobResult{mkJob("Backend Engineer", "Acme", "Dice")}}
	adz := &stubFetcher{name: source.Adzuna, display: "Adzuna", kind: source.KindAPI,
		results: []domain.JobResult{mkJob("  Backend Engineer ", "ACME", "Adzuna")}}

	e := NewEngine(zap.NewNop(), dice, adz)
	out := e.FetchAll(context.Background(), fetchProfile())

	require.Len(t, out, 1)
	assert.Equal(t, "Dice", out[0].Source)
}

func TestFetchAllSurvivesFailingSource(t *testing.T) {
	dice := &stubFetcher{name: source.Dice, display: "Dice", kind: source.KindScraper,
		err: errors.New("boom")}
	adz := &stubFetcher{name: source.Adzuna, display: "Adzuna", kind: source.KindAPI,
		results: []domain.JobResult{mkJob("Platform Engineer", "Initech", "Adzuna")}}

	e := NewEngine(zap.NewNop(), dice, adz)
	out := e.FetchAll(context.Background(), fetchProfile())

	require.Len(t, out, 1)
	assert.Equal(t, "Adzuna", out[0].Source)
}

func TestFetchAllAllSourcesFail(t *testing.T) {
	dice := &stubFetcher{name: source.Dice, display: "Dice", kind: source.KindScraper, err: errors.New("down")}
	adz := &stubFetcher{name: source.Adzuna, display: "Adzuna", kind: source.KindAPI, err: errors.New("down")}

	e := NewEngine(zap.NewNop(), dice, adz)
	out := e.FetchAll(context.Background(), fetchProfile())
	assert.Empty(t, out)
}

func TestFetchAllProgressCallbacks(t *testing.T) {
	p := profile.Profile{
		TargetTitles: []string{"Backend Engineer", "Platform Engineer"},
		TargetMarket: "Austin, TX",
	}
	p.ApplyDefaults()

	fetchers := []source.Fetcher{
		&stubFetcher{name: source.Dice, display: "Dice", kind: source.KindScraper},
		&stubFetcher{name: source.RemoteOK, display: "RemoteOK", kind: source.KindScraper},
		&stubFetcher{name: source.WeWorkRemotely, display: "WeWorkRemotely", kind: source.KindScraper},
		&stubFetcher{name: source.Adzuna, display: "Adzuna", kind: source.KindAPI},
		&stubFetcher{name: source.AuthenticJobs, display: "Authentic Jobs", kind: source.KindAPI},
		&stubFetcher{name: source.JSearch, display: "JSearch", kind: source.KindAPI},
		&stubFetcher{name: source.USAJobs, display: "USAJobs", kind: source.KindAPI},
	}

	e := NewEngine(zap.NewNop(), fetchers...)

	var perQuery int
	var lastDone, total int
	e.OnProgress = func(done, tot int, _ string) {
		perQuery++
		lastDone, total = done, tot
	}

	started := map[string]bool{}
	completed := map[string]bool{}
	e.OnSourceProgress = func(display string, _, _ int, state string, _ int) {
		if state == StateStarted {
			assert.False(t, completed[display], "started must precede complete for %s", display)
			started[display] = true
			return
		}
		assert.True(t, started[display], "complete without started for %s", display)
		completed[display] = true
	}

	e.FetchAll(context.Background(), p)

	assert.Equal(t, total, perQuery, "one progress call per query")
	assert.Equal(t, total, lastDone)
	assert.Equal(t, len(started), len(completed), "every started source completes")
}

func TestFetchAllSkipsUnregisteredSource(t *testing.T) {
	// Only dice registered; the builder also emits adzuna etc. Those
	// queries are dropped with a warning, not dispatched.
	dice := &stubFetcher{name: source.Dice, display: "Dice", kind: source.KindScraper,
		results: []domain.JobResult{mkJob("Backend Engineer", "Acme", "Dice")}}

	e := NewEngine(zap.NewNop(), dice)
	out := e.FetchAll(context.Background(), fetchProfile())
	require.Len(t, out, 1)
}
