package remoteok

import (
	"context"
	"testing"

	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGetter struct {
	body  string
	calls int
}

func (g *fakeGetter) Get(_ context.Context, _ string, _ map[string]string) (string, error) {
	g.calls++
	return g.body, nil
}

const feed = `[
  {"legal": "API terms: link back to remoteok.com"},
  {"position": "Senior Go Engineer", "company": "Acme", "location": "Worldwide",
   "salary_min": 120000, "salary_max": 160000, "date": "2026-08-20",
   "description": "Build backend services in Go", "url": "https://remoteok.com/jobs/1",
   "tags": ["golang", "backend"]},
  {"position": "Marketing Manager", "company": "Initech",
   "description": "Run campaigns", "url": "https://remoteok.com/jobs/2", "tags": ["marketing"]},
  {"position": "Orphan Row", "company": "", "url": "https://remoteok.com/jobs/3"}
]`

func TestFetchFiltersAndMaps(t *testing.T) {
	f := New(&fakeGetter{body: feed}, zap.NewNop())
	jobs, err := f.Fetch(context.Background(), source.Query{Source: source.RemoteOK, Text: "Go Engineer"})
	require.NoError(t, err)
	require.Len(t, jobs, 1, "legal notice, non-matching and partial rows are dropped")

	j := jobs[0]
	assert.Equal(t, "Senior Go Engineer", j.Title)
	assert.Equal(t, "Acme", j.Company)
	assert.Equal(t, domain.ArrangementRemote, j.Arrangement)
	assert.Equal(t, domain.ConfidenceHigh, j.ParseConfidence)
	assert.Equal(t, "$120k - $160k", j.Salary)
	require.NotNil(t, j.SalaryMin)
	assert.Equal(t, 120000.0, *j.SalaryMin)
	assert.Equal(t, "RemoteOK", j.Source)
}

func TestFetchMatchesOnTags(t *testing.T) {
	f := New(&fakeGetter{body: feed}, zap.NewNop())
	jobs, err := f.Fetch(context.Background(), source.Query{Source: source.RemoteOK, Text: "golang"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Senior Go Engineer", jobs[0].Title)
}

func TestFetchEmptyTermReturnsAll(t *testing.T) {
	f := New(&fakeGetter{body: feed}, zap.NewNop())
	jobs, err := f.Fetch(context.Background(), source.Query{Source: source.RemoteOK})
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestFetchBadJSON(t *testing.T) {
	f := New(&fakeGetter{body: "<html>blocked</html>"}, zap.NewNop())
	_, err := f.Fetch(context.Background(), source.Query{Source: source.RemoteOK, Text: "go"})
	assert.Error(t, err)
}
