package adzuna

import (
	"context"
	"strings"
	"testing"

	"jobradar-engine/internal/secrets"
	"jobradar-engine/internal/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGetter struct {
	body    string
	lastURL string
	calls   int
}

func (g *fakeGetter) Get(_ context.Context, u string, _ map[string]string) (string, error) {
	g.calls++
	g.lastURL = u
	return g.body, nil
}

var creds = secrets.Static{
	"adzuna-app-id":  "id123",
	"adzuna-app-key": "key456",
}

const payload = `{"results": [
  {"title": "Backend Engineer", "company": {"display_name": "Acme"},
   "location": {"display_name": "Austin, TX"}, "salary_min": 130000, "salary_max": 150000,
   "redirect_url": "https://adzuna.example/1", "created": "2026-08-19",
   "description": "Python services", "contract_time": "full_time"},
  {"title": "", "company": {"display_name": "Ghost"}, "redirect_url": "https://adzuna.example/2"},
  {"title": "No Link Role", "company": {"display_name": "Initech"}, "redirect_url": ""}
]}`

func TestFetchMapsResults(t *testing.T) {
	g := &fakeGetter{body: payload}
	f := New(g, creds, nil, zap.NewNop())

	jobs, err := f.Fetch(context.Background(), source.Query{Source: source.Adzuna, Text: "backend engineer", Location: "Austin, TX"})
	require.NoError(t, err)
	require.Len(t, jobs, 1, "rows missing title or redirect_url are discarded")

	j := jobs[0]
	assert.Equal(t, "Backend Engineer", j.Title)
	assert.Equal(t, "Acme", j.Company)
	assert.Equal(t, "Austin, TX", j.Location)
	assert.Equal(t, "full_time", j.EmploymentType)
	assert.Equal(t, "$130k - $150k", j.Salary)
	assert.Equal(t, "Adzuna", j.Source)

	assert.Contains(t, g.lastURL, "app_id=id123")
	assert.Contains(t, g.lastURL, "what=backend+engineer")
	assert.Contains(t, g.lastURL, "where=Austin")
}

func TestFetchSkipsWithoutCredentials(t *testing.T) {
	g := &fakeGetter{body: payload}
	f := New(g, secrets.Static{}, nil, zap.NewNop())

	jobs, err := f.Fetch(context.Background(), source.Query{Source: source.Adzuna, Text: "backend"})
	assert.NoError(t, err, "missing credentials are a skip, not a failure")
	assert.Nil(t, jobs)
	assert.Zero(t, g.calls, "no request without credentials")
}

func TestFetchPartialCredentialsSkip(t *testing.T) {
	g := &fakeGetter{body: payload}
	f := New(g, secrets.Static{"adzuna-app-id": "id123"}, nil, zap.NewNop())

	jobs, err := f.Fetch(context.Background(), source.Query{Source: source.Adzuna, Text: "backend"})
	assert.NoError(t, err)
	assert.Nil(t, jobs)
	assert.Zero(t, g.calls)
}

func TestFetchBadJSON(t *testing.T) {
	f := New(&fakeGetter{body: "oops"}, creds, nil, zap.NewNop())
	_, err := f.Fetch(context.Background(), source.Query{Source: source.Adzuna, Text: "backend"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "decode"))
}
