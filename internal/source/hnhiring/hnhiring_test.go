package hnhiring

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
	body string
}

func (g *fakeGetter) Get(_ context.Context, _ string, _ map[string]string) (string, error) {
	return g.body, nil
}

func TestParsePostFullHeader(t *testing.T) {
	job := parsePost("Acme Robotics | Senior Go Engineer | Remote (US) | $150k-$180k | Full-time\nWe build warehouse robots. Email jobs@acme.example to apply.")

	assert.Equal(t, "Acme Robotics", job.Company)
	assert.Equal(t, "Senior Go Engineer", job.Title)
	assert.Equal(t, domain.ConfidenceHigh, job.ParseConfidence)
	assert.Equal(t, "$150k-$180k", job.Salary)
	assert.Equal(t, "Full-time", job.EmploymentType)
	assert.Equal(t, domain.ArrangementRemote, job.Arrangement)
	assert.Equal(t, "jobs@acme.example", job.ApplyInfo)
}

func TestParsePostTwoFieldHeader(t *testing.T) {
	job := parsePost("Initech | Backend Developer\nSmall team, Python stack.")

	assert.Equal(t, "Initech", job.Company)
	assert.Equal(t, "Backend Developer", job.Title)
	assert.Equal(t, domain.ConfidenceMedium, job.ParseConfidence)
}

func TestParsePostPipeless(t *testing.T) {
	job := parsePost("Hooli Cloud is hiring engineers for our platform team, remote ok")

	assert.Equal(t, "Hooli Cloud", job.Company)
	assert.Equal(t, "Unknown Title", job.Title)
	assert.Equal(t, domain.ConfidenceLow, job.ParseConfidence)
}

func TestParsePostSalaryFromBody(t *testing.T) {
	job := parsePost("Acme | Platform Engineer | NYC\nComp is $140k plus equity.")
	assert.Equal(t, "$140k", job.Salary)
}

func TestFetchParsesPage(t *testing.T) {
	html := `<html><body><ul>
	  <li class="job">Acme Robotics | Senior Go Engineer | Remote
	  <a href="https://news.ycombinator.com/item?id=1">link</a></li>
	  <li class="job">Initech | Backend Developer</li>
	  <li class="job">   </li>
	</ul></body></html>`

	s := New(&fakeGetter{body: html}, zap.NewNop())
	jobs, err := s.Fetch(context.Background(), source.Query{Source: source.HNHiring, Text: "golang"})
	require.NoError(t, err)
	require.Len(t, jobs, 2, "blank items are skipped")

	assert.Equal(t, "https://news.ycombinator.com/item?id=1", jobs[0].URL)
	assert.Equal(t, baseURL+"golang", jobs[1].URL, "posts without links fall back to the month page")
	assert.Equal(t, "HN Hiring", jobs[0].Source)
}
