package dedup

import (
	"testing"

	"jobradar-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func job(title, company, location, src string) domain.JobResult {
	return domain.JobResult{Title: title, Company: company, Location: location, Source: src, URL: "https://example.com/" + src}
}

func TestCrossSourceExactRepeats(t *testing.T) {
	in := []domain.JobResult{
		job("Backend Engineer", "Acme", "Austin, TX", "Dice"),
		job("Backend Engineer", "Acme", "Austin, TX", "Adzuna"),
	}
	out := CrossSource(in, DefaultThreshold)
	require.Len(t, out, 1)
	assert.Equal(t, "Dice", out[0].Source, "first occurrence wins")
}

func TestCrossSourceFuzzyBucketing(t *testing.T) {
	// Punctuation variants land in the same "google" bucket and the fuzzy
	// preprocessing strips the period, so they compare equal.
	in := []domain.JobResult{
		job("Senior Software Engineer", "Google Inc", "Mountain View, CA", "Dice"),
		job("Senior Software Engineer", "Google Inc.", "Mountain View, CA", "Adzuna"),
	}
	out := CrossSource(in, DefaultThreshold)
	assert.Len(t, out, 1)
}

func TestCrossSourceDissimilarCompaniesInBucket(t *testing.T) {
	// Shared first word is only a bucketing hint; the company ratio still
	// has to clear the threshold.
	in := []domain.JobResult{
		job("Senior Software Engineer", "Google Inc", "Mountain View, CA", "Dice"),
		job("Senior Software Engineer", "Google Cloud Consulting Partners", "Mountain View, CA", "Adzuna"),
	}
	out := CrossSource(in, DefaultThreshold)
	assert.Len(t, out, 2)
}

func TestCrossSourceTokenOrderInsensitive(t *testing.T) {
	in := []domain.JobResult{
		job("Software Engineer, Backend", "Acme Corp", "Remote", "Dice"),
		job("Backend Software Engineer", "Acme Corp", "Remote", "RemoteOK"),
	}
	out := CrossSource(in, DefaultThreshold)
	assert.Len(t, out, 1)
}

func TestCrossSourceDifferentLocationsKept(t *testing.T) {
	in := []domain.JobResult{
		job("Backend Engineer", "Acme Corp", "Austin, TX", "Dice"),
		job("Backend Engineer", "Acme Corp", "Portland, OR", "Dice"),
	}
	out := CrossSource(in, DefaultThreshold)
	assert.Len(t, out, 2, "same role in different cities is not a duplicate")
}

func TestCrossSourceDifferentCompaniesKept(t *testing.T) {
	in := []domain.JobResult{
		job("Backend Engineer", "Acme Corp", "Remote", "Dice"),
		job("Backend Engineer", "Initech", "Remote", "Dice"),
	}
	out := CrossSource(in, DefaultThreshold)
	assert.Len(t, out, 2)
}

func TestCrossSourceIdempotent(t *testing.T) {
	in := []domain.JobResult{
		job("Backend Engineer", "Acme Corp", "Remote", "Dice"),
		job("Backend Engineer", "Acme Corporation", "Remote", "Adzuna"),
		job("Frontend Engineer", "Initech", "Austin, TX", "Dice"),
		job("Frontend Engineer", "Initech", "Austin, TX", "Adzuna"),
		job("Data Engineer", "", "", "HN Hiring"),
	}
	once := CrossSource(in, DefaultThreshold)
	twice := CrossSource(once, DefaultThreshold)
	assert.Equal(t, once, twice)
}

func TestCrossSourceThresholdMonotonic(t *testing.T) {
	in := []domain.JobResult{
		job("Backend Engineer", "Acme Corp", "Remote", "Dice"),
		job("Backend Engineer II", "Acme Corp Inc", "Remote", "Adzuna"),
		job("Sr Backend Engineer", "Acme", "Remote", "RemoteOK"),
		job("Platform Engineer", "Initech", "Austin, TX", "Dice"),
	}
	loose := CrossSource(in, 85)
	strict := CrossSource(in, 100)
	assert.GreaterOrEqual(t, len(strict), len(loose),
		"raising the threshold never removes more duplicates")
}

func TestCrossSourceStableOrderNoMutation(t *testing.T) {
	in := []domain.JobResult{
		job("A Role", "Zeta", "Remote", "Dice"),
		job("B Role", "Acme", "Remote", "Dice"),
		job("C Role", "Initech", "Remote", "Dice"),
	}
	snapshot := append([]domain.JobResult{}, in...)
	out := CrossSource(in, DefaultThreshold)

	assert.Equal(t, snapshot, in, "input not mutated")
	require.Len(t, out, 3)
	assert.Equal(t, "A Role", out[0].Title)
	assert.Equal(t, "B Role", out[1].Title)
	assert.Equal(t, "C Role", out[2].Title)
}

func TestCrossSourceEmptyCompanyBucket(t *testing.T) {
	in := []domain.JobResult{
		job("Mystery Role", "", "Remote", "HN Hiring"),
		job("Mystery Role", "", "Remote", "HN Hiring"),
	}
	out := CrossSource(in, DefaultThreshold)
	assert.Len(t, out, 1, "empty companies share the unknown bucket")
}
