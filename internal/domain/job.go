package domain

import "strings"

// Arrangement values for JobResult.Arrangement.
const (
	ArrangementRemote  = "remote"
	ArrangementHybrid  = "hybrid"
	ArrangementOnsite  = "onsite"
	ArrangementUnknown = "unknown"
)

// ParseConfidence values. Scrape mappers downgrade this instead of
// erroring when a layout assumption fails.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// JobResult is one normalized listing from any source. Constructed once by
// a fetcher mapper, immutable afterwards; passed by value through dedup and
// scoring.
type JobResult struct {
	Title           string
	Company         string
	Location        string
	Arrangement     string // remote/hybrid/onsite/unknown
	Salary          string // display string, format varies by source
	DatePosted      string
	Description     string
	URL             string
	Source          string // display identifier, e.g. "HN Hiring"
	ApplyInfo       string
	EmploymentType  string
	ParseConfidence string // high/medium/low
	SalaryMin       *float64
	SalaryMax       *float64
	SalaryCurrency  string
}

// DedupKey is the exact-match identity used by the orchestrator merge:
// two results with the same key describe the same listing.
func (j JobResult) DedupKey() string {
	return strings.ToLower(strings.TrimSpace(j.Title)) + "|" + strings.ToLower(strings.TrimSpace(j.Company))
}

// SearchText is the blob dealbreaker and keyword matching run against.
func (j JobResult) SearchText() string {
	return strings.ToLower(j.Title + " " + j.Description + " " + j.Company)
}
