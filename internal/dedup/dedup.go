// Package dedup removes near-duplicate listings across sources. Fuzzy
// comparison is expensive, so candidates are bucketed by the first word of
// the company name and only compared within their bucket: O(N·B) instead
// of O(N²).
package dedup

import (
	"strings"

	"jobradar-engine/internal/domain"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// DefaultThreshold is the title/company similarity cutoff (0-100).
const DefaultThreshold = 85

// locationThreshold is the fixed character-ratio cutoff for locations.
// Looser than the title/company cutoff: the same opening is often posted
// with "Austin, TX" on one board and "Austin, Texas" on another.
const locationThreshold = 80

// CrossSource returns a new list with fuzzy duplicates removed. Two
// listings are duplicates iff title similarity >= threshold AND company
// similarity >= threshold (both token-order-insensitive) AND location
// similarity >= 80 (character ratio). The first occurrence in input order
// wins, so source priority is the order the orchestrator appended results:
// scraper phase before API phase. Input is not mutated; relative order of
// kept items is stable.
func CrossSource(results []domain.JobResult, threshold int) []domain.JobResult {
	if len(results) <= 1 {
		return append([]domain.JobResult{}, results...)
	}

	type kept struct {
		index    int
		title    string
		company  string
		location string
	}

	buckets := make(map[string][]kept)
	exact := make(map[string]bool)
	out := make([]domain.JobResult, 0, len(results))

	for i, job := range results {
		title := strings.ToLower(job.Title)
		company := strings.ToLower(job.Company)
		location := strings.ToLower(job.Location)

		// Exact fast path: identical triples never reach the fuzzy check.
		exactKey := title + "|" + company + "|" + location
		if exact[exactKey] {
			continue
		}

		bucket := bucketKey(company)
		dup := false
		for _, k := range buckets[bucket] {
			if fuzzy.TokenSortRatio(title, k.title) >= threshold &&
				fuzzy.TokenSortRatio(company, k.company) >= threshold &&
				fuzzy.Ratio(location, k.location) >= locationThreshold {
				dup = true
				break
			}
		}
		if dup {
			continue
		}

		exact[exactKey] = true
		buckets[bucket] = append(buckets[bucket], kept{
			index:    i,
			title:    title,
			company:  company,
			location: location,
		})
		out = append(out, job)
	}

	return out
}

// bucketKey groups listings by the lowercase first word of the company,
// so "Google Inc" and "Google LLC" land in the same bucket.
func bucketKey(company string) string {
	fields := strings.Fields(company)
	if len(fields) == 0 {
		return "unknown"
	}
	return fields[0]
}
