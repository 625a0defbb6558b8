// Package rank scores listings against the candidate profile: six weighted
// components plus post-weighting adjustments for staffing firms, the
// compensation floor and scrape parse confidence.
package rank

import (
	"fmt"
	"math"
	"strings"

	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/profile"
)

// Component names, matching the scoring_weights keys in the profile.
const (
	CompSkillMatch = "skill_match"
	CompTitle      = "title_relevance"
	CompSeniority  = "seniority"
	CompLocation   = "location"
	CompDomain     = "domain"
	CompResponse   = "response_likelihood"
)

// Recommendation strings derived from the overall score.
const (
	RecStrong      = "Strong Recommend"
	RecRecommend   = "Recommend"
	RecWorthReview = "Worth Reviewing"
	RecWeak        = "Weak Match"
	RecPoor        = "Poor Match"
	RecDealbreaker = "Dealbreaker"
)

// Component is one scored dimension in [1.0, 5.0].
type Component struct {
	Score  float64
	Detail string
}

// ScoreResult is the output for one (job, profile) pair. Created once,
// never mutated.
type ScoreResult struct {
	Overall        float64
	Components     map[string]Component
	Recommendation string
	// Dealbreaker carries the matched substring when the short circuit
	// fired; empty otherwise.
	Dealbreaker string
}

// Scorer scores jobs against one profile. Pure: no shared state beyond
// the read-only profile.
type Scorer struct {
	Profile profile.Profile
}

func New(p profile.Profile) Scorer {
	return Scorer{Profile: p}
}

// Score computes the weighted fit score for one listing. Dealbreakers
// short-circuit to 0.0 with no components; everything else lands in
// [1.0, 5.0] before the floor-to-1.0 adjustments, [0.0, 5.0] overall.
func (s Scorer) Score(job domain.JobResult) ScoreResult {
	text := job.SearchText()

	// 1. Dealbreaker check, terminal.
	for _, db := range s.Profile.Dealbreakers {
		needle := strings.ToLower(strings.TrimSpace(db))
		if needle == "" {
			continue
		}
		if strings.Contains(text, needle) {
			return ScoreResult{
				Overall:        0.0,
				Components:     map[string]Component{},
				Recommendation: RecDealbreaker,
				Dealbreaker:    db,
			}
		}
	}

	// 2. Independent components.
	components := map[string]Component{
		CompSkillMatch: s.scoreSkills(job),
		CompTitle:      s.scoreTitle(job),
		CompSeniority:  s.scoreSeniority(job),
		CompLocation:   s.scoreLocation(job),
		CompDomain:     s.scoreDomain(job),
		CompResponse:   s.scoreResponse(job),
	}

	// 3. Weighted sum. Weights are trusted to sum to ~1.0.
	overall := 0.0
	for name, c := range components {
		overall += c.Score * s.Profile.Weight(name)
	}

	// 4. Staffing-firm adjustment, post-weighting.
	if firm := MatchStaffingFirm(job.Company); firm != "" {
		switch s.Profile.StaffingPreference {
		case profile.StaffingBoost:
			overall = math.Min(5.0, overall+0.5)
		case profile.StaffingPenalize:
			overall = math.Max(1.0, overall-1.0)
		}
	}

	// 5. Compensation floor penalty.
	overall = s.applyCompFloor(job, overall)

	// 6. Parse-confidence penalty.
	if job.ParseConfidence == domain.ConfidenceLow {
		overall = math.Max(1.0, overall-0.3)
	}

	// 7. Round and bucket.
	overall = math.Round(overall*10) / 10
	return ScoreResult{
		Overall:        overall,
		Components:     components,
		Recommendation: recommendation(overall),
	}
}

func (s Scorer) applyCompFloor(job domain.JobResult, overall float64) float64 {
	floor := s.Profile.CompFloor
	if floor <= 0 {
		return overall
	}

	salary := job.SalaryMin
	if salary == nil {
		salary = ParseSalaryNumber(job.Salary)
	}
	if salary == nil || *salary >= floor {
		// Unlisted or malformed salary: no penalty.
		return overall
	}

	gap := (floor - *salary) / floor
	penalty := 0.5
	switch {
	case gap > 0.30:
		penalty = 1.5
	case gap > 0.15:
		penalty = 1.0
	}
	return math.Max(1.0, overall-penalty)
}

func recommendation(overall float64) string {
	switch {
	case overall >= 4.0:
		return RecStrong
	case overall >= 3.5:
		return RecRecommend
	case overall >= 2.8:
		return RecWorthReview
	case overall >= 2.0:
		return RecWeak
	default:
		return RecPoor
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func detailf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
