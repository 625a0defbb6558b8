package usajobs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/httpx"
	"jobradar-engine/internal/profile"
	"jobradar-engine/internal/secrets"
	"jobradar-engine/internal/source"

	"go.uber.org/zap"
)

// USAJobs API: GET data.usajobs.gov/api/search with Authorization-Key and
// a registered email as User-Agent. Listings hide under
// SearchResult.SearchResultItems[].MatchedObjectDescriptor. Federal pay is
// published as remuneration ranges, not a display string.

const apiBase = "https://data.usajobs.gov/api/search"

type Fetcher struct {
	getter  httpx.Getter
	creds   secrets.Provider
	gate    *httpx.SourceGate
	logger  *zap.Logger
	profile profile.Profile
}

// New takes the profile because federal listings are commute-bound: when
// the candidate has a target market and accepts no onsite work, fully
// onsite announcements outside that market are filtered at the source.
func New(getter httpx.Getter, creds secrets.Provider, gate *httpx.SourceGate, p profile.Profile, logger *zap.Logger) *Fetcher {
	return &Fetcher{getter: getter, creds: creds, gate: gate, profile: p, logger: logger.Named("usajobs")}
}

func (f *Fetcher) Name() string        { return source.USAJobs }
func (f *Fetcher) DisplayName() string { return "USAJobs" }
func (f *Fetcher) Kind() source.Kind   { return source.KindAPI }

type response struct {
	SearchResult struct {
		SearchResultItems []struct {
			MatchedObjectDescriptor descriptor `json:"MatchedObjectDescriptor"`
		} `json:"SearchResultItems"`
	} `json:"SearchResult"`
}

type descriptor struct {
	PositionTitle           string `json:"PositionTitle"`
	OrganizationName        string `json:"OrganizationName"`
	PositionLocationDisplay string `json:"PositionLocationDisplay"`
	PositionURI             string `json:"PositionURI"`
	PublicationStartDate    string `json:"PublicationStartDate"`
	PositionRemuneration    []struct {
		MinimumRange string `json:"MinimumRange"`
		MaximumRange string `json:"MaximumRange"`
	} `json:"PositionRemuneration"`
	PositionSchedule []struct {
		Name string `json:"Name"`
	} `json:"PositionSchedule"`
	UserArea struct {
		Details struct {
			JobSummary string `json:"JobSummary"`
		} `json:"Details"`
	} `json:"UserArea"`
}

func (f *Fetcher) Fetch(ctx context.Context, q source.Query) ([]domain.JobResult, error) {
	key, ok := f.creds.Lookup("usajobs-api-key", f.Name())
	if !ok {
		return nil, nil
	}
	email, ok := f.creds.Lookup("usajobs-email", f.Name())
	if !ok {
		return nil, nil
	}
	if f.gate != nil && !f.gate.Allow(f.Name()) {
		f.logger.Debug("rate gate closed, skipping query", zap.String("query", q.Text))
		return nil, nil
	}

	v := url.Values{}
	v.Set("Keyword", q.Text)
	v.Set("ResultsPerPage", "50")
	if q.Location != "" {
		v.Set("LocationName", q.Location)
	}

	headers := map[string]string{
		"Authorization-Key": key,
		"User-Agent":        email,
		"Host":              "data.usajobs.gov",
	}
	body, err := f.getter.Get(ctx, apiBase+"?"+v.Encode(), headers)
	if err != nil {
		return nil, fmt.Errorf("usajobs get: %w", err)
	}

	var res response
	if err := json.Unmarshal([]byte(body), &res); err != nil {
		return nil, fmt.Errorf("usajobs decode: %w", err)
	}

	var jobs []domain.JobResult
	for _, it := range res.SearchResult.SearchResultItems {
		d := it.MatchedObjectDescriptor
		if d.PositionTitle == "" || d.OrganizationName == "" || d.PositionURI == "" {
			continue
		}
		job := f.mapDescriptor(d)
		if f.skipForCommute(job) {
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func (f *Fetcher) mapDescriptor(d descriptor) domain.JobResult {
	loc := source.NormalizeLocation(d.PositionLocationDisplay)
	job := domain.JobResult{
		Title:           source.CleanText(d.PositionTitle),
		Company:         source.CleanText(d.OrganizationName),
		Location:        loc,
		Arrangement:     source.InferArrangement(loc, d.PositionTitle, d.UserArea.Details.JobSummary),
		DatePosted:      d.PublicationStartDate,
		Description:     d.UserArea.Details.JobSummary,
		URL:             d.PositionURI,
		Source:          "USAJobs",
		ParseConfidence: domain.ConfidenceHigh,
	}
	if len(d.PositionSchedule) > 0 {
		job.EmploymentType = d.PositionSchedule[0].Name
	}
	if len(d.PositionRemuneration) > 0 {
		r := d.PositionRemuneration[0]
		if mn := parseMoney(r.MinimumRange); mn != nil {
			job.SalaryMin = mn
			job.SalaryCurrency = "USD"
			job.Salary = fmt.Sprintf("$%.0fk", *mn/1000)
		}
		if mx := parseMoney(r.MaximumRange); mx != nil {
			job.SalaryMax = mx
			if job.SalaryMin != nil {
				job.Salary = fmt.Sprintf("$%.0fk - $%.0fk", *job.SalaryMin/1000, *mx/1000)
			}
		}
	}
	return job
}

// skipForCommute drops onsite federal announcements outside the target
// market for candidates who won't relocate or commute.
func (f *Fetcher) skipForCommute(job domain.JobResult) bool {
	if job.Arrangement != domain.ArrangementOnsite {
		return false
	}
	market := strings.ToLower(strings.TrimSpace(f.profile.TargetMarket))
	if market == "" || f.profile.OnsiteOK {
		return false
	}
	return !strings.Contains(strings.ToLower(job.Location), market)
}

func parseMoney(s string) *float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil
	}
	var v float64
	if _, err := fmt.Sscanf(s, "%f", &v); err != nil || v <= 0 {
		return nil
	}
	return &v
}
