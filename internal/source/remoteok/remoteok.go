package remoteok

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/httpx"
	"jobradar-engine/internal/source"

	"go.uber.org/zap"
)

// RemoteOK publishes its whole board as a JSON array at /api. The first
// element is a legal notice object, not a listing; real listings carry a
// position and a company. Filtering by query term happens client-side
// against position, tags and description.

const apiURL = "https://remoteok.com/api"

type Fetcher struct {
	getter httpx.Getter
	logger *zap.Logger
}

func New(getter httpx.Getter, logger *zap.Logger) *Fetcher {
	return &Fetcher{getter: getter, logger: logger.Named("remoteok")}
}

func (f *Fetcher) Name() string        { return source.RemoteOK }
func (f *Fetcher) DisplayName() string { return "RemoteOK" }
func (f *Fetcher) Kind() source.Kind   { return source.KindScraper }

type listing struct {
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	SalaryMin   float64  `json:"salary_min"`
	SalaryMax   float64  `json:"salary_max"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	ApplyURL    string   `json:"apply_url"`
	Tags        []string `json:"tags"`
}

func (f *Fetcher) Fetch(ctx context.Context, q source.Query) ([]domain.JobResult, error) {
	body, err := f.getter.Get(ctx, apiURL, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, fmt.Errorf("remoteok get: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, fmt.Errorf("remoteok decode: %w", err)
	}

	term := strings.ToLower(strings.TrimSpace(q.Text))
	var jobs []domain.JobResult
	for _, msg := range raw {
		var l listing
		if err := json.Unmarshal(msg, &l); err != nil {
			f.logger.Debug("skipping malformed item", zap.Error(err))
			continue
		}
		// Legal-notice element and any partial rows.
		if l.Position == "" || l.Company == "" || (l.URL == "" && l.ApplyURL == "") {
			continue
		}
		if term != "" && !matches(l, term) {
			continue
		}
		jobs = append(jobs, mapListing(l))
	}
	return jobs, nil
}

func matches(l listing, term string) bool {
	if strings.Contains(strings.ToLower(l.Position), term) ||
		strings.Contains(strings.ToLower(l.Description), term) {
		return true
	}
	for _, t := range l.Tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

func mapListing(l listing) domain.JobResult {
	u := l.URL
	if u == "" {
		u = l.ApplyURL
	}
	loc := source.NormalizeLocation(l.Location)
	if loc == "" {
		loc = "Remote"
	}

	job := domain.JobResult{
		Title:           source.CleanText(l.Position),
		Company:         source.CleanText(l.Company),
		Location:        loc,
		Arrangement:     domain.ArrangementRemote,
		DatePosted:      l.Date,
		Description:     l.Description,
		URL:             u,
		Source:          "RemoteOK",
		ApplyInfo:       l.ApplyURL,
		ParseConfidence: domain.ConfidenceHigh,
	}
	if l.SalaryMin > 0 {
		mn := l.SalaryMin
		job.SalaryMin = &mn
		job.Salary = fmt.Sprintf("$%.0fk", mn/1000)
		job.SalaryCurrency = "USD"
	}
	if l.SalaryMax > 0 {
		mx := l.SalaryMax
		job.SalaryMax = &mx
		if job.SalaryMin != nil {
			job.Salary = fmt.Sprintf("$%.0fk - $%.0fk", *job.SalaryMin/1000, mx/1000)
		}
	}
	return job
}
