package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/httpx"
	"jobradar-engine/internal/secrets"
	"jobradar-engine/internal/source"

	"go.uber.org/zap"
)

// Adzuna search API: GET /v1/api/jobs/{country}/search/1 with app_id and
// app_key query params. Response is {"results": [...]} with nested
// company/location display names.

const apiBase = "https://api.adzuna.com/v1/api/jobs/us/search/1"

type Fetcher struct {
	getter  httpx.Getter
	creds   secrets.Provider
	gate    *httpx.SourceGate
	logger  *zap.Logger
	perPage int
}

func New(getter httpx.Getter, creds secrets.Provider, gate *httpx.SourceGate, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		getter:  getter,
		creds:   creds,
		gate:    gate,
		logger:  logger.Named("adzuna"),
		perPage: 50,
	}
}

func (f *Fetcher) Name() string        { return source.Adzuna }
func (f *Fetcher) DisplayName() string { return "Adzuna" }
func (f *Fetcher) Kind() source.Kind   { return source.KindAPI }

type response struct {
	Results []result `json:"results"`
}

type result struct {
	Title   string `json:"title"`
	Company struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	SalaryMin    float64 `json:"salary_min"`
	SalaryMax    float64 `json:"salary_max"`
	RedirectURL  string  `json:"redirect_url"`
	Created      string  `json:"created"`
	Description  string  `json:"description"`
	ContractTime string  `json:"contract_time"`
}

func (f *Fetcher) Fetch(ctx context.Context, q source.Query) ([]domain.JobResult, error) {
	appID, ok := f.creds.Lookup("adzuna-app-id", f.Name())
	if !ok {
		return nil, nil
	}
	appKey, ok := f.creds.Lookup("adzuna-app-key", f.Name())
	if !ok {
		return nil, nil
	}
	if f.gate != nil && !f.gate.Allow(f.Name()) {
		f.logger.Debug("rate gate closed, skipping query", zap.String("query", q.Text))
		return nil, nil
	}

	v := url.Values{}
	v.Set("app_id", appID)
	v.Set("app_key", appKey)
	v.Set("what", q.Text)
	v.Set("results_per_page", fmt.Sprint(f.perPage))
	if q.Location != "" {
		v.Set("where", q.Location)
	}

	body, err := f.getter.Get(ctx, apiBase+"?"+v.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("adzuna get: %w", err)
	}

	var res response
	if err := json.Unmarshal([]byte(body), &res); err != nil {
		return nil, fmt.Errorf("adzuna decode: %w", err)
	}

	jobs := make([]domain.JobResult, 0, len(res.Results))
	for _, r := range res.Results {
		if r.Title == "" || r.Company.DisplayName == "" || r.RedirectURL == "" {
			continue
		}
		jobs = append(jobs, mapResult(r))
	}
	return jobs, nil
}

func mapResult(r result) domain.JobResult {
	loc := source.NormalizeLocation(r.Location.DisplayName)
	job := domain.JobResult{
		Title:           source.CleanText(r.Title),
		Company:         source.CleanText(r.Company.DisplayName),
		Location:        loc,
		Arrangement:     source.InferArrangement(loc, r.Title, r.Description),
		DatePosted:      r.Created,
		Description:     r.Description,
		URL:             r.RedirectURL,
		Source:          "Adzuna",
		EmploymentType:  r.ContractTime,
		ParseConfidence: domain.ConfidenceHigh,
	}
	if r.SalaryMin > 0 {
		mn := r.SalaryMin
		job.SalaryMin = &mn
		job.SalaryCurrency = "USD"
		job.Salary = fmt.Sprintf("$%.0fk", mn/1000)
	}
	if r.SalaryMax > 0 {
		mx := r.SalaryMax
		job.SalaryMax = &mx
		if job.SalaryMin != nil {
			job.Salary = fmt.Sprintf("$%.0fk - $%.0fk", *job.SalaryMin/1000, mx/1000)
		}
	}
	return job
}
