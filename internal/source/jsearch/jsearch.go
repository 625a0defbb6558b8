package jsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/httpx"
	"jobradar-engine/internal/secrets"
	"jobradar-engine/internal/source"

	"go.uber.org/zap"
)

// JSearch (RapidAPI): GET /search with the key in X-RapidAPI-Key.
// Listings come back under data[] with employer_name, job_title and a
// city/state pair instead of a single location string.

const apiBase = "https://jsearch.p.rapidapi.com/search"

type Fetcher struct {
	getter httpx.Getter
	creds  secrets.Provider
	gate   *httpx.SourceGate
	logger *zap.Logger
}

func New(getter httpx.Getter, creds secrets.Provider, gate *httpx.SourceGate, logger *zap.Logger) *Fetcher {
	return &Fetcher{getter: getter, creds: creds, gate: gate, logger: logger.Named("jsearch")}
}

func (f *Fetcher) Name() string        { return source.JSearch }
func (f *Fetcher) DisplayName() string { return "JSearch" }
func (f *Fetcher) Kind() source.Kind   { return source.KindAPI }

type response struct {
	Data []item `json:"data"`
}

type item struct {
	JobTitle       string   `json:"job_title"`
	EmployerName   string   `json:"employer_name"`
	JobCity        string   `json:"job_city"`
	JobState       string   `json:"job_state"`
	JobCountry     string   `json:"job_country"`
	JobIsRemote    bool     `json:"job_is_remote"`
	JobMinSalary   *float64 `json:"job_min_salary"`
	JobMaxSalary   *float64 `json:"job_max_salary"`
	JobSalaryCurr  string   `json:"job_salary_currency"`
	JobApplyLink   string   `json:"job_apply_link"`
	JobDescription string   `json:"job_description"`
	JobPostedAt    string   `json:"job_posted_at_datetime_utc"`
	EmploymentType string   `json:"job_employment_type"`
}

func (f *Fetcher) Fetch(ctx context.Context, q source.Query) ([]domain.JobResult, error) {
	key, ok := f.creds.Lookup("jsearch-rapidapi-key", f.Name())
	if !ok {
		return nil, nil
	}
	if f.gate != nil && !f.gate.Allow(f.Name()) {
		f.logger.Debug("rate gate closed, skipping query", zap.String("query", q.Text))
		return nil, nil
	}

	text := q.Text
	if q.Location != "" {
		text += " in " + q.Location
	}
	v := url.Values{}
	v.Set("query", text)
	v.Set("num_pages", "1")

	headers := map[string]string{
		"X-RapidAPI-Key":  key,
		"X-RapidAPI-Host": "jsearch.p.rapidapi.com",
	}
	body, err := f.getter.Get(ctx, apiBase+"?"+v.Encode(), headers)
	if err != nil {
		return nil, fmt.Errorf("jsearch get: %w", err)
	}

	var res response
	if err := json.Unmarshal([]byte(body), &res); err != nil {
		return nil, fmt.Errorf("jsearch decode: %w", err)
	}

	jobs := make([]domain.JobResult, 0, len(res.Data))
	for _, it := range res.Data {
		if it.JobTitle == "" || it.EmployerName == "" || it.JobApplyLink == "" {
			continue
		}
		jobs = append(jobs, mapItem(it))
	}
	return jobs, nil
}

func mapItem(it item) domain.JobResult {
	var locParts []string
	for _, p := range []string{it.JobCity, it.JobState} {
		if strings.TrimSpace(p) != "" {
			locParts = append(locParts, strings.TrimSpace(p))
		}
	}
	loc := strings.Join(locParts, ", ")
	if loc == "" {
		loc = strings.TrimSpace(it.JobCountry)
	}

	arrangement := source.InferArrangement(loc, it.JobTitle, it.JobDescription)
	if it.JobIsRemote {
		arrangement = domain.ArrangementRemote
	}

	job := domain.JobResult{
		Title:           source.CleanText(it.JobTitle),
		Company:         source.CleanText(it.EmployerName),
		Location:        loc,
		Arrangement:     arrangement,
		DatePosted:      it.JobPostedAt,
		Description:     it.JobDescription,
		URL:             it.JobApplyLink,
		Source:          "JSearch",
		EmploymentType:  it.EmploymentType,
		ParseConfidence: domain.ConfidenceHigh,
		SalaryMin:       it.JobMinSalary,
		SalaryMax:       it.JobMaxSalary,
		SalaryCurrency:  it.JobSalaryCurr,
	}
	if it.JobMinSalary != nil && *it.JobMinSalary > 0 {
		job.Salary = fmt.Sprintf("$%.0fk", *it.JobMinSalary/1000)
		if it.JobMaxSalary != nil && *it.JobMaxSalary > 0 {
			job.Salary = fmt.Sprintf("$%.0fk - $%.0fk", *it.JobMinSalary/1000, *it.JobMaxSalary/1000)
		}
	}
	return job
}
