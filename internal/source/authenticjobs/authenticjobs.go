package authenticjobs

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

// Authentic Jobs API: GET /api/ with method=aj.jobs.search. Response nests
// listings under listings.listing[].

const apiBase = "https://authenticjobs.com/api/"

type Fetcher struct {
	getter httpx.Getter
	creds  secrets.Provider
	gate   *httpx.SourceGate
	logger *zap.Logger
}

func New(getter httpx.Getter, creds secrets.Provider, gate *httpx.SourceGate, logger *zap.Logger) *Fetcher {
	return &Fetcher{getter: getter, creds: creds, gate: gate, logger: logger.Named("authenticjobs")}
}

func (f *Fetcher) Name() string        { return source.AuthenticJobs }
func (f *Fetcher) DisplayName() string { return "Authentic Jobs" }
func (f *Fetcher) Kind() source.Kind   { return source.KindAPI }

type response struct {
	Listings struct {
		Listing []listing `json:"listing"`
	} `json:"listings"`
}

type listing struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ApplyURL    string `json:"apply_url"`
	PostedAt    string `json:"post_date"`
	Type        struct {
		Name string `json:"name"`
	} `json:"type"`
	Company struct {
		Name     string `json:"name"`
		Location struct {
			Name string `json:"name"`
		} `json:"location"`
	} `json:"company"`
}

func (f *Fetcher) Fetch(ctx context.Context, q source.Query) ([]domain.JobResult, error) {
	key, ok := f.creds.Lookup("authenticjobs-api-key", f.Name())
	if !ok {
		return nil, nil
	}
	if f.gate != nil && !f.gate.Allow(f.Name()) {
		f.logger.Debug("rate gate closed, skipping query", zap.String("query", q.Text))
		return nil, nil
	}

	v := url.Values{}
	v.Set("api_key", key)
	v.Set("method", "aj.jobs.search")
	v.Set("keywords", q.Text)
	v.Set("format", "json")
	if q.Location != "" {
		v.Set("location", q.Location)
	}

	body, err := f.getter.Get(ctx, apiBase+"?"+v.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("authenticjobs get: %w", err)
	}

	var res response
	if err := json.Unmarshal([]byte(body), &res); err != nil {
		return nil, fmt.Errorf("authenticjobs decode: %w", err)
	}

	jobs := make([]domain.JobResult, 0, len(res.Listings.Listing))
	for _, l := range res.Listings.Listing {
		if l.Title == "" || l.Company.Name == "" || l.URL == "" {
			continue
		}
		loc := source.NormalizeLocation(l.Company.Location.Name)
		jobs = append(jobs, domain.JobResult{
			Title:           source.CleanText(l.Title),
			Company:         source.CleanText(l.Company.Name),
			Location:        loc,
			Arrangement:     source.InferArrangement(loc, l.Title, l.Description),
			DatePosted:      l.PostedAt,
			Description:     l.Description,
			URL:             l.URL,
			Source:          "Authentic Jobs",
			ApplyInfo:       l.ApplyURL,
			EmploymentType:  l.Type.Name,
			ParseConfidence: domain.ConfidenceHigh,
		})
	}
	return jobs, nil
}
