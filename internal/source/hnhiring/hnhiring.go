// Package hnhiring scrapes hnhiring.com technology pages. Posts are
// freeform "Who is hiring?" comments, so field extraction here is
// best-effort by construction: the conventional header line is
// "Company | Role | Location | Salary | extras", but authors deviate
// constantly. When the header doesn't split the way we expect we fall
// back to regex guessing and tag the result with a lower confidence.
package hnhiring

import (
	"context"
	"fmt"
	"strings"

	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/httpx"
	"jobradar-engine/internal/source"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const baseURL = "https://hnhiring.com/technologies/"

type Scraper struct {
	getter httpx.Getter
	logger *zap.Logger
}

func New(getter httpx.Getter, logger *zap.Logger) *Scraper {
	return &Scraper{getter: getter, logger: logger.Named("hnhiring")}
}

func (s *Scraper) Name() string        { return source.HNHiring }
func (s *Scraper) DisplayName() string { return "HN Hiring" }
func (s *Scraper) Kind() source.Kind   { return source.KindScraper }

func (s *Scraper) Fetch(ctx context.Context, q source.Query) ([]domain.JobResult, error) {
	slug := strings.ToLower(strings.TrimSpace(q.Text))
	body, err := s.getter.Get(ctx, baseURL+slug, nil)
	if err != nil {
		return nil, fmt.Errorf("hnhiring get %q: %w", slug, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("hnhiring parse html: %w", err)
	}

	var jobs []domain.JobResult
	doc.Find("li.job, div.job").Each(func(_ int, item *goquery.Selection) {
		text := item.Text()
		if strings.TrimSpace(text) == "" {
			return
		}
		job := parsePost(text)
		if link, ok := item.Find("a[href]").First().Attr("href"); ok {
			if strings.HasPrefix(link, "http") {
				job.URL = link
			}
		}
		if job.URL == "" {
			// Fall back to the month page itself; still actionable.
			job.URL = baseURL + slug
		}
		jobs = append(jobs, job)
	})

	s.logger.Debug("parsed posts", zap.String("slug", slug), zap.Int("jobs", len(jobs)))
	return jobs, nil
}

// parsePost turns one freeform comment into a JobResult.
func parsePost(text string) domain.JobResult {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	header := source.CleanText(lines[0])
	rest := source.CleanText(strings.Join(lines[1:], " "))

	job := domain.JobResult{
		Source:          "HN Hiring",
		Arrangement:     domain.ArrangementUnknown,
		Description:     rest,
		ParseConfidence: domain.ConfidenceHigh,
	}

	fields := splitHeader(header)
	switch {
	case len(fields) >= 3:
		job.Title = fields[1]
		job.Company = fields[0]
		job.Location = source.NormalizeLocation(fields[2])
		for _, f := range fields[3:] {
			classifyExtra(&job, f)
		}
	case len(fields) == 2:
		// "Company | Role" is common enough to trust, but nothing else
		// is structured.
		job.Company = fields[0]
		job.Title = fields[1]
		job.ParseConfidence = domain.ConfidenceMedium
	default:
		// No pipes at all. Guess from the whole post.
		job.Company = guessCompany(header)
		job.Title = "Unknown Title"
		job.ParseConfidence = domain.ConfidenceLow
	}

	blob := header + " " + rest
	if job.Salary == "" {
		job.Salary = source.ExtractSalary(blob)
	}
	if email := source.ExtractEmail(blob); email != "" {
		job.ApplyInfo = email
	}
	job.Arrangement = source.InferArrangement(job.Location, header, rest)

	if job.Company == "" {
		job.Company = "Unknown Company"
		job.ParseConfidence = domain.ConfidenceLow
	}
	if job.Title == "" {
		job.Title = "Unknown Title"
		job.ParseConfidence = domain.ConfidenceLow
	}
	return job
}

func splitHeader(header string) []string {
	raw := strings.Split(header, "|")
	var out []string
	for _, f := range raw {
		f = source.CleanText(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// classifyExtra sorts trailing header fields into salary / arrangement /
// location, in that order of recognizability.
func classifyExtra(job *domain.JobResult, field string) {
	low := strings.ToLower(field)
	switch {
	case strings.Contains(field, "$") || strings.Contains(low, "equity"):
		if job.Salary == "" {
			job.Salary = field
		}
	case strings.Contains(low, "remote") || strings.Contains(low, "hybrid") || strings.Contains(low, "onsite") || strings.Contains(low, "on-site"):
		// Folded into the arrangement inference; keep the raw text too when
		// the location slot came up empty.
		if job.Location == "" {
			job.Location = field
		}
	case strings.Contains(low, "full-time") || strings.Contains(low, "part-time") || strings.Contains(low, "contract") || strings.Contains(low, "intern"):
		if job.EmploymentType == "" {
			job.EmploymentType = field
		}
	}
}

// guessCompany takes the leading capitalized run of a pipeless header,
// e.g. "Acme Robotics is hiring senior engineers" -> "Acme Robotics".
func guessCompany(header string) string {
	words := strings.Fields(header)
	var run []string
	for _, w := range words {
		if len(w) == 0 {
			continue
		}
		first := rune(w[0])
		if first >= 'A' && first <= 'Z' {
			run = append(run, w)
			if len(run) >= 4 {
				break
			}
			continue
		}
		break
	}
	return strings.Join(run, " ")
}
