package weworkremotely

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/httpx"
	"jobradar-engine/internal/source"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// WeWorkRemotely search results are li rows inside section.jobs, each with
// span.title, span.company and span.region children and an anchor to the
// posting. Everything on the board is remote by definition.

const searchURL = "https://weworkremotely.com/remote-jobs/search"

type Scraper struct {
	getter httpx.Getter
	logger *zap.Logger
}

func New(getter httpx.Getter, logger *zap.Logger) *Scraper {
	return &Scraper{getter: getter, logger: logger.Named("weworkremotely")}
}

func (s *Scraper) Name() string        { return source.WeWorkRemotely }
func (s *Scraper) DisplayName() string { return "WeWorkRemotely" }
func (s *Scraper) Kind() source.Kind   { return source.KindScraper }

func (s *Scraper) Fetch(ctx context.Context, q source.Query) ([]domain.JobResult, error) {
	v := url.Values{}
	v.Set("term", q.Text)

	body, err := s.getter.Get(ctx, searchURL+"?"+v.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("weworkremotely get: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("weworkremotely parse html: %w", err)
	}

	var jobs []domain.JobResult
	seen := map[string]bool{}

	doc.Find("section.jobs li").Each(func(_ int, li *goquery.Selection) {
		a := li.Find("a[href^='/remote-jobs/'], a[href^='/listings/']").First()
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		abs := "https://weworkremotely.com" + href
		if seen[abs] {
			return
		}
		seen[abs] = true

		title := source.CleanText(li.Find("span.title").First().Text())
		company := source.CleanText(li.Find("span.company").First().Text())
		region := source.NormalizeLocation(li.Find("span.region, span.region.company").First().Text())

		confidence := domain.ConfidenceHigh
		if title == "" || company == "" {
			// Row layout drifted; salvage what the anchor text gives us.
			text := source.CleanText(a.Text())
			if title == "" {
				title = text
			}
			if title == "" {
				title = "Unknown Title"
			}
			if company == "" {
				company = "Unknown Company"
			}
			confidence = domain.ConfidenceLow
		}
		if region == "" {
			region = "Remote"
		}

		jobs = append(jobs, domain.JobResult{
			Title:           title,
			Company:         company,
			Location:        region,
			Arrangement:     domain.ArrangementRemote,
			URL:             abs,
			Source:          "WeWorkRemotely",
			ParseConfidence: confidence,
		})
	})

	s.logger.Debug("parsed rows", zap.String("term", q.Text), zap.Int("jobs", len(jobs)))
	return jobs, nil
}
