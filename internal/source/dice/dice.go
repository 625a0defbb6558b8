package dice

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

// Dice serves a server-rendered search page. Each result is a card with a
// title link ([data-cy=card-title-link]), a company anchor and a location
// span; when the card layout changes we fall back to walking /job-detail/
// anchors and guessing the rest, at low confidence.

const searchURL = "https://www.dice.com/jobs"

type Scraper struct {
	getter httpx.Getter
	logger *zap.Logger
}

func New(getter httpx.Getter, logger *zap.Logger) *Scraper {
	return &Scraper{getter: getter, logger: logger.Named("dice")}
}

func (s *Scraper) Name() string        { return source.Dice }
func (s *Scraper) DisplayName() string { return "Dice" }
func (s *Scraper) Kind() source.Kind   { return source.KindScraper }

func (s *Scraper) Fetch(ctx context.Context, q source.Query) ([]domain.JobResult, error) {
	v := url.Values{}
	v.Set("q", q.Text)
	if q.Location != "" {
		v.Set("location", q.Location)
	}
	pageURL := searchURL + "?" + v.Encode()

	body, err := s.getter.Get(ctx, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dice get: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("dice parse html: %w", err)
	}

	jobs := s.parseCards(doc)
	if len(jobs) == 0 {
		jobs = s.parseAnchors(doc)
	}
	return jobs, nil
}

func (s *Scraper) parseCards(doc *goquery.Document) []domain.JobResult {
	var jobs []domain.JobResult

	doc.Find("[data-cy='search-card'], div.card.search-card").Each(func(_ int, card *goquery.Selection) {
		link := card.Find("a[data-cy='card-title-link']").First()
		title := source.CleanText(link.Text())
		href, _ := link.Attr("href")
		if title == "" || href == "" {
			return
		}
		if strings.HasPrefix(href, "/") {
			href = "https://www.dice.com" + href
		}

		company := source.CleanText(card.Find("[data-cy='search-result-company-name'], a.card-company").First().Text())
		location := source.NormalizeLocation(card.Find("[data-cy='search-result-location'], span.search-result-location").First().Text())
		posted := source.CleanText(card.Find("[data-cy='card-posted-date'], span.posted-date").First().Text())
		desc := source.CleanText(card.Find("[data-cy='card-summary'], div.card-description").First().Text())
		employment := source.CleanText(card.Find("[data-cy='search-result-employment-type']").First().Text())

		confidence := domain.ConfidenceHigh
		if company == "" {
			company = "Unknown Company"
			confidence = domain.ConfidenceLow
		}

		jobs = append(jobs, domain.JobResult{
			Title:           title,
			Company:         company,
			Location:        location,
			Arrangement:     source.InferArrangement(location, title, desc),
			DatePosted:      posted,
			Description:     desc,
			URL:             href,
			Source:          "Dice",
			EmploymentType:  employment,
			ParseConfidence: confidence,
		})
	})

	return jobs
}

// parseAnchors is the degraded path for layout drift: any /job-detail/
// anchor becomes a listing with whatever text it carries.
func (s *Scraper) parseAnchors(doc *goquery.Document) []domain.JobResult {
	var jobs []domain.JobResult
	seen := map[string]bool{}

	doc.Find("a[href*='/job-detail/']").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if strings.HasPrefix(href, "/") {
			href = "https://www.dice.com" + href
		}
		if seen[href] {
			return
		}
		seen[href] = true

		title := source.CleanText(a.Text())
		if title == "" || source.LooksLikeJunkTitle(title) {
			title = "Unknown Title"
		}

		jobs = append(jobs, domain.JobResult{
			Title:           title,
			Company:         "Unknown Company",
			URL:             href,
			Source:          "Dice",
			Arrangement:     domain.ArrangementUnknown,
			ParseConfidence: domain.ConfidenceLow,
		})
	})

	if len(jobs) > 0 {
		s.logger.Debug("card layout missing, fell back to anchor walk", zap.Int("jobs", len(jobs)))
	}
	return jobs
}
