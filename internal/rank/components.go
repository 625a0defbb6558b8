package rank

import (
	"regexp"
	"strconv"
	"strings"

	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/source"
)

// scoreTitle: exact match 5.0, containment either way 4.5, else the best
// significant-word overlap across target titles.
func (s Scorer) scoreTitle(job domain.JobResult) Component {
	targets := s.Profile.TargetTitles
	if len(targets) == 0 {
		return Component{Score: 3.0, Detail: "no target titles configured"}
	}

	jobTitle := strings.ToLower(strings.TrimSpace(job.Title))
	best := 1.5
	bestDetail := "no overlap"

	for _, target := range targets {
		t := strings.ToLower(strings.TrimSpace(target))
		if t == "" {
			continue
		}
		switch {
		case t == jobTitle:
			return Component{Score: 5.0, Detail: "exact title match"}
		case strings.Contains(jobTitle, t) || strings.Contains(t, jobTitle):
			if best < 4.5 {
				best = 4.5
				bestDetail = "title containment"
			}
		default:
			score, ratio := wordOverlapScore(t, jobTitle)
			if score > best {
				best = score
				bestDetail = detailf("%.0f%% word overlap", ratio*100)
			}
		}
	}

	return Component{Score: best, Detail: bestDetail}
}

// wordOverlapScore maps the overlap ratio of significant words (>= 3
// chars) onto the fixed ladder.
func wordOverlapScore(target, jobTitle string) (float64, float64) {
	var targetWords []string
	for _, w := range strings.Fields(target) {
		if len(w) >= 3 {
			targetWords = append(targetWords, w)
		}
	}
	if len(targetWords) == 0 {
		return 1.5, 0
	}

	hits := 0
	for _, w := range targetWords {
		if strings.Contains(jobTitle, w) {
			hits++
		}
	}
	ratio := float64(hits) / float64(len(targetWords))
	switch {
	case ratio >= 0.6:
		return 4.0, ratio
	case ratio >= 0.3:
		return 3.0, ratio
	case ratio > 0:
		return 2.0, ratio
	default:
		return 1.5, 0
	}
}

// Ordinal seniority scale.
var levelRanks = map[string]int{
	"intern": 1, "junior": 1, "jr": 1, "entry": 1,
	"mid": 2, "ii": 2,
	"senior": 3, "sr": 3,
	"lead": 4, "staff": 4, "principal": 4,
}

// Detection order matters: "senior staff engineer" should read as staff.
var levelKeywords = []struct {
	word string
	rank int
}{
	{"principal", 4},
	{"staff", 4},
	{"lead", 4},
	{"senior", 3},
	{"sr.", 3},
	{"sr ", 3},
	{"junior", 1},
	{"jr.", 1},
	{"jr ", 1},
	{"intern", 1},
	{"entry level", 1},
	{"entry-level", 1},
	{"mid-level", 2},
	{"mid level", 2},
	{" ii", 2},
}

var yearsRe = regexp.MustCompile(`(\d+)\s*\+?\s*years?`)

// scoreSeniority compares the job's level keywords against the
// candidate's on a 4-point ordinal scale, then adjusts for an explicit
// years-of-experience requirement in the description.
func (s Scorer) scoreSeniority(job domain.JobResult) Component {
	jobRank := 0
	title := strings.ToLower(job.Title)
	for _, kw := range levelKeywords {
		if strings.Contains(title, kw.word) {
			jobRank = kw.rank
			break
		}
	}

	var score float64
	var detail string
	if jobRank == 0 {
		// Unlabeled title: benefit of the doubt.
		score = 3.5
		detail = "job level unclear"
	} else {
		candRank, ok := levelRanks[strings.ToLower(strings.TrimSpace(s.Profile.Level))]
		if !ok {
			candRank = 2
		}
		dist := jobRank - candRank
		if dist < 0 {
			dist = -dist
		}
		switch dist {
		case 0:
			score = 5.0
			detail = "level match"
		case 1:
			score = 3.5
			detail = "one level off"
		default:
			score = 1.5
			detail = "level mismatch"
		}
	}

	// "N+ years" requirement adjustment.
	if s.Profile.YearsExperience > 0 {
		if m := yearsRe.FindStringSubmatch(strings.ToLower(job.Description)); m != nil {
			if required, err := strconv.Atoi(m[1]); err == nil && required > 0 && required < 40 {
				if s.Profile.YearsExperience >= required {
					score += 0.5
				} else {
					score -= 1.0
				}
				detail += detailf(", %d+ years required", required)
			}
		}
	}

	return Component{Score: clamp(score, 1.0, 5.0), Detail: detail}
}

// scoreLocation rates arrangement fit against the candidate's market.
func (s Scorer) scoreLocation(job domain.JobResult) Component {
	arrangement := job.Arrangement
	if arrangement == "" || arrangement == domain.ArrangementUnknown {
		arrangement = source.InferArrangement(job.Location, job.Title, job.Description)
	}

	market := strings.ToLower(strings.TrimSpace(s.Profile.TargetMarket))
	location := strings.ToLower(job.Location)
	inMarket := market != "" && marketOverlap(location, market)

	switch arrangement {
	case domain.ArrangementRemote:
		if strings.EqualFold(s.Profile.Arrangement, domain.ArrangementRemote) {
			return Component{Score: 5.0, Detail: "remote for remote candidate"}
		}
		return Component{Score: 4.0, Detail: "remote"}
	case domain.ArrangementHybrid:
		if inMarket {
			return Component{Score: 5.0, Detail: "hybrid in target area"}
		}
		return Component{Score: 2.5, Detail: "hybrid outside target area"}
	case domain.ArrangementOnsite:
		if inMarket {
			if s.Profile.OnsiteOK {
				return Component{Score: 4.0, Detail: "onsite in target area"}
			}
			return Component{Score: 2.0, Detail: "onsite in area, candidate prefers not"}
		}
		return Component{Score: 1.0, Detail: "onsite outside target area"}
	}

	// Unresolvable: lean on location-text hints.
	switch {
	case strings.Contains(location, "anywhere") || strings.Contains(location, "worldwide"):
		return Component{Score: 4.5, Detail: "location hints global"}
	case inMarket:
		return Component{Score: 4.0, Detail: "target area, arrangement unknown"}
	default:
		return Component{Score: 3.0, Detail: "arrangement unknown"}
	}
}

// marketOverlap: the market string, or its city part, appears in the
// location (or the other way around).
func marketOverlap(location, market string) bool {
	if location == "" {
		return false
	}
	if strings.Contains(location, market) || strings.Contains(market, location) {
		return true
	}
	if city, _, ok := strings.Cut(market, ","); ok {
		return strings.Contains(location, strings.TrimSpace(city))
	}
	return false
}

// scoreDomain: ratio of matched domain-expertise keywords mapped onto
// [3.0, 5.0]. Never punishes below neutral: missing domain fit is the
// absence of a bonus, not a defect.
func (s Scorer) scoreDomain(job domain.JobResult) Component {
	domains := s.Profile.DomainExpertise
	if len(domains) == 0 {
		return Component{Score: 3.0, Detail: "no domain expertise configured"}
	}

	text := job.SearchText()
	hits := 0
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" && strings.Contains(text, d) {
			hits++
		}
	}
	if hits == 0 {
		return Component{Score: 3.0, Detail: "no domain overlap"}
	}
	ratio := float64(hits) / float64(len(domains))
	return Component{
		Score:  3.0 + ratio*2.0,
		Detail: detailf("%d/%d domains matched", hits, len(domains)),
	}
}

var smallTeamRe = regexp.MustCompile(`(?i)startup|small team|founding|early[- ]stage|seed[- ]stage`)
var enterpriseRe = regexp.MustCompile(`(?i)fortune \d+|enterprise|global leader|multinational|\d{2,3},000\+? employees`)

// scoreResponse estimates the odds a human reads the application.
func (s Scorer) scoreResponse(job domain.JobResult) Component {
	score := 3.0
	var signals []string

	text := job.Description
	if job.ApplyInfo != "" || source.ExtractEmail(text) != "" {
		score += 1.0
		signals = append(signals, "direct contact")
	}
	if smallTeamRe.MatchString(text) {
		score += 0.5
		signals = append(signals, "small team")
	}
	// Source bonuses are hardcoded to these two boards; revisit when a
	// new source needs one.
	switch job.Source {
	case "RemoteOK":
		score += 0.3
		signals = append(signals, "board bonus")
	case "HN Hiring":
		score += 0.5
		signals = append(signals, "board bonus")
	}
	if enterpriseRe.MatchString(text) {
		score -= 0.5
		signals = append(signals, "enterprise scale")
	}

	score = clamp(score, 1.0, 5.0)

	bucket := "Low"
	switch {
	case score >= 4.0:
		bucket = "High"
	case score >= 2.5:
		bucket = "Medium"
	}
	detail := bucket
	if len(signals) > 0 {
		detail += ": " + strings.Join(signals, ", ")
	}
	return Component{Score: score, Detail: detail}
}
