package source

import (
	"regexp"
	"strings"

	"jobradar-engine/internal/domain"
)

func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

func NormalizeLocation(loc string) string {
	loc = CleanText(loc)
	if loc == "" {
		return ""
	}

	loc = strings.TrimPrefix(loc, "Location:")
	loc = strings.TrimPrefix(loc, "LOCATIONS:")
	loc = strings.TrimSpace(loc)

	parts := strings.Split(loc, ",")
	seen := map[string]bool{}
	var out []string
	for _, p := range parts {
		p = CleanText(p)
		if p == "" {
			continue
		}
		k := strings.ToLower(p)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return strings.Join(out, ", ")
}

// InferArrangement guesses remote/hybrid/onsite from free text.
func InferArrangement(location, title, desc string) string {
	blob := strings.ToLower(strings.Join([]string{location, title, desc}, " "))

	switch {
	case strings.Contains(blob, "remote"):
		return domain.ArrangementRemote
	case strings.Contains(blob, "hybrid"):
		return domain.ArrangementHybrid
	case strings.Contains(blob, "on-site") || strings.Contains(blob, "onsite") || strings.Contains(blob, "on site"):
		return domain.ArrangementOnsite
	default:
		return domain.ArrangementUnknown
	}
}

var (
	emailRe  = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	salaryRe = regexp.MustCompile(`(?i)\$\s?\d[\d,]*(?:\.\d+)?\s?[kK]?(?:\s?[-–]\s?\$?\s?\d[\d,]*(?:\.\d+)?\s?[kK]?)?(?:\s?/\s?(?:hr|hour|yr|year))?`)
)

// ExtractEmail pulls the first email address out of free text, if any.
func ExtractEmail(s string) string {
	return emailRe.FindString(s)
}

// ExtractSalary pulls the first $-amount or range out of free text.
func ExtractSalary(s string) string {
	return CleanText(salaryRe.FindString(s))
}

func LooksLikeJunkTitle(t string) bool {
	l := strings.ToLower(t)
	return strings.Contains(l, "view") || strings.Contains(l, "apply")
}
