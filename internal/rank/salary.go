package rank

import (
	"regexp"
	"strconv"
	"strings"
)

var salaryNumRe = regexp.MustCompile(`(\d[\d,]*(?:\.\d+)?)\s*([kK])?`)

// ParseSalaryNumber extracts an annual USD figure from a salary display
// string. Supported shapes: "$120k" (thousands), "$60/hr" (annualized at
// 2080 hours), and bare numbers (below 500 read as hourly, below 1000 as
// thousands, otherwise literal). Returns nil when no number is present;
// callers treat that as "no penalty", not an error.
func ParseSalaryNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	m := salaryNumRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}

	raw := strings.ReplaceAll(m[1], ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return nil
	}

	low := strings.ToLower(s)
	hourly := strings.Contains(low, "/hr") || strings.Contains(low, "/hour") ||
		strings.Contains(low, "per hour") || strings.Contains(low, "an hour")

	switch {
	case m[2] != "":
		v *= 1000
	case hourly:
		v *= 2080
	case v < 500:
		// Small bare number: almost certainly an hourly rate.
		v *= 2080
	case v < 1000:
		// Mid bare number: thousands shorthand ("base 150-180").
		v *= 1000
	}

	return &v
}
