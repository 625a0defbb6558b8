package rank

import (
	"regexp"
	"strings"
	"sync"

	"jobradar-engine/internal/domain"
)

// skillAliases lists spellings that count as the same technology. Keys and
// values are lowercase.
var skillAliases = map[string][]string{
	"node.js":    {"node.js", "nodejs", "node js", "node"},
	"nodejs":     {"node.js", "nodejs", "node js", "node"},
	"postgresql": {"postgresql", "postgres"},
	"postgres":   {"postgresql", "postgres"},
	"kubernetes": {"kubernetes", "k8s"},
	"k8s":        {"kubernetes", "k8s"},
	"javascript": {"javascript", "js"},
	"typescript": {"typescript", "ts"},
	"golang":     {"golang", "go"},
	"go":         {"golang", "go"},
	"c#":         {"c#", "csharp", ".net"},
	"ci/cd":      {"ci/cd", "ci", "cd", "continuous integration"},
	"aws":        {"aws", "amazon web services"},
	"gcp":        {"gcp", "google cloud"},

	"machine learning":    {"machine learning", "ml"},
	"amazon web services": {"amazon web services", "aws"},
}

var (
	boundaryMu    sync.Mutex
	boundaryCache = map[string]*regexp.Regexp{}
)

// matchesSkillToken reports whether token occurs in text. Plain-word
// tokens match on word boundaries; ambiguous short tokens ("go", "r",
// "ci") must, to avoid false positives inside other words. Symbol-bearing
// tokens ("c#", "c++") can't use \b, so they match as plain substrings;
// the symbols make them unambiguous anyway.
func matchesSkillToken(text, token string) bool {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return false
	}
	if !isAlnumOnly(token) {
		return strings.Contains(text, token)
	}

	boundaryMu.Lock()
	re, ok := boundaryCache[token]
	if !ok {
		re = regexp.MustCompile(`\b` + regexp.QuoteMeta(token) + `\b`)
		boundaryCache[token] = re
	}
	boundaryMu.Unlock()

	return re.MatchString(text)
}

func isAlnumOnly(s string) bool {
	for _, r := range s {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' '
		if !alnum {
			return false
		}
	}
	return true
}

// matchesSkill tries a skill and all of its aliases.
func matchesSkill(text, skill string) bool {
	skill = strings.ToLower(strings.TrimSpace(skill))
	variants, ok := skillAliases[skill]
	if !ok {
		variants = []string{skill}
	}
	for _, v := range variants {
		if matchesSkillToken(text, v) {
			return true
		}
	}
	return false
}

// scoreSkills: (matched core + 0.5 * matched secondary) / total core,
// mapped linearly onto [1.0, 5.0].
func (s Scorer) scoreSkills(job domain.JobResult) Component {
	core := s.Profile.CoreSkills
	if len(core) == 0 {
		return Component{Score: 3.0, Detail: "no core skills configured"}
	}

	text := job.SearchText()

	coreHits := 0
	for _, skill := range core {
		if matchesSkill(text, skill) {
			coreHits++
		}
	}
	secondaryHits := 0
	for _, skill := range s.Profile.SecondarySkills {
		if matchesSkill(text, skill) {
			secondaryHits++
		}
	}

	ratio := (float64(coreHits) + 0.5*float64(secondaryHits)) / float64(len(core))
	score := clamp(1.0+ratio*4.0, 1.0, 5.0)
	return Component{
		Score:  score,
		Detail: detailf("%d/%d core, %d secondary", coreHits, len(core), secondaryHits),
	}
}
