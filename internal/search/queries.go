package search

import (
	"strings"

	"jobradar-engine/internal/profile"
	"jobradar-engine/internal/source"
)

// skillSlugs maps profile skill names to hnhiring technology slugs.
// Skills without an entry get no HN query.
var skillSlugs = map[string]string{
	"python":     "python",
	"go":         "go",
	"golang":     "go",
	"rust":       "rust",
	"java":       "java",
	"kotlin":     "kotlin",
	"swift":      "swift",
	"ruby":       "ruby",
	"php":        "php",
	"c#":         "csharp",
	"c++":        "cpp",
	"javascript": "javascript",
	"typescript": "typescript",
	"react":      "react",
	"vue":        "vuejs",
	"angular":    "angular",
	"node":       "nodejs",
	"node.js":    "nodejs",
	"nodejs":     "nodejs",
	"django":     "django",
	"flask":      "flask",
	"fastapi":    "fastapi",
	"rails":      "rails",
	"postgres":   "postgresql",
	"postgresql": "postgresql",
	"mysql":      "mysql",
	"mongodb":    "mongodb",
	"redis":      "redis",
	"kafka":      "kafka",
	"aws":        "aws",
	"gcp":        "gcp",
	"azure":      "azure",
	"kubernetes": "kubernetes",
	"k8s":        "kubernetes",
	"docker":     "docker",
	"terraform":  "terraform",
	"ansible":    "ansible",
	"elixir":     "elixir",
	"scala":      "scala",
	"graphql":    "graphql",
	"ios":        "ios",
	"android":    "android",
	"ml":         "machine-learning",
	"devops":     "devops",
	"sre":        "devops",

	"machine learning": "machine-learning",
}

// BuildQueries turns a candidate profile into the per-source query list.
// An empty profile yields an empty list. Order is readable, not load-
// bearing: the orchestrator partitions by source before dispatch.
func BuildQueries(p profile.Profile) []source.Query {
	var queries []source.Query

	titles := p.TargetTitles
	for i, title := range titles {
		if i >= 4 {
			break
		}
		queries = append(queries,
			source.Query{Source: source.Dice, Text: title, Location: p.TargetMarket},
			source.Query{Source: source.Adzuna, Text: title, Location: p.TargetMarket},
		)
	}

	// One HN Hiring query per unique known technology slug.
	skills := append(append([]string{}, p.CoreSkills...), firstN(p.SecondarySkills, 5)...)
	seenSlugs := map[string]bool{}
	for _, skill := range skills {
		slug, ok := skillSlugs[strings.ToLower(strings.TrimSpace(skill))]
		if !ok || seenSlugs[slug] {
			continue
		}
		seenSlugs[slug] = true
		queries = append(queries, source.Query{Source: source.HNHiring, Text: slug})
	}

	for i, title := range titles {
		if i >= 2 {
			break
		}
		queries = append(queries,
			source.Query{Source: source.RemoteOK, Text: title},
			source.Query{Source: source.WeWorkRemotely, Text: title},
			source.Query{Source: source.AuthenticJobs, Text: title, Location: p.TargetMarket},
			source.Query{Source: source.JSearch, Text: title, Location: p.TargetMarket},
		)
	}

	if len(titles) > 0 && p.TargetMarket != "" {
		queries = append(queries, source.Query{Source: source.USAJobs, Text: titles[0], Location: p.TargetMarket})
	}

	return queries
}

func firstN(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
