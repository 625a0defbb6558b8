// Candidate profile. The original pipeline passed a loosely-typed mapping
// around and defaulted every read; here the profile is parsed into a typed
// struct once at the entry boundary and defaults are applied in one place.
package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StaffingPreference values.
const (
	StaffingBoost    = "boost"
	StaffingNeutral  = "neutral"
	StaffingPenalize = "penalize"
)

// Default scoring weights, used when the profile omits scoring_weights.
// The six values sum to 1.0.
var DefaultWeights = map[string]float64{
	"skill_match":         0.25,
	"title_relevance":     0.15,
	"seniority":           0.15,
	"location":            0.15,
	"domain":              0.10,
	"response_likelihood": 0.20,
}

type Profile struct {
	TargetTitles    []string `yaml:"target_titles"`
	CoreSkills      []string `yaml:"core_skills"`
	SecondarySkills []string `yaml:"secondary_skills"`

	// Level is the candidate's seniority: junior/mid/senior/staff/principal.
	Level           string `yaml:"level"`
	YearsExperience int    `yaml:"years_experience"`

	// TargetMarket is the metro area the candidate would commute in,
	// e.g. "Austin, TX". Also used as the search location.
	TargetMarket string `yaml:"target_market"`
	Arrangement  string `yaml:"arrangement"` // remote/hybrid/onsite
	OnsiteOK     bool   `yaml:"onsite_ok"`

	DomainExpertise []string `yaml:"domain_expertise"`
	Dealbreakers    []string `yaml:"dealbreakers"`

	CompFloor          float64 `yaml:"comp_floor"`
	StaffingPreference string  `yaml:"staffing_preference"`

	ScoringWeights map[string]float64 `yaml:"scoring_weights"`

	// Workers bounds the fetch pool per phase.
	Workers int `yaml:"workers"`
}

// Load reads a profile from a YAML file and applies defaults.
func Load(path string) (Profile, error) {
	var p Profile
	b, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("profile parse %s: %w", path, err)
	}
	p.ApplyDefaults()
	return p, nil
}

// ApplyDefaults fills zero values with documented defaults. Safe to call
// on a zero Profile; an empty profile stays valid (it just matches little).
func (p *Profile) ApplyDefaults() {
	if p.StaffingPreference == "" {
		p.StaffingPreference = StaffingNeutral
	}
	if p.Workers <= 0 {
		p.Workers = 6
	}
	if len(p.ScoringWeights) == 0 {
		p.ScoringWeights = DefaultWeights
	}
}

// Weight returns the configured weight for a scoring component, falling
// back to the fixed default set. Weights are trusted to already sum
// to ~1.0; nothing here renormalizes.
func (p Profile) Weight(component string) float64 {
	if w, ok := p.ScoringWeights[component]; ok {
		return w
	}
	return DefaultWeights[component]
}
