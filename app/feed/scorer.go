package feed

import (
	"math"

	"github.com/samber/lo"
)

var (
	highImpactKeywords = []string{"breakthrough", "revolutionary", "unprecedented", "major", "significant"}
	technologyKeywords = []string{"gpt", "claude", "gemini", "chatgpt", "ai model", "agentic"}
	industryKeywords   = []string{"manufacturing", "steel", "industrial", "enterprise"}
	credibleSources    = []string{"MIT Technology Review", "The Verge AI", "Wired AI", "Anthropic", "OpenAI", "Gemini", "Google"}
)

// scoreRule adds boost at most once when match holds.
type scoreRule struct {
	name  string
	boost float64
	match func(text, source string) bool
}

var scoreRules = []scoreRule{
	{"high_impact", 1.0, keywordRule(highImpactKeywords)},
	{"technology", 0.5, keywordRule(technologyKeywords)},
	{"credible_source", 0.5, func(_, source string) bool { return lo.Contains(credibleSources, source) }},
	{"industry", 0.5, keywordRule(industryKeywords)},
}

func keywordRule(keywords []string) func(text, source string) bool {
	return func(text, _ string) bool {
		return containsAny(text, keywords)
	}
}

type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

// Run returns the impact score of an entry, floored and clamped to [MinImpact, MaxImpact].
func (s *Scorer) Run(title, summary, source string) int {
	text := scanText(title, summary)

	score := BaseImpact
	for _, rule := range scoreRules {
		if rule.match(text, source) {
			score += rule.boost
		}
	}

	return ClampImpact(int(math.Floor(score)))
}

func ClampImpact(score int) int {
	return min(MaxImpact, max(MinImpact, score))
}
