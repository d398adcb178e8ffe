package feed

import (
	"strings"

	"github.com/samber/lo"
)

type keywordTag struct {
	keyword string
	tag     string
}

// Evaluated in order; the first MaxTags distinct matches win.
var tagRules = []keywordTag{
	{"machine learning", "Machine Learning"},
	{"deep learning", "Deep Learning"},
	{"neural network", "Neural Networks"},
	{"artificial intelligence", "AI"},
	{"natural language", "NLP"},
	{"computer vision", "Computer Vision"},
	{"robotics", "Robotics"},
	{"automation", "Automation"},
	{"chatgpt", "ChatGPT"},
	{"gpt", "GPT"},
	{"claude", "Claude"},
	{"gemini", "Gemini"},
	{"bert", "BERT"},
	{"transformer", "Transformers"},
	{"generative", "Generative AI"},
	{"llm", "LLM"},
	{"openai", "OpenAI"},
	{"anthropic", "Anthropic"},
	{"google", "Google"},
	{"microsoft", "Microsoft"},
	{"meta", "Meta"},
	{"manufacturing", "Manufacturing"},
	{"steel", "Steel Industry"},
	{"supply chain", "Supply Chain"},
	{"predictive", "Predictive Analytics"},
	{"agentic", "Agentic AI"},
	{"mcp", "MCP"},
}

type Tagger struct{}

func NewTagger() *Tagger {
	return &Tagger{}
}

func (t *Tagger) Run(title, summary string) []string {
	text := scanText(title, summary)

	matched := lo.FilterMap(tagRules, func(rule keywordTag, _ int) (string, bool) {
		return rule.tag, strings.Contains(text, rule.keyword)
	})

	tags := lo.Uniq(matched)
	if len(tags) > MaxTags {
		tags = tags[:MaxTags]
	}
	return tags
}
