package feed

import (
	"cmp"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	whitespaceRe = regexp.MustCompile(`[\s\p{Zs}]+`)
	ellipsisRe   = regexp.MustCompile(`\[(?:&hellip;|…)\]`)
	entityRe     = regexp.MustCompile(`&#?\w+;`)
	bracketsRe   = strings.NewReplacer("<", "", ">", "")
)

// Sanitizer turns feed descriptions into plain-text card summaries.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Run strips markup and reader artifacts, collapses whitespace and caps the
// result at MaxSummary characters. It never returns an empty string.
func (s *Sanitizer) Run(raw string) string {
	text := s.policy.Sanitize(raw)
	text = ellipsisRe.ReplaceAllString(text, "...")

	// bluemonday re-escapes text; feeds also double-escape entities.
	text = html.UnescapeString(text)
	text = entityRe.ReplaceAllString(text, "")
	text = bracketsRe.Replace(text)

	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	text = truncate(text, MaxSummary)

	return cmp.Or(text, NoSummary)
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-len(summaryTail)]) + summaryTail
}
