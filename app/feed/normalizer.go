package feed

import (
	"cmp"
	"errors"
	"log/slog"
	"strings"
	"time"
)

var errEmptyEntry = errors.New("entry has no title, link, description or content")

// Normalizer converts parsed entries into Items.
type Normalizer struct {
	sanitizer *Sanitizer
	extractor *ContentExtractor
	tagger    *Tagger
	scorer    *Scorer
	now       func() time.Time
}

// NewNormalizer creates a normalizer; now supplies the ingestion time used
// for undated entries and defaults to time.Now.
func NewNormalizer(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{
		sanitizer: NewSanitizer(),
		extractor: NewContentExtractor(),
		tagger:    NewTagger(),
		scorer:    NewScorer(),
		now:       now,
	}
}

func (n *Normalizer) Run(entry Entry, source Source) (Item, error) {
	if entry.IsEmpty() {
		return Item{}, &EntryNormalizationError{Source: source.Key, Err: errEmptyEntry}
	}

	title := cmp.Or(strings.TrimSpace(entry.Title), NoTitle)
	summary := n.summary(entry)

	return Item{
		Title:         title,
		Summary:       summary,
		Source:        source.Name,
		PublishedDate: n.publishedDate(entry),
		Category:      source.Category,
		ImpactScore:   n.scorer.Run(title, summary, source.Name),
		Tags:          n.tagger.Run(title, summary),
		URL:           cmp.Or(strings.TrimSpace(entry.Link), NoURL),
	}, nil
}

// date formats a feed timestamp, falling back to the ingestion time.
func (n *Normalizer) date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return n.now().Format(DateLayout)
	}
	return t.UTC().Format(DateLayout)
}

func (n *Normalizer) summary(entry Entry) string {
	if strings.TrimSpace(entry.Description) != "" {
		return n.sanitizer.Run(entry.Description)
	}

	if strings.TrimSpace(entry.Content) == "" {
		return NoSummary
	}

	text, err := n.extractor.Run([]byte(entry.Content), nil)
	if err != nil {
		slog.Debug("Readable text extraction failed, stripping content", "link", entry.Link, "error", err)
		return n.sanitizer.Run(entry.Content)
	}

	return n.sanitizer.Run(text)
}

func (n *Normalizer) publishedDate(entry Entry) string {
	switch {
	case entry.PublishedAt != nil && !entry.PublishedAt.IsZero():
		return n.date(entry.PublishedAt)
	case entry.UpdatedAt != nil && !entry.UpdatedAt.IsZero():
		return n.date(entry.UpdatedAt)
	default:
		return n.date(nil)
	}
}
