package feed

import (
	"strings"
	"time"
)

type Category string

const (
	CategoryResearch   Category = "Research"
	CategoryTechnology Category = "Technology"
	CategoryIndustry   Category = "Industry"
	CategoryBusiness   Category = "Business"
)

var categories = []Category{CategoryResearch, CategoryTechnology, CategoryIndustry, CategoryBusiness}

func Categories() []Category {
	return append([]Category(nil), categories...)
}

// ParseCategory matches a label against the known categories, ignoring case.
func ParseCategory(label string) (Category, bool) {
	for _, c := range categories {
		if strings.EqualFold(string(c), strings.TrimSpace(label)) {
			return c, true
		}
	}
	return "", false
}

// Source configuration types

type Source struct {
	Key            string   `yaml:"key" json:"key"`
	URL            string   `yaml:"url" json:"url"`
	Category       Category `yaml:"category" json:"category"`
	Name           string   `yaml:"name" json:"name"`
	Industry       bool     `yaml:"industry" json:"industry,omitempty"`
	Research       bool     `yaml:"research" json:"research,omitempty"`
	ExtractContent bool     `yaml:"extract_content" json:"extract_content,omitempty"`
}

// Feed processing types

// Entry is a single parsed feed entry before normalization.
type Entry struct {
	Title       string
	Link        string
	Description string
	Content     string
	PublishedAt *time.Time
	UpdatedAt   *time.Time
}

func (e Entry) IsEmpty() bool {
	return strings.TrimSpace(e.Title) == "" &&
		strings.TrimSpace(e.Link) == "" &&
		strings.TrimSpace(e.Description) == "" &&
		strings.TrimSpace(e.Content) == ""
}

// Item is the normalized news card handed to callers.
type Item struct {
	Title         string   `json:"title"`
	Summary       string   `json:"summary"`
	Source        string   `json:"source"`
	PublishedDate string   `json:"published_date"`
	Category      Category `json:"category"`
	ImpactScore   int      `json:"impact_score"`
	Tags          []string `json:"tags"`
	URL           string   `json:"url"`
}

const (
	DateLayout = "2006-01-02"

	NoTitle     = "No Title Available"
	NoSummary   = "Summary not available"
	NoURL       = "#"
	MaxSummary  = 300
	MaxTags     = 5
	MinImpact   = 1
	MaxImpact   = 5
	BaseImpact  = 3.0
	summaryTail = "..."
)
