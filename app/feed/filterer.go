package feed

import (
	"strings"

	"github.com/samber/lo"
)

// AllCategories is the filter label that disables category filtering.
const AllCategories = "All"

// MinFilteredResults is the smallest filtered result worth returning. Below it
// the caller may fall back to the unfiltered list.
const MinFilteredResults = 3

type Filterer struct {
	labels []string
}

// NewFilterer builds a category filter. Blank labels are ignored; no labels or
// an "All" label match every item.
func NewFilterer(labels []string) *Filterer {
	cleaned := lo.FilterMap(labels, func(label string, _ int) (string, bool) {
		label = strings.TrimSpace(label)
		return label, label != ""
	})

	if len(cleaned) == 0 || lo.ContainsBy(cleaned, IsAllFilter) {
		return &Filterer{}
	}

	return &Filterer{labels: cleaned}
}

// IsAllFilter reports whether label is the "All" sentinel, ignoring case.
func IsAllFilter(label string) bool {
	return strings.EqualFold(strings.TrimSpace(label), AllCategories)
}

// Active reports whether the filter narrows results at all.
func (f *Filterer) Active() bool {
	return len(f.labels) > 0
}

func (f *Filterer) Labels() []string {
	return append([]string(nil), f.labels...)
}

// Match reports whether the item's category contains any label, ignoring case.
func (f *Filterer) Match(item Item) bool {
	if !f.Active() {
		return true
	}
	return lo.ContainsBy(f.labels, func(label string) bool {
		return ContainsFold(string(item.Category), label)
	})
}

// Run keeps the items that match, preserving order.
func (f *Filterer) Run(items []Item) []Item {
	if !f.Active() {
		return items
	}
	return lo.Filter(items, func(item Item, _ int) bool {
		return f.Match(item)
	})
}
