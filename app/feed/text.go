package feed

import (
	"strings"

	"golang.org/x/text/cases"
)

// fold case-folds s for case-insensitive matching. A Caser is stateful, so a
// fresh one is used per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// ContainsFold reports whether s contains substr, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(fold(s), fold(substr))
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func scanText(title, summary string) string {
	return fold(title + " " + summary)
}
