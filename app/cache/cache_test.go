package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aperam/ai-hub/app/feed"
)

func TestGenerateKey(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		labels    []string
		limit     int
		expected  string
	}{
		{"no filter", "breaking", nil, 10, "breaking:all:10"},
		{"all sentinel", "breaking", []string{"All"}, 10, "breaking:all:10"},
		{"blank labels", "research", []string{"", " "}, 8, "research:all:8"},
		{"single label folded", "breaking", []string{"Research"}, 10, "breaking:research:10"},
		{"label escaped", "breaking", []string{"AI & ML,Ops"}, 10, "breaking:ai+%26+ml%2Cops:10"},
		{"sorted and deduplicated", "industry", []string{"research", "Industry", "RESEARCH"}, 8, "industry:industry,research:8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateKey(tt.operation, tt.labels, tt.limit))
		})
	}
}

func TestGenerateKey_Distinguishes(t *testing.T) {
	assert.NotEqual(t, GenerateKey("breaking", nil, 10), GenerateKey("breaking", nil, 5))
	assert.NotEqual(t, GenerateKey("breaking", nil, 10), GenerateKey("research", nil, 10))
	assert.NotEqual(t, GenerateKey("breaking", []string{"Research"}, 10), GenerateKey("breaking", nil, 10))
	assert.NotEqual(t,
		GenerateKey("breaking", []string{"Research,Tech"}, 10),
		GenerateKey("breaking", []string{"Research", "Tech"}, 10))
	assert.NotEqual(t,
		GenerateKey("breaking", []string{"a:b"}, 10),
		GenerateKey("breaking:a", []string{"b"}, 10))
}

func TestCloneItems(t *testing.T) {
	original := []feed.Item{{Title: "a", Tags: []string{"AI"}}}

	cloned := cloneItems(original)
	cloned[0].Tags[0] = "changed"
	cloned[0].Title = "b"

	assert.Equal(t, "AI", original[0].Tags[0])
	assert.Equal(t, "a", original[0].Title)
	assert.Nil(t, cloneItems(nil))
}
