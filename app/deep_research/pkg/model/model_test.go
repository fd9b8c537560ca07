package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewResearchQueryClamps(t *testing.T) {
	tests := []struct {
		breadth, depth         int
		wantBreadth, wantDepth int
	}{
		{breadth: 3, depth: 2, wantBreadth: 3, wantDepth: 2},
		{breadth: 15, depth: 9, wantBreadth: 10, wantDepth: 5},
		{breadth: 0, depth: 0, wantBreadth: 1, wantDepth: 1},
		{breadth: -4, depth: -1, wantBreadth: 1, wantDepth: 1},
		{breadth: 10, depth: 5, wantBreadth: 10, wantDepth: 5},
	}
	for _, tt := range tests {
		q := NewResearchQuery("X", tt.breadth, tt.depth)
		assert.Equal(t, tt.wantBreadth, q.Breadth, "breadth %d", tt.breadth)
		assert.Equal(t, tt.wantDepth, q.Depth, "depth %d", tt.depth)
		assert.Equal(t, "X", q.Text)
	}
}

func TestFindingBlockLines(t *testing.T) {
	ok := FindingBlock{Header: "h", Body: "b"}
	assert.Equal(t, []string{"h", "b"}, ok.Lines())

	failed := FindingBlock{Header: "h", Body: "b", Hint: "retry"}
	assert.Equal(t, []string{"h", "b", "retry"}, failed.Lines())
}

func TestOutcome(t *testing.T) {
	assert.False(t, Ok("v").IsDegraded())

	d := Degraded("placeholder", errors.New("boom"))
	assert.True(t, d.IsDegraded())
	assert.Equal(t, "placeholder", d.Value)
	assert.EqualError(t, d.Cause, "boom")
}

func TestResearchResultAspectsKeepsDuplicates(t *testing.T) {
	r := ResearchResult{Sections: []AspectFindings{{Aspect: "A"}, {Aspect: "B"}, {Aspect: "A"}}}
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"A", "B", "A"}, r.Aspects())
}
