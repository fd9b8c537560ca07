package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dm "github.com/iWorld-y/deep_research/app/deep_research/pkg/model"
)

var day = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func sampleResult() dm.ResearchResult {
	return dm.ResearchResult{Sections: []dm.AspectFindings{
		{Aspect: "A", Findings: []dm.FindingBlock{{Header: "Research iteration 1 for A:", Body: "alpha"}}},
		{Aspect: "B", Findings: []dm.FindingBlock{{
			Header: "Research iteration 1 for B:",
			Body:   "❌ Error occurred during research: boom",
			Hint:   "Please check your Azure OpenAI configuration and try again.",
		}}},
	}}
}

func TestRenderMetadata(t *testing.T) {
	out := Render(dm.NewResearchQuery("X", 2, 1), sampleResult(), day)

	assert.True(t, strings.HasPrefix(out, "# Deep Research Report: X\n\n"))
	assert.Contains(t, out, "**Research Date:** 2025-03-14  \n")
	assert.Contains(t, out, "**Research Scope:** 2 aspects explored with 1 iterations each  \n")
	assert.Contains(t, out, "**Total Research Points:** 2\n")
	assert.Contains(t, out, "- Findings synthesized from 2 research areas\n")
	assert.Contains(t, out, "- Report generated on 2025-03-14\n")
	assert.True(t, strings.HasSuffix(out, "*This report was generated using the Deep Research Plugin for comprehensive topic analysis.*\n"))
}

func TestRenderSectionOrder(t *testing.T) {
	out := Render(dm.NewResearchQuery("X", 2, 1), sampleResult(), day)

	want := "## Detailed Findings\n\n" +
		"### 1. A\n\n" +
		"Research iteration 1 for A:\n\nalpha\n\n---\n\n" +
		"### 2. B\n\n" +
		"Research iteration 1 for B:\n\n❌ Error occurred during research: boom\n\n" +
		"Please check your Azure OpenAI configuration and try again.\n\n---\n\n" +
		"## Sources and Methodology Notes\n\n"
	assert.Contains(t, out, want)

	order := []string{"## Executive Summary", "## Research Methodology", "## Detailed Findings", "## Sources and Methodology Notes"}
	last := -1
	for _, h := range order {
		idx := strings.Index(out, h)
		require.Greater(t, idx, last, h)
		last = idx
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	q := dm.NewResearchQuery("X", 2, 1)
	assert.Equal(t, Render(q, sampleResult(), day), Render(q, sampleResult(), day))
}

func TestRenderHTML(t *testing.T) {
	page, err := RenderHTML("Report <X>", Render(dm.NewResearchQuery("X", 2, 1), sampleResult(), day))
	require.NoError(t, err)

	html := string(page)
	assert.Contains(t, html, "<title>Report &lt;X&gt;</title>")
	assert.Contains(t, html, "<h1>Deep Research Report: X</h1>")
	assert.Contains(t, html, "<h3>1. A</h3>")
	assert.Contains(t, html, "<strong>Research Date:</strong>")
}
