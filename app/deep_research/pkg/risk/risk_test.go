package risk

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/deep_research/app/deep_research/pkg/llm/llmtest"
	dm "github.com/iWorld-y/deep_research/app/deep_research/pkg/model"
)

func TestPromptDefaultsFocus(t *testing.T) {
	got := Prompt(dm.RiskAssessmentRequest{ResearchData: "D"})
	assert.Equal(t, "Please perform a comprehensive risk assessment for: \n\nBased on this research data:\nD\n\nFocus on: all risk categories\n\nProvide a detailed risk analysis.", got)
}

func TestPromptWithCategories(t *testing.T) {
	got := Prompt(dm.RiskAssessmentRequest{ResearchData: "D", Location: "Pier 39", RiskCategories: "flood"})
	assert.Contains(t, got, "risk assessment for: Pier 39\n")
	assert.Contains(t, got, "Focus on: flood\n")
}

func TestAssessSuccess(t *testing.T) {
	fake := llmtest.Reply("\n  High flood risk.  \n")
	out := NewAssessor(fake, nil).Assess(context.Background(), dm.RiskAssessmentRequest{ResearchData: "D"})

	require.False(t, out.IsDegraded())
	assert.Equal(t, "High flood risk.", out.Value)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	for _, c := range []string{"Structural & Engineering", "Environmental & Natural Disaster", "Safety & Security",
		"Financial & Economic", "Regulatory & Legal", "Operational & Business"} {
		assert.Contains(t, calls[0].System(), c)
	}
}

func TestAssessFailure(t *testing.T) {
	out := NewAssessor(llmtest.Fail(errors.New("401")), nil).Assess(context.Background(), dm.RiskAssessmentRequest{ResearchData: "D"})

	assert.True(t, out.IsDegraded())
	assert.Equal(t, "❌ Error during risk assessment: 401\nPlease check your Azure OpenAI configuration.", out.Value)
}
