package risk

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/deep_research/app/deep_research/pkg/llm"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/logger"
	dm "github.com/iWorld-y/deep_research/app/deep_research/pkg/model"
)

const systemPrompt = `You are an expert risk assessment analyst. Analyze the provided research data and perform a comprehensive risk assessment.

Evaluate risks across these categories:
🏗️ **Structural & Engineering Risks**
🌍 **Environmental & Natural Disaster Risks**
🚨 **Safety & Security Risks**
💰 **Financial & Economic Risks**
🏛️ **Regulatory & Legal Risks**
🚀 **Operational & Business Risks**

For each relevant risk category, provide:
- **Risk Level**: Critical/High/Medium/Low
- **Likelihood**: Probability of occurrence
- **Impact**: Potential consequences
- **Evidence**: Supporting data from research
- **Key Concerns**: Specific issues identified

Format your response with clear headings and bullet points. Be specific and actionable based on the research data provided.`

const userTpl = `Please perform a comprehensive risk assessment for: %s

Based on this research data:
%s

Focus on: %s

Provide a detailed risk analysis.`

// AllCategories risk_categories 为空时的关注范围
const AllCategories = "all risk categories"

// Assessor 基于研究资料做一次性风险评估
type Assessor struct {
	cm  llm.Completer
	log logrus.FieldLogger
}

// NewAssessor 创建风险评估器
func NewAssessor(cm llm.Completer, log logrus.FieldLogger) *Assessor {
	return &Assessor{cm: cm, log: logger.OrDiscard(log)}
}

// Prompt 构造用户提示词
func Prompt(req dm.RiskAssessmentRequest) string {
	focus := req.RiskCategories
	if focus == "" {
		focus = AllCategories
	}
	return fmt.Sprintf(userTpl, req.Location, req.ResearchData, focus)
}

// Assess 失败时返回固定格式的错误文本，不返回 error
func (a *Assessor) Assess(ctx context.Context, req dm.RiskAssessmentRequest) dm.Outcome[string] {
	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(Prompt(req)),
	}
	resp, err := a.cm.Generate(ctx, messages)
	if err != nil {
		a.log.Errorf("风险评估失败 [%s]: %v", req.Location, err)
		llm.RecordDegraded("risk")
		return dm.Degraded(fmt.Sprintf("❌ Error during risk assessment: %s\nPlease check your Azure OpenAI configuration.", err), err)
	}
	return dm.Ok(strings.TrimSpace(resp.Content))
}
