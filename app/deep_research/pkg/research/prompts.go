package research

import "fmt"

const outlineSystemTpl = `You are a research planning specialist. Generate %d specific research aspects for comprehensive analysis of: %s

Create focused research areas that are:
- Specific and actionable
- Comprehensive and covering different dimensions
- Relevant to the topic
- Suitable for detailed investigation

Format your response as a numbered list of research aspects, each on a new line.
Example format:
1. [Specific research aspect]
2. [Another specific research aspect]
etc.

Focus on practical, investigatable aspects that would provide valuable insights.`

const outlineUserTpl = "Generate %d specific research aspects for comprehensive analysis of: %s"

const aspectSystemTpl = `You are a specialized research analyst conducting iteration %d research on: %s

Provide a detailed, factual analysis focusing on:
- Current state and recent developments
- Key facts, statistics, and data points
- Important trends and patterns
- Challenges and opportunities
- Expert insights and analysis
- Future implications

Format your response as clear, actionable bullet points with specific details.
Be thorough, factual, and provide valuable insights that go beyond general statements.
Focus on concrete information and actionable intelligence.`

const aspectUserTpl = "Research and analyze: %s. Provide detailed findings for iteration %d."

const (
	// ErrorMarker 研究失败时替代模型输出的前缀
	ErrorMarker = "❌ Error occurred during research:"
	// RemediationHint 研究失败时附加的第三行
	RemediationHint = "Please check your Azure OpenAI configuration and try again."
)

var fallbackTemplates = [...]string{
	"Current state and overview of %s",
	"Recent developments and trends in %s",
	"Key challenges and opportunities in %s",
	"Future implications and predictions for %s",
	"Expert opinions and analysis on %s",
	"Technical aspects and specifications of %s",
	"Economic and market impact of %s",
	"Social and cultural effects of %s",
	"Regulatory and legal considerations for %s",
	"Comparative analysis and alternatives to %s",
}

// FallbackAspects 按固定优先级返回十个通用研究方向
func FallbackAspects(query string) []string {
	aspects := make([]string, len(fallbackTemplates))
	for i, tpl := range fallbackTemplates {
		aspects[i] = fmt.Sprintf(tpl, query)
	}
	return aspects
}

// IterationHeader 单轮结论的标题行
func IterationHeader(aspect string, iteration int) string {
	return fmt.Sprintf("Research iteration %d for %s:", iteration, aspect)
}
