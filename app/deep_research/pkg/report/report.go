package report

import (
	"fmt"
	"strings"
	"time"

	dm "github.com/iWorld-y/deep_research/app/deep_research/pkg/model"
)

const dateLayout = "2006-01-02"

// Render 将研究结果组装为 Markdown 报告。相同输入总是得到相同输出
func Render(q dm.ResearchQuery, r dm.ResearchResult, date time.Time) string {
	day := date.Format(dateLayout)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Deep Research Report: %s\n\n", q.Text)
	fmt.Fprintf(&sb, "**Research Date:** %s  \n", day)
	fmt.Fprintf(&sb, "**Research Scope:** %d aspects explored with %d iterations each  \n", q.Breadth, q.Depth)
	fmt.Fprintf(&sb, "**Total Research Points:** %d\n\n", r.Len()*q.Depth)

	sb.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&sb, "This comprehensive research report presents findings from a multi-dimensional analysis of **%s**. "+
		"The research was conducted across %d key aspects with %d iterations of investigation for each area, "+
		"providing a thorough understanding of the topic.\n\n", q.Text, q.Breadth, q.Depth)

	sb.WriteString("## Research Methodology\n\n")
	fmt.Fprintf(&sb, "- **Breadth:** %d key aspects identified and investigated\n", q.Breadth)
	fmt.Fprintf(&sb, "- **Depth:** %d research iterations per aspect\n", q.Depth)
	sb.WriteString("- **Approach:** Systematic multi-level analysis with iterative refinement\n")
	sb.WriteString("- **Coverage:** Comprehensive examination of current state, trends, challenges, and future implications\n\n")

	sb.WriteString("## Detailed Findings\n\n")
	for i, section := range r.Sections {
		fmt.Fprintf(&sb, "### %d. %s\n\n", i+1, section.Aspect)
		for _, block := range section.Findings {
			for _, line := range block.Lines() {
				sb.WriteString(line)
				sb.WriteString("\n\n")
			}
		}
		sb.WriteString("---\n\n")
	}

	sb.WriteString("## Sources and Methodology Notes\n\n")
	sb.WriteString("- Research conducted using systematic multi-aspect analysis\n")
	fmt.Fprintf(&sb, "- Findings synthesized from %d research areas\n", r.Len())
	fmt.Fprintf(&sb, "- Each area investigated through %d iterative research cycles\n", q.Depth)
	fmt.Fprintf(&sb, "- Report generated on %s\n\n", day)
	sb.WriteString("---\n\n")
	sb.WriteString("*This report was generated using the Deep Research Plugin for comprehensive topic analysis.*\n")
	return sb.String()
}
