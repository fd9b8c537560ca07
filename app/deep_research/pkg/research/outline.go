package research

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cloudwego/eino/schema"
	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/deep_research/app/deep_research/pkg/llm"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/logger"
	dm "github.com/iWorld-y/deep_research/app/deep_research/pkg/model"
)

// Outliner 生成研究大纲
type Outliner struct {
	cm  llm.Completer
	log logrus.FieldLogger
}

// NewOutliner 创建大纲生成器
func NewOutliner(cm llm.Completer, log logrus.FieldLogger) *Outliner {
	return &Outliner{cm: cm, log: logger.OrDiscard(log)}
}

// Generate 返回恰好 breadth 个研究方向。模型解析不足时用通用方向补齐；
// 请求失败时整体回退到通用方向，并以降级结果返回
func (o *Outliner) Generate(ctx context.Context, query string, breadth int) dm.Outcome[[]string] {
	breadth = max(breadth, 0)
	fallback := FallbackAspects(query)

	messages := []*schema.Message{
		schema.SystemMessage(fmt.Sprintf(outlineSystemTpl, breadth, query)),
		schema.UserMessage(fmt.Sprintf(outlineUserTpl, breadth, query)),
	}
	resp, err := o.cm.Generate(ctx, messages)
	if err != nil {
		o.log.Errorf("生成研究大纲失败: %v", err)
		llm.RecordDegraded("outline")
		return dm.Degraded(truncate(fallback, breadth), err)
	}

	aspects := ParseOutline(resp.Content)
	if len(aspects) < breadth {
		o.log.Warnf("研究大纲仅解析出 %d/%d 个方向，使用通用方向补齐", len(aspects), breadth)
		aspects = append(aspects, fallback[min(len(aspects), len(fallback)):min(breadth, len(fallback))]...)
	}
	return dm.Ok(truncate(aspects, breadth))
}

// ParseOutline 从编号或项目符号列表中解析研究方向
func ParseOutline(text string) []string {
	var aspects []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		first, _ := utf8.DecodeRuneInString(line)
		if !unicode.IsDigit(first) && first != '-' && first != '•' {
			continue
		}

		var aspect string
		if _, rest, ok := strings.Cut(line, "."); ok {
			aspect = rest
		} else {
			aspect = strings.TrimLeft(line, "-•")
		}
		if aspect = strings.TrimSpace(aspect); aspect != "" {
			aspects = append(aspects, aspect)
		}
	}
	return aspects
}

func truncate(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
