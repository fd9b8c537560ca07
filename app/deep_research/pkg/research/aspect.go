package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/deep_research/app/deep_research/pkg/llm"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/logger"
	dm "github.com/iWorld-y/deep_research/app/deep_research/pkg/model"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/search"
)

// Researcher 针对单个研究方向执行一轮研究
type Researcher struct {
	cm         llm.Completer
	searcher   search.Searcher
	fetcher    search.Fetcher
	maxResults int
	log        logrus.FieldLogger
}

// ResearcherOption 配置 Researcher
type ResearcherOption func(*Researcher)

// WithSearcher 启用联网检索，检索结果作为参考资料附加在提示词后
func WithSearcher(s search.Searcher, maxResults int) ResearcherOption {
	return func(r *Researcher) {
		r.searcher = s
		r.maxResults = maxResults
	}
}

// WithFetcher 为摘要过短的检索结果抓取正文
func WithFetcher(f search.Fetcher) ResearcherOption {
	return func(r *Researcher) { r.fetcher = f }
}

// NewResearcher 创建研究员
func NewResearcher(cm llm.Completer, log logrus.FieldLogger, opts ...ResearcherOption) *Researcher {
	r := &Researcher{cm: cm, log: logger.OrDiscard(log)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Research 发起一次补全请求。失败时返回带错误标记与修复提示的占位结论，从不返回 error
func (r *Researcher) Research(ctx context.Context, aspect string, iteration int) dm.Outcome[dm.FindingBlock] {
	header := IterationHeader(aspect, iteration)

	user := fmt.Sprintf(aspectUserTpl, aspect, iteration)
	if refs := r.references(ctx, aspect); refs != "" {
		user += "\n\n" + refs
	}
	messages := []*schema.Message{
		schema.SystemMessage(fmt.Sprintf(aspectSystemTpl, iteration, aspect)),
		schema.UserMessage(user),
	}

	resp, err := r.cm.Generate(ctx, messages)
	if err != nil {
		r.log.Errorf("研究方向 [%s] 第 %d 轮失败: %v", aspect, iteration, err)
		llm.RecordDegraded("aspect")
		return dm.Degraded(dm.FindingBlock{
			Header: header,
			Body:   fmt.Sprintf("%s %s", ErrorMarker, err),
			Hint:   RemediationHint,
		}, err)
	}

	return dm.Ok(dm.FindingBlock{
		Header: header,
		Body:   strings.TrimSpace(resp.Content),
	})
}

// references 检索失败只记录日志，不影响本轮研究
func (r *Researcher) references(ctx context.Context, aspect string) string {
	if r.searcher == nil {
		return ""
	}
	results, err := search.Gather(ctx, r.searcher, r.fetcher, aspect, r.maxResults)
	if err != nil {
		r.log.Warnf("检索研究方向 [%s] 失败: %v", aspect, err)
		return ""
	}
	return search.FormatReferences(results)
}
