package search

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"
)

// Searcher 定义通用的搜索接口
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Fetcher 抓取网页正文
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Request 通用搜索请求
type Request struct {
	Query             string
	Topic             string // "news" or "general"
	MaxResults        int
	IncludeRawContent bool
}

// Response 通用搜索响应
type Response struct {
	Results []Result
}

// Result 单条搜索结果
type Result struct {
	Title         string
	URL           string
	Content       string
	RawContent    string
	Score         float64
	PublishedDate string
}

const (
	shortContentLen = 500
	maxContentLen   = 2000
)

// ReadabilityFetcher 使用 go-readability 提取正文
type ReadabilityFetcher struct {
	Timeout time.Duration
}

// Fetch 抓取 URL 并提取核心文本
func (f ReadabilityFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	timeout := f.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	article, err := readability.FromURL(url, timeout)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}

// Gather 搜索并整理参考资料；fetcher 非空时为摘要过短的结果抓取正文
func Gather(ctx context.Context, s Searcher, fetcher Fetcher, query string, maxResults int) ([]Result, error) {
	resp, err := s.Search(ctx, &Request{
		Query:      query,
		Topic:      "general",
		MaxResults: maxResults,
	})
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, item := range resp.Results {
		content := item.Content
		if fetcher != nil && len(content) < shortContentLen && item.URL != "" {
			fetched, err := fetcher.Fetch(ctx, item.URL)
			if err == nil && len(fetched) > len(content) {
				content = fetched
			}
		}
		item.Content = strings.TrimSpace(truncateUTF8(content, maxContentLen))
		results = append(results, item)
		if maxResults > 0 && len(results) >= maxResults {
			break
		}
	}
	return results, nil
}

// truncateUTF8 截断到不超过 n 字节，且不拆分多字节字符
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// FormatReferences 将搜索结果渲染为提示词中的参考资料段落
func FormatReferences(results []Result) string {
	if len(results) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Reference material from a web search:\n\n")
	for i, r := range results {
		fmt.Fprintf(&sb, "[%d] %s (%s)\n%s\n\n", i+1, r.Title, r.URL, r.Content)
	}
	return strings.TrimSpace(sb.String())
}
