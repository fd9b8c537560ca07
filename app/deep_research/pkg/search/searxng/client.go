package searxng

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iWorld-y/deep_research/app/deep_research/pkg/search"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "deep_research/1.0 (+searxng)"
)

// Client SearXNG 实例的 JSON 搜索客户端
type Client struct {
	endpoint  *url.URL
	userAgent string
	timeRange string
	client    *http.Client
}

// Option 配置 Client
type Option func(*Client)

// WithTimeout 请求超时，0 使用默认值
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// WithHTTPClient 覆盖 HTTP 客户端
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithUserAgent 部分实例会拦截无 UA 的请求
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithNewsTimeRange topic 为 news 时附带的 time_range，如 day / week / month
func WithNewsTimeRange(r string) Option {
	return func(c *Client) { c.timeRange = r }
}

// NewClient 创建客户端。baseURL 可以带路径前缀，如 https://host/searxng
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
	}

	if u.Path == "" {
		u.Path = "/"
	}
	c := &Client{
		endpoint:  u.JoinPath("search"),
		userAgent: defaultUserAgent,
		client:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var _ search.Searcher = (*Client)(nil)

type searchResponse struct {
	Query   string   `json:"query"`
	Results []result `json:"results"`
}

type result struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	PublishedDate string  `json:"publishedDate"`
	Score         float64 `json:"score"`
}

// Search 执行搜索，结果按实例返回顺序截取 MaxResults 条，无 URL 的结果被跳过
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	u := *c.endpoint
	q := url.Values{}
	q.Set("q", req.Query)
	q.Set("format", "json")
	if req.Topic == "news" {
		q.Set("categories", "news")
		if c.timeRange != "" {
			q.Set("time_range", c.timeRange)
		}
	} else {
		q.Set("categories", "general")
	}
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, fmt.Errorf("searxng api error (status %d): %s", res.StatusCode, string(body))
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}

	results := make([]search.Result, 0, len(sr.Results))
	for _, r := range sr.Results {
		if r.URL == "" {
			continue
		}
		results = append(results, search.Result{
			Title:         r.Title,
			URL:           r.URL,
			Content:       r.Content,
			Score:         r.Score,
			PublishedDate: r.PublishedDate,
		})
		if req.MaxResults > 0 && len(results) >= req.MaxResults {
			break
		}
	}
	return &search.Response{Results: results}, nil
}
