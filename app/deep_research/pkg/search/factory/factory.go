package factory

import (
	"fmt"
	"time"

	"github.com/iWorld-y/deep_research/app/deep_research/pkg/config"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/search"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/search/searxng"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/search/tavily"
)

// NewSearcher 根据配置创建搜索实例；provider 为空表示不启用联网检索，返回 nil
func NewSearcher(cfg config.SearchConfig) (search.Searcher, error) {
	switch cfg.Provider {
	case "":
		return nil, nil

	case "tavily":
		if cfg.Tavily.APIKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		return tavily.NewClient(cfg.Tavily.APIKey), nil

	case "searxng":
		if cfg.SearXNG.BaseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		c, err := searxng.NewClient(cfg.SearXNG.BaseURL,
			searxng.WithTimeout(time.Duration(cfg.SearXNG.Timeout)*time.Second),
			searxng.WithNewsTimeRange(cfg.SearXNG.TimeRange),
		)
		if err != nil {
			return nil, err
		}
		return c, nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", cfg.Provider)
	}
}
