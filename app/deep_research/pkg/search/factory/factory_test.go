package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/deep_research/app/deep_research/pkg/config"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/search/searxng"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/search/tavily"
)

func TestNewSearcher(t *testing.T) {
	s, err := NewSearcher(config.SearchConfig{})
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = NewSearcher(config.SearchConfig{Provider: "tavily", Tavily: config.TavilyConfig{APIKey: "k"}})
	require.NoError(t, err)
	assert.IsType(t, &tavily.Client{}, s)

	s, err = NewSearcher(config.SearchConfig{Provider: "searxng", SearXNG: config.SearXNGConfig{BaseURL: "http://localhost:8080"}})
	require.NoError(t, err)
	assert.IsType(t, &searxng.Client{}, s)
}

func TestNewSearcherErrors(t *testing.T) {
	for _, cfg := range []config.SearchConfig{
		{Provider: "tavily"},
		{Provider: "searxng"},
		{Provider: "searxng", SearXNG: config.SearXNGConfig{BaseURL: "localhost:8080"}},
		{Provider: "bing"},
	} {
		_, err := NewSearcher(cfg)
		assert.Error(t, err, cfg.Provider)
	}
}
