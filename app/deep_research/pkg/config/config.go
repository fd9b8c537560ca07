package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrMissingModel    = errors.New("llm model (deployment name) is not configured")
	ErrMissingEndpoint = errors.New("llm base_url (endpoint) is not configured")
)

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Research    ResearchConfig    `yaml:"research"`
	Search      SearchConfig      `yaml:"search"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Server      ServerConfig      `yaml:"server"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	ByAzure     bool    `yaml:"by_azure"`
	APIVersion  string  `yaml:"api_version"`
	Timeout     int     `yaml:"timeout"` // seconds
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// ResearchConfig 研究流程配置
type ResearchConfig struct {
	DefaultBreadth int `yaml:"default_breadth"`
	DefaultDepth   int `yaml:"default_depth"`
	// IterationDelay 每轮迭代之间的停顿，毫秒。负数表示不停顿。
	IterationDelay int `yaml:"iteration_delay"`
	Parallelism    int `yaml:"parallelism"`
}

// SearchConfig 搜索相关配置，provider 为空时不启用联网检索
type SearchConfig struct {
	Provider     string        `yaml:"provider"`
	Tavily       TavilyConfig  `yaml:"tavily"`
	SearXNG      SearXNGConfig `yaml:"searxng"`
	MaxResults   int           `yaml:"max_results"`
	FetchContent bool          `yaml:"fetch_content"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"`
	TimeRange string `yaml:"time_range"` // 仅 news 类检索使用
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS        int `yaml:"qps"`
	RPM        int `yaml:"rpm"`
	MaxRetries int `yaml:"max_retries"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Timeout string `yaml:"timeout"`
}

const DefaultAPIVersion = "2024-02-01"

// Default 返回带默认值的配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig 从指定路径加载配置，支持 ${ENV} 形式的环境变量引用
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse 解析 yaml 配置内容
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv 兼容原有的 Azure OpenAI 环境变量
func (c *Config) applyEnv() {
	fill := func(dst *string, key string) {
		if *dst == "" {
			*dst = os.Getenv(key)
		}
	}
	fill(&c.LLM.BaseURL, "AZURE_OPENAI_ENDPOINT")
	fill(&c.LLM.Model, "AZURE_OPENAI_DEPLOYMENT_NAME")
	fill(&c.LLM.APIKey, "AZURE_OPENAI_API_KEY")
	fill(&c.LLM.APIVersion, "AZURE_OPENAI_API_VERSION")
}

func (c *Config) applyDefaults() {
	if c.LLM.APIVersion == "" {
		c.LLM.APIVersion = DefaultAPIVersion
	}
	if c.LLM.Timeout <= 0 {
		c.LLM.Timeout = 120
	}
	if c.Research.DefaultBreadth == 0 {
		c.Research.DefaultBreadth = 3
	}
	if c.Research.DefaultDepth == 0 {
		c.Research.DefaultDepth = 2
	}
	if c.Research.IterationDelay == 0 {
		c.Research.IterationDelay = 100
	}
	if c.Research.Parallelism <= 0 {
		c.Research.Parallelism = 1
	}
	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = 5
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Concurrency.QPS <= 0 {
		c.Concurrency.QPS = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8000"
	}
	if c.Server.Timeout == "" {
		c.Server.Timeout = "600s"
	}
}

// Validate 校验必填项
func (c *Config) Validate() error {
	if c.LLM.Model == "" {
		return ErrMissingModel
	}
	if c.LLM.ByAzure && c.LLM.BaseURL == "" {
		return ErrMissingEndpoint
	}
	if c.Concurrency.MaxRetries < 0 {
		return fmt.Errorf("concurrency.max_retries must not be negative, got %d", c.Concurrency.MaxRetries)
	}
	switch c.Search.Provider {
	case "", "tavily", "searxng":
	default:
		return fmt.Errorf("unknown search provider: %s", c.Search.Provider)
	}
	return nil
}

// Delay 返回迭代间停顿时长
func (r ResearchConfig) Delay() time.Duration {
	if r.IterationDelay < 0 {
		return 0
	}
	return time.Duration(r.IterationDelay) * time.Millisecond
}
