package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/deep_research/app/deep_research/pkg/config"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/logger"
)

// Completer 补全服务。eino 的 model.BaseChatModel 满足该接口，测试中可替换为固定脚本
type Completer interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

var ErrEmptyCompletion = errors.New("completion returned no message")

// NewChatModel 根据配置初始化 OpenAI / Azure OpenAI 模型
func NewChatModel(ctx context.Context, cfg config.LLMConfig) (Completer, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		ByAzure:    cfg.ByAzure,
		APIVersion: cfg.APIVersion,
		Timeout:    time.Duration(cfg.Timeout) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("init chat model: %w", err)
	}
	return cm, nil
}

// NewLimiter Limit 设置为 RPM/60，Burst 设置为 QPS；RPM 未配置时不限流
func NewLimiter(cfg config.ConcurrencyConfig) *rate.Limiter {
	burst := max(cfg.QPS, 1)
	if cfg.RPM <= 0 {
		return rate.NewLimiter(rate.Inf, burst)
	}
	return rate.NewLimiter(rate.Limit(float64(cfg.RPM)/60.0), burst)
}

// Client 在 Completer 之上增加限流、可选的 429 退避重试、默认生成参数与指标
type Client struct {
	cm        Completer
	limiter   *rate.Limiter
	retries   int
	baseDelay time.Duration
	defaults  []model.Option
	log       logrus.FieldLogger
}

var _ Completer = (*Client)(nil)

// Option 配置 Client
type Option func(*Client)

// WithLimiter 设置限流器
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithMaxRetries 设置 429 时的最大重试次数，默认 0 即每个请求只尝试一次
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithBaseDelay 设置退避基准时长
func WithBaseDelay(d time.Duration) Option {
	return func(c *Client) { c.baseDelay = d }
}

// WithDefaults 设置每次请求的默认生成参数，调用方传入的参数优先
func WithDefaults(opts ...model.Option) Option {
	return func(c *Client) { c.defaults = append(c.defaults, opts...) }
}

// WithLogger 注入日志
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient 包装 Completer
func NewClient(cm Completer, opts ...Option) *Client {
	c := &Client{
		cm:        cm,
		baseDelay: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = logger.OrDiscard(c.log)
	return c
}

// GenerationDefaults 将配置中的温度与最大 token 数转换为默认参数
func GenerationDefaults(cfg config.LLMConfig) []model.Option {
	var opts []model.Option
	if cfg.Temperature > 0 {
		opts = append(opts, model.WithTemperature(cfg.Temperature))
	}
	if cfg.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(cfg.MaxTokens))
	}
	return opts
}

// Generate 实现 Completer
func (c *Client) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	callOpts := make([]model.Option, 0, len(c.defaults)+len(opts))
	callOpts = append(callOpts, c.defaults...)
	callOpts = append(callOpts, opts...)

	var lastErr error
	for i := 0; i <= c.retries; i++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		start := time.Now()
		resp, err := c.cm.Generate(ctx, input, callOpts...)
		if err == nil && resp == nil {
			err = ErrEmptyCompletion
		}
		observeCompletion(start, err)
		if err == nil {
			return resp, nil
		}

		lastErr = err
		if !IsRateLimited(err) || i == c.retries {
			break
		}
		delay := c.baseDelay * time.Duration(1<<i)
		c.log.Warnf("补全请求被限流，%s 后重试 (%d/%d): %v", delay, i+1, c.retries, err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, lastErr
}

// IsRateLimited 判断错误是否为 429
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(strings.ToLower(msg), "too many requests")
}
