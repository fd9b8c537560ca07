package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/deep_research/app/deep_research/pkg/chat"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/config"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/llm"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/logger"
	dm "github.com/iWorld-y/deep_research/app/deep_research/pkg/model"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/report"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/research"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/risk"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/search"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/search/factory"
)

const (
	DefaultBreadth = 3
	DefaultDepth   = 2

	QuickBreadth = 2
	QuickDepth   = 1
)

// Engine 核心处理引擎，对外提供研究、风险评估与对话入口
type Engine struct {
	cfg          *config.Config
	orchestrator *research.Orchestrator
	assessor     *risk.Assessor
	agents       map[Persona]*chat.Agent
	tools        *chat.Registry
	now          func() time.Time
	log          logrus.FieldLogger
}

// Option 配置 Engine
type Option func(*options)

type options struct {
	searcher   search.Searcher
	fetcher    search.Fetcher
	maxResults int
	now        func() time.Time
}

// WithSearcher 为研究步骤启用联网检索
func WithSearcher(s search.Searcher, maxResults int) Option {
	return func(o *options) {
		o.searcher = s
		o.maxResults = maxResults
	}
}

// WithFetcher 抓取检索结果正文
func WithFetcher(f search.Fetcher) Option {
	return func(o *options) { o.fetcher = f }
}

// WithClock 替换时钟，用于测试
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewEngine 根据配置初始化模型、限流、检索并创建引擎
func NewEngine(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*Engine, error) {
	log = logger.OrDiscard(log)

	// 初始化 LLM
	cm, err := llm.NewChatModel(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	client := llm.NewClient(cm,
		llm.WithLimiter(llm.NewLimiter(cfg.Concurrency)),
		llm.WithMaxRetries(cfg.Concurrency.MaxRetries),
		llm.WithDefaults(llm.GenerationDefaults(cfg.LLM)...),
		llm.WithLogger(log),
	)

	// 初始化搜索客户端，未配置时不检索
	var opts []Option
	searcher, err := factory.NewSearcher(cfg.Search)
	if err != nil {
		return nil, fmt.Errorf("搜索客户端初始化失败: %w", err)
	}
	if searcher != nil {
		opts = append(opts, WithSearcher(searcher, cfg.Search.MaxResults))
		if cfg.Search.FetchContent {
			opts = append(opts, WithFetcher(search.ReadabilityFetcher{}))
		}
	}

	return New(client, cfg, log, opts...)
}

// New 使用给定的补全服务创建引擎
func New(cm llm.Completer, cfg *config.Config, log logrus.FieldLogger, opts ...Option) (*Engine, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	log = logger.OrDiscard(log)

	var researcherOpts []research.ResearcherOption
	if o.searcher != nil {
		researcherOpts = append(researcherOpts, research.WithSearcher(o.searcher, o.maxResults))
	}
	if o.fetcher != nil {
		researcherOpts = append(researcherOpts, research.WithFetcher(o.fetcher))
	}

	e := &Engine{
		cfg: cfg,
		orchestrator: research.NewOrchestrator(
			research.NewOutliner(cm, log),
			research.NewResearcher(cm, log, researcherOpts...),
			log,
			research.WithIterationDelay(cfg.Research.Delay()),
			research.WithParallelism(cfg.Research.Parallelism),
			research.WithClock(o.now),
		),
		assessor: risk.NewAssessor(cm, log),
		tools:    chat.NewRegistry(),
		now:      o.now,
		log:      log,
	}
	if err := e.registerTools(); err != nil {
		return nil, err
	}
	riskTools, err := e.riskTools()
	if err != nil {
		return nil, err
	}
	e.agents = map[Persona]*chat.Agent{
		PersonaResearch: chat.NewAgent(cm, e.tools, log),
		PersonaRisk:     chat.NewAgent(cm, riskTools, log, chat.WithSystemPrompt(risk.AnalystPrompt)),
	}
	return e, nil
}

// Defaults 未指定 breadth/depth 时使用的配置值
func (e *Engine) Defaults() (breadth, depth int) {
	return e.cfg.Research.DefaultBreadth, e.cfg.Research.DefaultDepth
}

// Research 执行研究并生成报告，越界参数会被钳制
func (e *Engine) Research(ctx context.Context, q dm.ResearchQuery) *dm.Run {
	run := e.orchestrator.Run(ctx, q)
	run.Report = report.Render(run.Query, run.Result, e.now())
	return run
}

// DeepResearch 返回 Markdown 报告；任何未预期的失败都以文本形式返回
func (e *Engine) DeepResearch(ctx context.Context, query string, breadth, depth int) (out string) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Errorf("深度研究异常: %v", r)
			out = fmt.Sprintf("❌ Deep research failed: %v", r)
		}
	}()
	return e.Research(ctx, dm.NewResearchQuery(query, breadth, depth)).Report
}

// QuickResearch 等价于 breadth=2, depth=1 的 DeepResearch
func (e *Engine) QuickResearch(ctx context.Context, query string) string {
	return e.DeepResearch(ctx, query, QuickBreadth, QuickDepth)
}

// AssessRisks 返回风险评估文本
func (e *Engine) AssessRisks(ctx context.Context, req dm.RiskAssessmentRequest) string {
	return e.assessor.Assess(ctx, req).Value
}

// Chat 以深度研究助手身份对话，模型可调用研究与风险评估工具
func (e *Engine) Chat(ctx context.Context, message string) string {
	return e.ChatAs(ctx, PersonaResearch, message)
}

// ChatAs 以指定角色对话。风险分析师角色只能调用 assess_risks
func (e *Engine) ChatAs(ctx context.Context, persona Persona, message string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Errorf("对话异常: %v", r)
			out = fmt.Sprintf("%s %v", chat.FailurePrefix, r)
		}
	}()
	agent, ok := e.agents[persona]
	if !ok {
		return fmt.Sprintf("%s unknown persona %q", chat.FailurePrefix, persona)
	}
	return agent.Chat(ctx, message).Value
}
