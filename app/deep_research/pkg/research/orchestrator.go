package research

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/iWorld-y/deep_research/app/deep_research/pkg/logger"
	dm "github.com/iWorld-y/deep_research/app/deep_research/pkg/model"
)

// Orchestrator 驱动 大纲 -> 逐方向逐轮研究 的流程
type Orchestrator struct {
	outliner    *Outliner
	researcher  *Researcher
	delay       time.Duration
	parallelism int
	now         func() time.Time
	log         logrus.FieldLogger
}

// Option 配置 Orchestrator
type Option func(*Orchestrator)

// WithIterationDelay 每轮研究后的停顿
func WithIterationDelay(d time.Duration) Option {
	return func(o *Orchestrator) { o.delay = d }
}

// WithParallelism 同时研究的方向数，1 为串行
func WithParallelism(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.parallelism = n
		}
	}
}

// WithClock 替换时钟，用于测试
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// NewOrchestrator 创建编排器
func NewOrchestrator(outliner *Outliner, researcher *Researcher, log logrus.FieldLogger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		outliner:    outliner,
		researcher:  researcher,
		parallelism: 1,
		now:         time.Now,
		log:         logger.OrDiscard(log),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run 执行一次研究。结果中方向顺序与大纲一致，每个方向恰好 depth 条结论；
// 并行执行时同样保持该顺序
func (o *Orchestrator) Run(ctx context.Context, q dm.ResearchQuery) *dm.Run {
	q = dm.NewResearchQuery(q.Text, q.Breadth, q.Depth)
	run := &dm.Run{
		ID:        uuid.NewString(),
		Query:     q,
		StartedAt: o.now(),
	}
	log := o.log.WithField("run_id", run.ID)
	log.Infof("开始深度研究: '%s' (breadth: %d, depth: %d)", q.Text, q.Breadth, q.Depth)

	var degraded atomic.Int64
	outline := o.outliner.Generate(ctx, q.Text, q.Breadth)
	if outline.IsDegraded() {
		degraded.Add(1)
	}

	sections := make([]dm.AspectFindings, len(outline.Value))
	var (
		g         errgroup.Group
		panicOnce sync.Once
		panicVal  any
	)
	g.SetLimit(o.parallelism)
	for i, aspect := range outline.Value {
		g.Go(func() error {
			// panic 转交给调用方所在的 goroutine
			defer func() {
				if r := recover(); r != nil {
					panicOnce.Do(func() { panicVal = r })
				}
			}()
			sections[i] = o.researchAspect(ctx, aspect, q.Depth, &degraded)
			return nil
		})
	}
	_ = g.Wait()
	if panicVal != nil {
		panic(panicVal)
	}

	run.Result = dm.ResearchResult{Sections: sections}
	run.Degraded = int(degraded.Load())
	run.FinishedAt = o.now()
	log.Infof("深度研究完成: '%s' (降级步骤: %d, 耗时: %s)", q.Text, run.Degraded, run.FinishedAt.Sub(run.StartedAt))
	return run
}

func (o *Orchestrator) researchAspect(ctx context.Context, aspect string, depth int, degraded *atomic.Int64) dm.AspectFindings {
	section := dm.AspectFindings{
		Aspect:   aspect,
		Findings: make([]dm.FindingBlock, 0, depth),
	}
	for iteration := 1; iteration <= depth; iteration++ {
		outcome := o.researcher.Research(ctx, aspect, iteration)
		if outcome.IsDegraded() {
			degraded.Add(1)
		}
		section.Findings = append(section.Findings, outcome.Value)
		o.pause(ctx)
	}
	return section
}

func (o *Orchestrator) pause(ctx context.Context) {
	if o.delay <= 0 {
		return
	}
	t := time.NewTimer(o.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
