package model

import (
	"time"
)

const (
	MinBreadth = 1
	MaxBreadth = 10
	MinDepth   = 1
	MaxDepth   = 5
)

// ResearchQuery 一次研究请求，breadth/depth 在构造时被钳制到合法范围
type ResearchQuery struct {
	Text    string
	Breadth int
	Depth   int
}

// NewResearchQuery 创建研究请求，越界的 breadth/depth 不会报错，只会被钳制
func NewResearchQuery(text string, breadth, depth int) ResearchQuery {
	return ResearchQuery{
		Text:    text,
		Breadth: clamp(breadth, MinBreadth, MaxBreadth),
		Depth:   clamp(depth, MinDepth, MaxDepth),
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// FindingBlock 某个研究方向单轮迭代的结论
type FindingBlock struct {
	Header string
	Body   string
	Hint   string // 仅在失败时存在
}

// Lines 成功时返回 2 行，失败时返回 3 行
func (f FindingBlock) Lines() []string {
	if f.Hint == "" {
		return []string{f.Header, f.Body}
	}
	return []string{f.Header, f.Body, f.Hint}
}

// AspectFindings 单个研究方向及其按迭代顺序排列的结论
type AspectFindings struct {
	Aspect   string
	Findings []FindingBlock
}

// ResearchResult 研究结果，Sections 的顺序即大纲顺序
type ResearchResult struct {
	Sections []AspectFindings
}

// Len 研究方向数量
func (r ResearchResult) Len() int {
	return len(r.Sections)
}

// Aspects 按顺序返回所有研究方向
func (r ResearchResult) Aspects() []string {
	aspects := make([]string, 0, len(r.Sections))
	for _, s := range r.Sections {
		aspects = append(aspects, s.Aspect)
	}
	return aspects
}

// Run 一次完整的研究运行
type Run struct {
	ID         string
	Query      ResearchQuery
	Result     ResearchResult
	Report     string
	Degraded   int // 以占位内容替代的步骤数
	StartedAt  time.Time
	FinishedAt time.Time
}

// RiskAssessmentRequest 风险评估请求
type RiskAssessmentRequest struct {
	ResearchData   string `json:"research_data"`
	Location       string `json:"location"`
	RiskCategories string `json:"risk_categories"`
}

// Outcome 显式区分真实结果与降级占位结果
type Outcome[T any] struct {
	Value T
	Cause error
}

// Ok 成功结果
func Ok[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v}
}

// Degraded 失败后的占位结果，cause 为原始错误
func Degraded[T any](placeholder T, cause error) Outcome[T] {
	return Outcome[T]{Value: placeholder, Cause: cause}
}

// IsDegraded 是否为降级结果
func (o Outcome[T]) IsDegraded() bool {
	return o.Cause != nil
}
