package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/deep_research/app/deep_research/pkg/llm"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/logger"
	dm "github.com/iWorld-y/deep_research/app/deep_research/pkg/model"
)

// DefaultSystemPrompt 深度研究助手的系统提示词
const DefaultSystemPrompt = `You are an expert deep research agent capable of performing comprehensive, multi-level research on any topic.

When a user asks you to research something, provide detailed, factual analysis focusing on:
- Current state and recent developments
- Key facts, statistics, and data points
- Important trends and patterns
- Challenges and opportunities
- Expert insights and analysis
- Future implications

Always provide well-structured, detailed reports with clear insights.
Be thorough, factual, and provide valuable analysis that goes beyond surface-level information.
Your research should be comprehensive, well-organized, and actionable.`

// FailurePrefix 对话失败时返回文本的前缀
const FailurePrefix = "❌ Chat failed:"

// Agent 单轮工具调用的对话代理
type Agent struct {
	cm       llm.Completer
	registry *Registry
	prompt   string
	log      logrus.FieldLogger
}

// AgentOption 配置 Agent
type AgentOption func(*Agent)

// WithSystemPrompt 替换系统提示词，用于不同的对话角色
func WithSystemPrompt(prompt string) AgentOption {
	return func(a *Agent) { a.prompt = prompt }
}

// NewAgent 创建对话代理
func NewAgent(cm llm.Completer, registry *Registry, log logrus.FieldLogger, opts ...AgentOption) *Agent {
	a := &Agent{cm: cm, registry: registry, prompt: DefaultSystemPrompt, log: logger.OrDiscard(log)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Chat 首次请求附带工具列表；模型请求调用工具时逐个执行并回传结果，
// 再发起一次不带工具的请求得到最终回答。只进行一轮工具调用
func (a *Agent) Chat(ctx context.Context, message string) dm.Outcome[string] {
	messages := []*schema.Message{
		schema.SystemMessage(a.prompt),
		schema.UserMessage(message),
	}

	resp, err := a.cm.Generate(ctx, messages, model.WithTools(a.registry.Infos()))
	if err != nil {
		return a.fail(err)
	}
	if len(resp.ToolCalls) == 0 {
		return dm.Ok(strings.TrimSpace(resp.Content))
	}

	messages = append(messages, resp)
	for _, call := range resp.ToolCalls {
		a.log.Infof("调用工具 %s (id: %s)", call.Function.Name, call.ID)
		res := a.registry.Dispatch(ctx, call.Function.Name, call.Function.Arguments)
		if res.Status != StatusOK {
			a.log.Warnf("工具 %s 调用未成功 (%s): %s", call.Function.Name, res.Status, res.Content)
		}
		toolMsg := schema.ToolMessage(res.Content, call.ID)
		toolMsg.ToolName = call.Function.Name
		messages = append(messages, toolMsg)
	}

	final, err := a.cm.Generate(ctx, messages)
	if err != nil {
		return a.fail(err)
	}
	return dm.Ok(strings.TrimSpace(final.Content))
}

func (a *Agent) fail(err error) dm.Outcome[string] {
	a.log.Errorf("对话失败: %v", err)
	llm.RecordDegraded("chat")
	return dm.Degraded(fmt.Sprintf("%s %s", FailurePrefix, err), err)
}
