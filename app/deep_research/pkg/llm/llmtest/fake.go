// Package llmtest provides a deterministic llm.Completer for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Call 记录一次补全请求
type Call struct {
	Messages []*schema.Message
	Options  *model.Options
}

// System 返回请求中的系统提示词
func (c Call) System() string {
	for _, m := range c.Messages {
		if m.Role == schema.System {
			return m.Content
		}
	}
	return ""
}

// User 返回最后一条用户消息
func (c Call) User() string {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == schema.User {
			return c.Messages[i].Content
		}
	}
	return ""
}

// Func 根据请求生成回复
type Func func(ctx context.Context, call Call) (*schema.Message, error)

// Fake 并发安全的脚本化补全服务
type Fake struct {
	mu    sync.Mutex
	fn    Func
	calls []Call
}

// New 创建 Fake
func New(fn Func) *Fake {
	return &Fake{fn: fn}
}

// Reply 总是返回固定文本
func Reply(text string) *Fake {
	return New(func(context.Context, Call) (*schema.Message, error) {
		return schema.AssistantMessage(text, nil), nil
	})
}

// Fail 总是返回错误
func Fail(err error) *Fake {
	return New(func(context.Context, Call) (*schema.Message, error) {
		return nil, err
	})
}

// Generate 实现 llm.Completer
func (f *Fake) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	call := Call{
		Messages: append([]*schema.Message(nil), input...),
		Options:  model.GetCommonOptions(&model.Options{}, opts...),
	}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
	return f.fn(ctx, call)
}

// Calls 返回已记录的请求
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}
