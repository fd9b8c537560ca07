package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/deep_research/app/deep_research/pkg/llm/llmtest"
)

func toolCall(id, name, args string) schema.ToolCall {
	return schema.ToolCall{ID: id, Function: schema.FunctionCall{Name: name, Arguments: args}}
}

func lastToolMessages(call llmtest.Call) []*schema.Message {
	var out []*schema.Message
	for _, m := range call.Messages {
		if m.Role == schema.Tool {
			out = append(out, m)
		}
	}
	return out
}

func TestChatWithoutToolCall(t *testing.T) {
	r := NewRegistry()
	tool, _ := echoTool(t)
	require.NoError(t, r.Register(tool))
	fake := llmtest.Reply(" plain answer ")

	out := NewAgent(fake, r, nil).Chat(context.Background(), "hello")
	require.False(t, out.IsDegraded())
	assert.Equal(t, "plain answer", out.Value)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	require.Len(t, calls[0].Options.Tools, 1)
	assert.Equal(t, "echo", calls[0].Options.Tools[0].Name)
	assert.Equal(t, "hello", calls[0].User())
}

func TestChatDispatchesOneRound(t *testing.T) {
	r := NewRegistry()
	tool, _ := echoTool(t)
	require.NoError(t, r.Register(tool))

	fake := llmtest.New(func(_ context.Context, call llmtest.Call) (*schema.Message, error) {
		if len(call.Options.Tools) > 0 {
			return schema.AssistantMessage("", []schema.ToolCall{
				toolCall("c1", "echo", `{"text":"from tool"}`),
				toolCall("c2", "missing", `{}`),
			}), nil
		}
		// 最终回答中的工具调用会被忽略
		return schema.AssistantMessage("final", []schema.ToolCall{toolCall("c3", "echo", `{"text":"again"}`)}), nil
	})

	out := NewAgent(fake, r, nil).Chat(context.Background(), "use tools")
	require.False(t, out.IsDegraded())
	assert.Equal(t, "final", out.Value)

	calls := fake.Calls()
	require.Len(t, calls, 2)
	assert.Empty(t, calls[1].Options.Tools)

	tools := lastToolMessages(calls[1])
	require.Len(t, tools, 2)
	assert.Equal(t, "from tool", tools[0].Content)
	assert.Equal(t, "c1", tools[0].ToolCallID)
	assert.Equal(t, "echo", tools[0].ToolName)
	assert.Equal(t, "Unknown function: missing", tools[1].Content)
	assert.Equal(t, "c2", tools[1].ToolCallID)
}

func TestChatFailure(t *testing.T) {
	out := NewAgent(llmtest.Fail(errors.New("offline")), NewRegistry(), nil).Chat(context.Background(), "hi")
	assert.True(t, out.IsDegraded())
	assert.Equal(t, "❌ Chat failed: offline", out.Value)
}

func TestChatWithSystemPrompt(t *testing.T) {
	fake := llmtest.Reply("ok")

	NewAgent(fake, NewRegistry(), nil).Chat(context.Background(), "a")
	NewAgent(fake, NewRegistry(), nil, WithSystemPrompt("You are a pirate.")).Chat(context.Background(), "b")

	calls := fake.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, DefaultSystemPrompt, calls[0].System())
	assert.Equal(t, "You are a pirate.", calls[1].System())
}
