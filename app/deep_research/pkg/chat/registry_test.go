package chat

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoTool(t *testing.T) (Tool, *map[string]any) {
	t.Helper()
	var got map[string]any
	return Tool{
		Name: "echo",
		Desc: "echo the text",
		Params: map[string]*schema.ParameterInfo{
			"text":  {Type: schema.String, Required: true},
			"times": {Type: schema.Integer},
		},
		Invoke: func(_ context.Context, args map[string]any) (string, error) {
			got = args
			return StringArg(args, "text", ""), nil
		},
	}, &got
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	tool, _ := echoTool(t)
	require.NoError(t, r.Register(tool))
	assert.Error(t, r.Register(tool))
	assert.Error(t, r.Register(Tool{Name: "nohandler"}))
	assert.Error(t, r.Register(Tool{Invoke: tool.Invoke}))
}

func TestRegistryInfosKeepOrder(t *testing.T) {
	r := NewRegistry()
	noop := func(context.Context, map[string]any) (string, error) { return "", nil }
	for _, name := range []string{"b", "a", "c"} {
		require.NoError(t, r.Register(Tool{Name: name, Desc: name + " tool", Invoke: noop}))
	}
	infos := r.Infos()
	require.Len(t, infos, 3)
	assert.Equal(t, "b", infos[0].Name)
	assert.Equal(t, "a", infos[1].Name)
	assert.Equal(t, "c", infos[2].Name)
	assert.Equal(t, "b tool", infos[0].Desc)
}

func TestRegistryDispatch(t *testing.T) {
	r := NewRegistry()
	tool, got := echoTool(t)
	require.NoError(t, r.Register(tool))
	require.NoError(t, r.Register(Tool{
		Name:   "broken",
		Invoke: func(context.Context, map[string]any) (string, error) { return "", errors.New("kaput") },
	}))

	tests := []struct {
		name   string
		tool   string
		args   string
		status Status
		want   string
	}{
		{name: "ok", tool: "echo", args: `{"text":"hi","times":2}`, status: StatusOK, want: "hi"},
		{name: "unknown", tool: "nope", args: `{}`, status: StatusUnknown, want: "Unknown function: nope"},
		{name: "not object", tool: "echo", args: `[1,2]`, status: StatusInvalid},
		{name: "null", tool: "echo", args: `null`, status: StatusInvalid},
		{name: "missing required", tool: "echo", args: `{"times":1}`, status: StatusInvalid},
		{name: "wrong type", tool: "echo", args: `{"text":"hi","times":"two"}`, status: StatusInvalid},
		{name: "fractional integer", tool: "echo", args: `{"text":"hi","times":1.5}`, status: StatusInvalid},
		{name: "handler error", tool: "broken", args: ``, status: StatusFailed, want: "Function broken failed: kaput"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Dispatch(context.Background(), tt.tool, tt.args)
			assert.Equal(t, tt.status, res.Status, res.Content)
			if tt.want != "" {
				assert.Equal(t, tt.want, res.Content)
			}
		})
	}
	assert.Equal(t, "hi", (*got)["text"])
}

func TestArgHelpers(t *testing.T) {
	args := map[string]any{"s": "x", "n": float64(4)}
	assert.Equal(t, "x", StringArg(args, "s", "d"))
	assert.Equal(t, "d", StringArg(args, "missing", "d"))
	assert.Equal(t, 4, IntArg(args, "n", 3))
	assert.Equal(t, 3, IntArg(args, "missing", 3))
}

func TestIntArgClampsOverflow(t *testing.T) {
	args := map[string]any{"big": 1e20, "small": -1e20}
	assert.Equal(t, math.MaxInt32, IntArg(args, "big", 0))
	assert.Equal(t, math.MinInt32, IntArg(args, "small", 0))
}
