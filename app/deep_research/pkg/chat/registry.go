package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cloudwego/eino/schema"
)

// Status 工具调用结果状态
type Status int

const (
	StatusOK Status = iota
	StatusUnknown
	StatusInvalid
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnknown:
		return "unknown"
	case StatusInvalid:
		return "invalid"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Handler 处理一次工具调用，args 已通过参数校验
type Handler func(ctx context.Context, args map[string]any) (string, error)

// Tool 可供模型调用的函数
type Tool struct {
	Name   string
	Desc   string
	Params map[string]*schema.ParameterInfo
	Invoke Handler
}

// Result 工具调用结果，Content 会作为 tool 消息回传给模型
type Result struct {
	Content string
	Status  Status
}

// Registry 按名称分发工具调用
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry 创建空的工具表
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register 注册工具，名称不可重复
func (r *Registry) Register(t Tool) error {
	if t.Name == "" {
		return fmt.Errorf("tool name is empty")
	}
	if t.Invoke == nil {
		return fmt.Errorf("tool %s has no handler", t.Name)
	}
	if _, ok := r.tools[t.Name]; ok {
		return fmt.Errorf("tool %s already registered", t.Name)
	}
	r.tools[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// Infos 按注册顺序返回工具描述
func (r *Registry) Infos() []*schema.ToolInfo {
	infos := make([]*schema.ToolInfo, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		infos = append(infos, &schema.ToolInfo{
			Name:        t.Name,
			Desc:        t.Desc,
			ParamsOneOf: schema.NewParamsOneOfByParams(t.Params),
		})
	}
	return infos
}

// Dispatch 校验参数并调用工具。任何失败都转换为 Result，不会中断对话
func (r *Registry) Dispatch(ctx context.Context, name, arguments string) Result {
	t, ok := r.tools[name]
	if !ok {
		return Result{Content: "Unknown function: " + name, Status: StatusUnknown}
	}

	args, err := parseArgs(arguments)
	if err == nil {
		err = validate(t.Params, args)
	}
	if err != nil {
		return Result{Content: fmt.Sprintf("Invalid arguments for %s: %v", name, err), Status: StatusInvalid}
	}

	out, err := t.Invoke(ctx, args)
	if err != nil {
		return Result{Content: fmt.Sprintf("Function %s failed: %v", name, err), Status: StatusFailed}
	}
	return Result{Content: out, Status: StatusOK}
}

func parseArgs(arguments string) (map[string]any, error) {
	if strings.TrimSpace(arguments) == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON object: %w", err)
	}
	if args == nil {
		return nil, fmt.Errorf("arguments must be a JSON object")
	}
	return args, nil
}

func validate(params map[string]*schema.ParameterInfo, args map[string]any) error {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := params[name]
		v, ok := args[name]
		if !ok || v == nil {
			if p.Required {
				return fmt.Errorf("missing required parameter %q", name)
			}
			continue
		}
		if !matches(p.Type, v) {
			return fmt.Errorf("parameter %q must be %s", name, p.Type)
		}
	}
	return nil
}

func matches(t schema.DataType, v any) bool {
	switch t {
	case schema.String:
		_, ok := v.(string)
		return ok
	case schema.Integer:
		f, ok := v.(float64)
		return ok && f == math.Trunc(f)
	case schema.Number:
		_, ok := v.(float64)
		return ok
	case schema.Boolean:
		_, ok := v.(bool)
		return ok
	case schema.Array:
		_, ok := v.([]any)
		return ok
	case schema.Object:
		_, ok := v.(map[string]any)
		return ok
	default:
		return true
	}
}

// StringArg 读取字符串参数，缺省时返回 def
func StringArg(args map[string]any, name, def string) string {
	if s, ok := args[name].(string); ok {
		return s
	}
	return def
}

// IntArg 读取整数参数，缺省时返回 def。超出 int32 的值先钳制到边界再转换
func IntArg(args map[string]any, name string, def int) int {
	if f, ok := args[name].(float64); ok {
		return int(math.Max(math.MinInt32, math.Min(math.MaxInt32, f)))
	}
	return def
}
