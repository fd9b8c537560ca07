package engine

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/deep_research/app/deep_research/pkg/chat"
	dm "github.com/iWorld-y/deep_research/app/deep_research/pkg/model"
)

func (e *Engine) registerTools() error {
	for _, t := range e.toolset() {
		if err := e.tools.Register(t); err != nil {
			return err
		}
	}
	return nil
}

// riskTools 风险分析师角色的工具表
func (e *Engine) riskTools() (*chat.Registry, error) {
	r := chat.NewRegistry()
	for _, t := range e.toolset() {
		if t.Name != "assess_risks" {
			continue
		}
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (e *Engine) toolset() []chat.Tool {
	return []chat.Tool{
		{
			Name: "deep_research",
			Desc: "Performs comprehensive deep research on a topic with multiple research iterations",
			Params: map[string]*schema.ParameterInfo{
				"query":   {Type: schema.String, Desc: "The research topic or question to investigate thoroughly", Required: true},
				"breadth": {Type: schema.Integer, Desc: "Number of research aspects to explore, 1-10 (default: 3)"},
				"depth":   {Type: schema.Integer, Desc: "Number of research iterations to perform, 1-5 (default: 2)"},
			},
			Invoke: func(ctx context.Context, args map[string]any) (string, error) {
				return e.DeepResearch(ctx,
					chat.StringArg(args, "query", ""),
					chat.IntArg(args, "breadth", DefaultBreadth),
					chat.IntArg(args, "depth", DefaultDepth),
				), nil
			},
		},
		{
			Name: "quick_research",
			Desc: "Performs quick research on a topic with preset parameters for faster results",
			Params: map[string]*schema.ParameterInfo{
				"query": {Type: schema.String, Desc: "The research topic or question to investigate", Required: true},
			},
			Invoke: func(ctx context.Context, args map[string]any) (string, error) {
				return e.QuickResearch(ctx, chat.StringArg(args, "query", "")), nil
			},
		},
		{
			Name: "assess_risks",
			Desc: "Performs comprehensive risk assessment analysis for locations, buildings, or assets",
			Params: map[string]*schema.ParameterInfo{
				"research_data":   {Type: schema.String, Desc: "Research data or information about the location/building to assess", Required: true},
				"location":        {Type: schema.String, Desc: "The specific location, building, or asset being assessed"},
				"risk_categories": {Type: schema.String, Desc: "Specific risk categories to focus on (optional)"},
			},
			Invoke: func(ctx context.Context, args map[string]any) (string, error) {
				return e.AssessRisks(ctx, dm.RiskAssessmentRequest{
					ResearchData:   chat.StringArg(args, "research_data", ""),
					Location:       chat.StringArg(args, "location", ""),
					RiskCategories: chat.StringArg(args, "risk_categories", ""),
				}), nil
			},
		},
	}
}
