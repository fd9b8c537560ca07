package service

import (
	"context"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/deep_research/app/deep_research/pkg/engine"
	dm "github.com/iWorld-y/deep_research/app/deep_research/pkg/model"
)

type ResearchReq struct {
	Query   string `json:"query"`
	Breadth int    `json:"breadth,omitempty"`
	Depth   int    `json:"depth,omitempty"`
}

type QuickResearchReq struct {
	Query string `json:"query"`
}

type ResearchReply struct {
	RunID    string `json:"run_id"`
	Query    string `json:"query"`
	Breadth  int    `json:"breadth"`
	Depth    int    `json:"depth"`
	Degraded int    `json:"degraded"`
	Report   string `json:"report"`
}

type RiskReq struct {
	ResearchData   string `json:"research_data"`
	Location       string `json:"location,omitempty"`
	RiskCategories string `json:"risk_categories,omitempty"`
}

type RiskReply struct {
	Assessment string `json:"assessment"`
}

type ChatReq struct {
	Message string `json:"message"`
	Persona string `json:"persona,omitempty"` // research（默认）或 risk
}

type ChatReply struct {
	Reply string `json:"reply"`
}

// ResearchService 研究相关 HTTP 接口的业务实现
type ResearchService struct {
	eng *engine.Engine
	log *log.Helper
}

func NewResearchService(eng *engine.Engine, logger log.Logger) *ResearchService {
	return &ResearchService{
		eng: eng,
		log: log.NewHelper(logger),
	}
}

func (s *ResearchService) Research(ctx context.Context, req *ResearchReq) (*ResearchReply, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, errors.BadRequest("EMPTY_QUERY", "query is required")
	}
	breadth, depth := s.eng.Defaults()
	if req.Breadth != 0 {
		breadth = req.Breadth
	}
	if req.Depth != 0 {
		depth = req.Depth
	}
	return s.run(ctx, dm.NewResearchQuery(req.Query, breadth, depth)), nil
}

func (s *ResearchService) QuickResearch(ctx context.Context, req *QuickResearchReq) (*ResearchReply, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, errors.BadRequest("EMPTY_QUERY", "query is required")
	}
	return s.run(ctx, dm.NewResearchQuery(req.Query, engine.QuickBreadth, engine.QuickDepth)), nil
}

func (s *ResearchService) run(ctx context.Context, q dm.ResearchQuery) *ResearchReply {
	run := s.eng.Research(ctx, q)
	if run.Degraded > 0 {
		s.log.Warnw("msg", "research finished with placeholders", "run_id", run.ID, "degraded", run.Degraded)
	}
	return &ResearchReply{
		RunID:    run.ID,
		Query:    run.Query.Text,
		Breadth:  run.Query.Breadth,
		Depth:    run.Query.Depth,
		Degraded: run.Degraded,
		Report:   run.Report,
	}
}

func (s *ResearchService) AssessRisks(ctx context.Context, req *RiskReq) (*RiskReply, error) {
	if strings.TrimSpace(req.ResearchData) == "" {
		return nil, errors.BadRequest("EMPTY_RESEARCH_DATA", "research_data is required")
	}
	out := s.eng.AssessRisks(ctx, dm.RiskAssessmentRequest{
		ResearchData:   req.ResearchData,
		Location:       req.Location,
		RiskCategories: req.RiskCategories,
	})
	return &RiskReply{Assessment: out}, nil
}

func (s *ResearchService) Chat(ctx context.Context, req *ChatReq) (*ChatReply, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, errors.BadRequest("EMPTY_MESSAGE", "message is required")
	}
	persona, err := engine.ParsePersona(req.Persona)
	if err != nil {
		return nil, errors.BadRequest("UNKNOWN_PERSONA", err.Error())
	}
	return &ChatReply{Reply: s.eng.ChatAs(ctx, persona, req.Message)}, nil
}
