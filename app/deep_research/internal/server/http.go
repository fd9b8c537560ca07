package server

import (
	"context"
	"time"

	_ "github.com/go-kratos/kratos/v2/encoding/json"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iWorld-y/deep_research/app/deep_research/internal/service"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/config"
)

const (
	OperationResearch      = "/deep_research.v1.Research/Research"
	OperationQuickResearch = "/deep_research.v1.Research/QuickResearch"
	OperationAssessRisks   = "/deep_research.v1.Research/AssessRisks"
	OperationChat          = "/deep_research.v1.Research/Chat"
)

func NewHTTPServer(c config.ServerConfig, s *service.ResearchService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c.Addr != "" {
		opts = append(opts, http.Address(c.Addr))
	}
	if c.Timeout != "" {
		if d, err := time.ParseDuration(c.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)
	RegisterResearchHTTPServer(srv, s)
	srv.Handle("/metrics", promhttp.Handler())
	log.NewHelper(logger).Infof("HTTP 服务地址: %s", c.Addr)
	return srv
}

// RegisterResearchHTTPServer 注册 JSON 接口
func RegisterResearchHTTPServer(srv *http.Server, s *service.ResearchService) {
	r := srv.Route("/")
	r.POST("/v1/research", handler(OperationResearch, s.Research))
	r.POST("/v1/research/quick", handler(OperationQuickResearch, s.QuickResearch))
	r.POST("/v1/risk", handler(OperationAssessRisks, s.AssessRisks))
	r.POST("/v1/chat", handler(OperationChat, s.Chat))
}

func handler[Req, Reply any](operation string, fn func(context.Context, *Req) (*Reply, error)) http.HandlerFunc {
	return func(ctx http.Context) error {
		var in Req
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, operation)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return fn(ctx, req.(*Req))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*Reply))
	}
}
