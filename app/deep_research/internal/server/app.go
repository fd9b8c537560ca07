package server

import (
	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"
)

// NewApp 组装 kratos 应用，负责信号处理与优雅退出
func NewApp(name, version string, logger log.Logger, hs *http.Server) *kratos.App {
	return kratos.New(
		kratos.Name(name),
		kratos.Version(version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(hs),
	)
}
