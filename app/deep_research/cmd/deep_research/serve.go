package main

import (
	"os"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/spf13/cobra"

	"github.com/iWorld-y/deep_research/app/deep_research/internal/server"
	"github.com/iWorld-y/deep_research/app/deep_research/internal/service"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/logger"
)

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the research API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := c.setup(cmd)
			if err != nil {
				return err
			}

			id, _ := os.Hostname()
			kl := log.With(logger.NewKratosLogger(c.log),
				"service.id", id,
				"service.name", Name,
				"service.version", Version,
			)

			svc := service.NewResearchService(eng, kl)
			hs := server.NewHTTPServer(c.cfg.Server, svc, kl)
			return server.NewApp(Name, Version, kl, hs).Run()
		},
	}
}
