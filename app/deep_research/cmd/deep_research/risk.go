package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	dm "github.com/iWorld-y/deep_research/app/deep_research/pkg/model"
)

func newRiskCmd(c *cli) *cobra.Command {
	var (
		req      dm.RiskAssessmentRequest
		dataFile string
	)
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Assess risks for a location, building or asset from research data",
		Long: `Perform a risk assessment over supplied research data.

Examples:
  deep_research risk --data-file report.md --location "Golden Gate Bridge"
  deep_research risk --data "..." --categories "environmental, financial"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dataFile != "" {
				data, err := os.ReadFile(dataFile)
				if err != nil {
					return fmt.Errorf("读取研究资料失败: %w", err)
				}
				req.ResearchData = string(data)
			}
			if strings.TrimSpace(req.ResearchData) == "" {
				return errors.New("research data is required: use --data or --data-file")
			}

			eng, err := c.setup(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.out, eng.AssessRisks(cmd.Context(), req))
			return err
		},
	}
	cmd.Flags().StringVar(&req.ResearchData, "data", "", "research data about the location or building")
	cmd.Flags().StringVar(&dataFile, "data-file", "", "read research data from this file")
	cmd.Flags().StringVarP(&req.Location, "location", "l", "", "the location, building or asset being assessed")
	cmd.Flags().StringVarP(&req.RiskCategories, "categories", "c", "", "risk categories to focus on")
	cmd.MarkFlagsMutuallyExclusive("data", "data-file")
	return cmd
}
