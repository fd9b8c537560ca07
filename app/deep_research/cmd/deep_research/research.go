package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	dm "github.com/iWorld-y/deep_research/app/deep_research/pkg/model"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/report"
)

type researchFlags struct {
	breadth int
	depth   int
	out     string
	html    string
}

func newResearchCmd(c *cli) *cobra.Command {
	var f researchFlags
	cmd := &cobra.Command{
		Use:   "research <query>",
		Short: "Run a deep research and print the markdown report",
		Long: `Generate a research outline, research every aspect over several iterations
and assemble a markdown report.

Examples:
  deep_research research "renewable energy trends" --breadth 3 --depth 2
  deep_research research "quantum computing" --out report.md --html report.html`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := c.setup(cmd)
			if err != nil {
				return err
			}
			breadth, depth := eng.Defaults()
			if cmd.Flags().Changed("breadth") {
				breadth = f.breadth
			}
			if cmd.Flags().Changed("depth") {
				depth = f.depth
			}
			run := eng.Research(cmd.Context(), dm.NewResearchQuery(joinArgs(args), breadth, depth))
			if run.Degraded > 0 {
				c.log.Warnf("研究完成，但有 %d 个步骤使用了占位内容 (run_id: %s)", run.Degraded, run.ID)
			}
			return c.writeReport(run, f)
		},
	}
	cmd.Flags().IntVarP(&f.breadth, "breadth", "b", 0, "number of research aspects, 1-10 (default from config)")
	cmd.Flags().IntVarP(&f.depth, "depth", "d", 0, "iterations per aspect, 1-5 (default from config)")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "write the markdown report to this file instead of stdout")
	cmd.Flags().StringVar(&f.html, "html", "", "also write the report as a standalone HTML page")
	return cmd
}

func newQuickCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "quick <query>",
		Short: "Run a quick research (2 aspects, 1 iteration)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := c.setup(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.out, eng.QuickResearch(cmd.Context(), joinArgs(args)))
			return err
		},
	}
}

func (c *cli) writeReport(run *dm.Run, f researchFlags) error {
	if f.out == "" {
		if _, err := fmt.Fprint(c.out, run.Report); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(f.out, []byte(run.Report), 0o644); err != nil {
			return fmt.Errorf("写入报告失败: %w", err)
		}
		c.log.Infof("✅ 报告已写入: %s", f.out)
	}

	if f.html != "" {
		page, err := report.RenderHTML("Deep Research Report: "+run.Query.Text, run.Report)
		if err != nil {
			return err
		}
		if err := os.WriteFile(f.html, page, 0o644); err != nil {
			return fmt.Errorf("写入 HTML 失败: %w", err)
		}
		c.log.Infof("✅ HTML 报告已写入: %s", f.html)
	}
	return nil
}
