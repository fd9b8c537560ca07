package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iWorld-y/deep_research/app/deep_research/pkg/config"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/engine"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/logger"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 服务名称
	Name = "deep_research"
	// Version 版本号
	Version string
)

const defaultConf = "app/deep_research/configs/config.yaml"

// EngineFactory 根据配置创建引擎，测试中替换为脚本化模型
type EngineFactory func(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*engine.Engine, error)

type cli struct {
	conf      string
	out       io.Writer
	newEngine EngineFactory

	cfg      *config.Config
	log      *logrus.Logger
	closeLog func()
}

func main() {
	c := &cli{out: os.Stdout, newEngine: engine.NewEngine}
	err := newRootCmd(c).Execute()
	c.close()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           Name,
		Short:         "Multi-aspect deep research and risk assessment on top of a chat completion API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&c.conf, "conf", defaultConf, "config path, eg: --conf config.yaml")

	root.AddCommand(
		newResearchCmd(c),
		newQuickCmd(c),
		newRiskCmd(c),
		newChatCmd(c),
		newServeCmd(c),
	)
	return root
}

// loadConfig 配置文件缺失且未显式指定时，仅使用默认值与环境变量
func (c *cli) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.conf)
	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("conf") {
		return config.Parse(nil)
	}
	return cfg, err
}

// setup 加载配置、初始化日志并创建引擎
func (c *cli) setup(cmd *cobra.Command) (*engine.Engine, error) {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("无法加载配置文件: %w", err)
	}
	lg, cleanup, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, fmt.Errorf("无法初始化日志: %w", err)
	}
	c.cfg, c.log, c.closeLog = cfg, lg, cleanup

	eng, err := c.newEngine(cmd.Context(), cfg, lg)
	if err != nil {
		return nil, err
	}
	return eng, nil
}

// close 关闭日志文件
func (c *cli) close() {
	if c.closeLog != nil {
		c.closeLog()
	}
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
