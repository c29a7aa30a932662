package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Malcolmdotpeewhy/folderflatten/config"
	"github.com/Malcolmdotpeewhy/folderflatten/pkg/logger"
	"github.com/Malcolmdotpeewhy/folderflatten/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "以交互界面运行整理操作",
	Long: `启动终端交互界面: 配置目录与重名处理模式，切换各项开关，
实时查看移动进度与最终统计。界面只消费引擎的进度事件流，
不包含任何整理逻辑。`,
	RunE: runTui,
}

func runTui(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// TUI 接管终端，只在配置了日志文件时初始化日志，
	// 否则 logger.Get() 返回丢弃输出的实例
	if cfg.Logging.File != "" {
		if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
			return err
		}
	}

	return tui.Run(&tui.Config{
		DefaultMode:   cfg.Flatten.Mode,
		ArchiveFolder: cfg.Flatten.ArchiveFolder,
	})
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
