package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Malcolmdotpeewhy/folderflatten/app"
	"github.com/Malcolmdotpeewhy/folderflatten/config"
)

var undoCmd = &cobra.Command{
	Use:   "undo <目录>",
	Short: "撤销最近一次已记录的整理操作",
	Long: `读取撤销数据库中指定目录最近一次未撤销的整理运行，
按记录的逆序把文件移回原位置。恢复前校验文件未被修改，
目标消失或原位置被占用的记录会跳过。`,
	Args: cobra.ExactArgs(1),
	RunE: runUndo,
}

func runUndo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = cfg.Database.Path
	}
	verbose, _ := cmd.Flags().GetBool("verbose")

	stats, err := app.RunUndo(&app.UndoOptions{
		Root:         args[0],
		DatabasePath: dbPath,
		Verbose:      verbose,
		LogLevel:     cfg.Logging.Level,
		LogFile:      cfg.Logging.File,
	})
	if err != nil {
		return err
	}

	fmt.Printf("撤销完成: 恢复=%d, 跳过=%d, 失败=%d\n", stats.Restored, stats.Skipped, stats.Errors)
	return nil
}

func init() {
	undoCmd.Flags().String("db", "", "撤销数据库路径")
	undoCmd.Flags().BoolP("verbose", "v", false, "显示每条记录的恢复详情")

	rootCmd.AddCommand(undoCmd)
}
