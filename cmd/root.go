package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "folderflatten",
	Short: "把嵌套子目录中的文件全部平铺到根目录的工具",
	Long: `Folder Flatten 是一个命令行工具，把指定目录下所有子目录中的文件
移动到该目录本身，丢弃子目录层级。

主要功能:
- 递归扫描子目录中的待移动文件
- 三种重名处理策略: rename / overwrite / skip
- 可选解压子目录中的 zip 归档（平铺解压，跳过加密条目）
- 可选清理移动后留下的空目录
- 干跑模式预览结果，不触碰文件系统
- 记录移动明细到 SQLite，支持一键撤销
- TUI 界面实时展示进度`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
