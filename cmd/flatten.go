package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Malcolmdotpeewhy/folderflatten/app"
	"github.com/Malcolmdotpeewhy/folderflatten/config"
	"github.com/Malcolmdotpeewhy/folderflatten/internal"
	"github.com/Malcolmdotpeewhy/folderflatten/pkg/logger"
)

var flattenCmd = &cobra.Command{
	Use:   "flatten <目录>",
	Short: "把子目录中的文件平铺到指定目录",
	Long: `扫描指定目录的所有子目录，把其中的文件移动到目录本身:
1. 校验目录与重名处理模式
2. 可选: 解压子目录中的 zip 归档到根目录
3. 移动文件，按 rename/overwrite/skip 处理重名
4. 可选: 清理移动后留下的空目录
5. 输出统计结果，可选记录移动明细用于撤销`,
	Args: cobra.ExactArgs(1),
	RunE: runFlatten,
}

func runFlatten(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	mode, _ := cmd.Flags().GetString("mode")
	if mode == "" {
		mode = cfg.Flatten.Mode
	}
	removeEmpty, _ := cmd.Flags().GetBool("remove-empty")
	includeHidden, _ := cmd.Flags().GetBool("include-hidden")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	extractArchives, _ := cmd.Flags().GetBool("extract-archives")
	archiveOriginals, _ := cmd.Flags().GetBool("archive-originals")
	archiveFolder, _ := cmd.Flags().GetString("archive-folder")
	recordMoves, _ := cmd.Flags().GetBool("record-moves")
	excludeDirs, _ := cmd.Flags().GetStringSlice("exclude")
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = cfg.Database.Path
	}
	verbose, _ := cmd.Flags().GetBool("verbose")

	opts := &app.FlattenOptions{
		Root:             args[0],
		Mode:             mode,
		RemoveEmpty:      removeEmpty,
		IncludeHidden:    includeHidden,
		DryRun:           dryRun,
		ExtractArchives:  extractArchives,
		ArchiveOriginals: archiveOriginals,
		ArchiveFolder:    archiveFolder,
		RecordMoves:      recordMoves,
		ExcludeDirs:      excludeDirs,
		DatabasePath:     dbPath,
		Verbose:          verbose,
		LogLevel:         cfg.Logging.Level,
		LogFile:          cfg.Logging.File,
	}

	stats, err := app.RunFlatten(opts)
	if err != nil {
		return err
	}

	printFlattenStats(stats, dryRun)
	return nil
}

func printFlattenStats(stats *internal.FlattenStats, dryRun bool) {
	logger.Get().Info().Msg("========== 整理完成 ==========")
	if dryRun {
		logger.Get().Info().Msg("干跑模式: 未修改任何文件")
	}
	logger.Get().Info().Msgf("发现文件: %d 个 (%s)", stats.TotalFiles, internal.HumanSize(stats.TotalBytes))
	logger.Get().Info().Msgf("已移动: %d 个 (%s)", stats.Moved, internal.HumanSize(stats.BytesMoved))
	logger.Get().Info().Msgf("已跳过: %d 个", stats.Skipped)
	logger.Get().Info().Msgf("错误: %d 个", stats.Errors)
	logger.Get().Info().Msgf("清理空目录: %d 个", stats.EmptyFoldersRemoved)
	if stats.ArchivesFound > 0 {
		logger.Get().Info().Msgf("归档: 发现 %d 个, 解压条目 %d 个 (%s), 移入归档目录 %d 个",
			stats.ArchivesFound, stats.ExtractedEntries,
			internal.HumanSize(stats.ArchiveBytesWritten), stats.ArchivesMoved)
	}
	if stats.Cancelled {
		logger.Get().Warn().Msg("操作被取消，结果为部分完成")
	}
	if stats.UndoSupported && len(stats.Moves) > 0 {
		logger.Get().Info().Msg("本次运行支持撤销 (folderflatten undo <目录>)")
	}
	logger.Get().Info().Msg("============================")

	if stats.Errors > 0 {
		fmt.Printf("完成，但有 %d 个文件处理失败，详见日志\n", stats.Errors)
	}
}

func init() {
	flattenCmd.Flags().StringP("mode", "m", "", "重名处理模式: rename/overwrite/skip (默认取配置)")
	flattenCmd.Flags().Bool("remove-empty", true, "移动后清理空目录")
	flattenCmd.Flags().Bool("include-hidden", false, "包含隐藏文件（点开头）")
	flattenCmd.Flags().BoolP("dry-run", "n", false, "预览模式，不实际修改文件")
	flattenCmd.Flags().Bool("extract-archives", false, "解压子目录中的 zip 归档")
	flattenCmd.Flags().Bool("archive-originals", false, "解压后把原始 zip 移入归档目录")
	flattenCmd.Flags().String("archive-folder", "", "归档目录路径 (默认: <目录>/_archives)")
	flattenCmd.Flags().Bool("record-moves", false, "记录移动明细到数据库，支持撤销")
	flattenCmd.Flags().StringSlice("exclude", nil, "排除的目录名，可重复指定")
	flattenCmd.Flags().String("db", "", "撤销数据库路径")
	flattenCmd.Flags().BoolP("verbose", "v", false, "显示每个文件的处理详情")

	rootCmd.AddCommand(flattenCmd)
}
