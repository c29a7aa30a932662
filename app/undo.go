package app

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Malcolmdotpeewhy/folderflatten/pkg/database"
	"github.com/Malcolmdotpeewhy/folderflatten/pkg/logger"
	"github.com/Malcolmdotpeewhy/folderflatten/pkg/undo"
)

type UndoOptions struct {
	Root         string
	DatabasePath string
	Verbose      bool
	LogLevel     string
	LogFile      string
}

// RunUndo 撤销指定根目录最近一次已记录的整理运行
func RunUndo(opts *UndoOptions) (*undo.Stats, error) {
	logLevel := opts.LogLevel
	if opts.Verbose {
		logLevel = "debug"
	}
	if err := logger.Init(logLevel, opts.LogFile); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, err
	}

	db, err := database.NewDatabase(opts.DatabasePath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	run, err := db.LastRun(root)
	if err != nil {
		return nil, fmt.Errorf("未找到可撤销的整理记录: %s", root)
	}

	entries, err := db.Entries(run.ID)
	if err != nil {
		return nil, err
	}

	logger.Get().Info().Msgf("撤销运行 %s (%s, %d 条记录)", run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"), len(entries))

	stats := undo.Apply(afero.NewOsFs(), entries)

	if stats.Errors == 0 {
		if err := db.MarkUndone(run.ID); err != nil {
			logger.Get().Error().Err(err).Msg("标记运行为已撤销失败")
		}
	} else {
		logger.Get().Warn().Msgf("存在 %d 条恢复失败的记录，运行保持可撤销状态", stats.Errors)
	}

	return stats, nil
}
