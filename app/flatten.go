package app

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/Malcolmdotpeewhy/folderflatten/internal"
	"github.com/Malcolmdotpeewhy/folderflatten/pkg/database"
	"github.com/Malcolmdotpeewhy/folderflatten/pkg/flattener"
	"github.com/Malcolmdotpeewhy/folderflatten/pkg/hasher"
	"github.com/Malcolmdotpeewhy/folderflatten/pkg/logger"
	"github.com/Malcolmdotpeewhy/folderflatten/pkg/undo"
)

type FlattenOptions struct {
	Root             string
	Mode             string
	RemoveEmpty      bool
	IncludeHidden    bool
	DryRun           bool
	ExtractArchives  bool
	ArchiveOriginals bool
	ArchiveFolder    string
	RecordMoves      bool
	ExcludeDirs      []string
	DatabasePath     string
	Verbose          bool
	LogLevel         string
	LogFile          string
}

// RunFlatten 执行一次完整的整理操作并在需要时写入撤销日志
func RunFlatten(opts *FlattenOptions) (*internal.FlattenStats, error) {
	logLevel := opts.LogLevel
	if opts.Verbose {
		logLevel = "debug"
	}
	if err := logger.Init(logLevel, opts.LogFile); err != nil {
		return nil, err
	}

	mode, err := internal.ParseDuplicateMode(opts.Mode)
	if err != nil {
		return nil, err
	}

	canceller := internal.NewCanceller()
	flattener.SetupSignalHandler(canceller)

	fl := flattener.New(afero.NewOsFs(), flattener.Options{
		Root:             opts.Root,
		DuplicateMode:    mode,
		RemoveEmpty:      opts.RemoveEmpty,
		IncludeHidden:    opts.IncludeHidden,
		DryRun:           opts.DryRun,
		ExtractArchives:  opts.ExtractArchives,
		ArchiveOriginals: opts.ArchiveOriginals,
		ArchiveFolder:    opts.ArchiveFolder,
		RecordMoves:      opts.RecordMoves,
		ExcludeDirs:      opts.ExcludeDirs,
	}, logProgress, canceller)

	stats, err := fl.Run()
	if err != nil {
		return nil, err
	}

	if opts.RecordMoves && stats.UndoSupported && len(stats.Moves) > 0 {
		if err := saveUndoLog(opts, stats); err != nil {
			// 撤销日志写入失败不影响整理结果本身
			logger.Get().Error().Err(err).Msg("保存撤销记录失败")
		}
	}

	return stats, nil
}

// logProgress 将引擎事件转为日志输出（命令行模式的事件消费者）
func logProgress(ev internal.ProgressEvent) {
	switch ev.Phase {
	case internal.PhaseScan, internal.PhaseExtractScan, internal.PhaseExtract:
		logger.Get().Info().Msg(ev.Message)
	case internal.PhaseMove:
		logger.Get().Debug().Msgf("[%d/%d] %s: %s -> %s", ev.Current, ev.Total, ev.Action, ev.File, ev.Dest)
	case internal.PhaseExtractFile:
		logger.Get().Debug().Msgf("解压条目 %s (%s)", ev.File, ev.Action)
	case internal.PhaseArchiveMove:
		logger.Get().Debug().Msgf("归档原件已移动: %s -> %s", ev.Source, ev.Dest)
	case internal.PhaseError:
		logger.Get().Error().Msgf("%s: %s", ev.File, ev.Error)
	}
}

// saveUndoLog 为可撤销的运行记录移动明细，目标文件校验和并发计算
func saveUndoLog(opts *FlattenOptions, stats *internal.FlattenStats) error {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return err
	}

	db, err := database.NewDatabase(opts.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	paths := make([]string, len(stats.Moves))
	for i, m := range stats.Moves {
		paths[i] = m.Destination
	}
	results := hasher.HashFiles(paths, internal.DefaultWorkers)

	entries := make([]database.MoveEntry, len(stats.Moves))
	for i, m := range stats.Moves {
		checksum := ""
		if results[i].Err == nil {
			checksum = undo.ChecksumString(results[i].Hash)
		}
		entries[i] = database.MoveEntry{
			Seq:         i,
			Source:      m.Source,
			Destination: m.Destination,
			Category:    m.Category,
			Checksum:    checksum,
		}
	}

	run := &database.FlattenRun{
		ID:        uuid.New().String(),
		Root:      root,
		Mode:      opts.Mode,
		Moved:     stats.Moved,
		CreatedAt: time.Now(),
	}

	if err := db.SaveRun(run, entries); err != nil {
		return err
	}

	logger.Get().Info().Msgf("已记录 %d 条移动明细，可用 undo 命令撤销 (运行 ID: %s)", len(entries), run.ID)
	return nil
}
