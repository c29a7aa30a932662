package flattener

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Malcolmdotpeewhy/folderflatten/internal"
	"github.com/Malcolmdotpeewhy/folderflatten/pkg/archive"
	"github.com/Malcolmdotpeewhy/folderflatten/pkg/fsutil"
	"github.com/Malcolmdotpeewhy/folderflatten/pkg/logger"
	"github.com/Malcolmdotpeewhy/folderflatten/pkg/scanner"
)

// Options 一次整理操作的全部参数
type Options struct {
	Root             string
	DuplicateMode    internal.DuplicateMode
	RemoveEmpty      bool
	IncludeHidden    bool
	DryRun           bool
	ExtractArchives  bool
	ArchiveOriginals bool
	ArchiveFolder    string
	RecordMoves      bool
	ExcludeDirs      []string
}

// Flattener 将子目录中的文件全部移动到根目录。
// 引擎本身单线程同步执行，设计为在后台 goroutine 中调用，
// 通过进度回调推送事件、通过取消标志协作式中止。
type Flattener struct {
	fs       afero.Fs
	opts     Options
	progress internal.ProgressFunc
	cancel   *internal.Canceller
}

func New(fs afero.Fs, opts Options, progress internal.ProgressFunc, cancel *internal.Canceller) *Flattener {
	return &Flattener{
		fs:       fs,
		opts:     opts,
		progress: progress,
		cancel:   cancel,
	}
}

func (f *Flattener) emit(ev internal.ProgressEvent) {
	if f.progress != nil {
		f.progress(ev)
	}
}

func (f *Flattener) cancelled() bool {
	return f.cancel != nil && f.cancel.Cancelled()
}

// Run 执行整理: 校验 → 解压归档(可选) → 扫描 → 移动 → 清理空目录(可选) → 汇总。
// 校验失败在产生任何副作用前立即返回错误。
func (f *Flattener) Run() (*internal.FlattenStats, error) {
	root, err := filepath.Abs(f.opts.Root)
	if err != nil {
		return nil, err
	}
	fi, err := f.fs.Stat(root)
	if err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("无效目录: %s", root)
	}
	if _, err := internal.ParseDuplicateMode(string(f.opts.DuplicateMode)); err != nil {
		return nil, err
	}

	logger.Get().Info().Msgf("开始整理目录: %s (模式: %s, 干跑: %v)", root, f.opts.DuplicateMode, f.opts.DryRun)

	stats := &internal.FlattenStats{}

	walker := scanner.NewFileWalker(f.fs)
	walker.IncludeHidden = f.opts.IncludeHidden
	walker.ExcludeDirs = f.opts.ExcludeDirs

	if f.opts.ExtractArchives {
		f.extractPhase(root, walker, stats)
	}

	files, err := walker.ListFiles(root)
	if err != nil {
		return nil, err
	}
	if f.opts.ExtractArchives {
		// 归档已在解压阶段处理，避免二次搬运
		kept := files[:0]
		for _, c := range files {
			if !scanner.IsArchivePath(c.Source) {
				kept = append(kept, c)
			}
		}
		files = kept
	}

	stats.TotalFiles = len(files)
	for _, c := range files {
		stats.TotalBytes += c.Size
	}

	f.emit(internal.ProgressEvent{
		Phase:      internal.PhaseScan,
		Current:    0,
		Total:      stats.TotalFiles,
		BytesTotal: stats.TotalBytes,
		Message:    fmt.Sprintf("找到 %d 个待移动文件 (%s)", stats.TotalFiles, internal.HumanSize(stats.TotalBytes)),
	})

	for idx, c := range files {
		if f.cancelled() {
			stats.Cancelled = true
			logger.Get().Warn().Msgf("操作已取消，剩余 %d 个文件未处理", stats.TotalFiles-idx)
			break
		}
		f.moveOne(root, idx+1, c, stats)
	}

	if f.opts.RemoveEmpty && !stats.Cancelled && !f.opts.DryRun {
		stats.EmptyFoldersRemoved = RemoveEmptyDirs(f.fs, root)
	}

	stats.UndoSupported = !f.opts.DryRun &&
		!f.opts.ExtractArchives &&
		stats.Overwrites == 0 &&
		!stats.Cancelled

	logger.Get().Info().Msg(stats.Summary())
	f.emit(internal.ProgressEvent{
		Phase:   internal.PhaseDone,
		Stats:   stats,
		Message: stats.Summary(),
	})

	return stats, nil
}

// extractPhase 解压子目录中的全部 zip 归档。单个归档损坏只记录并继续，
// 绝不中断整个批次。
func (f *Flattener) extractPhase(root string, walker *scanner.FileWalker, stats *internal.FlattenStats) {
	zips, err := walker.FindArchives(root)
	if err != nil {
		logger.Get().Error().Err(err).Msg("扫描归档失败")
		return
	}
	stats.ArchivesFound = len(zips)

	f.emit(internal.ProgressEvent{
		Phase:   internal.PhaseExtractScan,
		Total:   stats.ArchivesFound,
		Message: fmt.Sprintf("发现 %d 个待解压归档", stats.ArchivesFound),
	})

	archiveOriginals := f.opts.ArchiveOriginals
	archiveFolder := f.opts.ArchiveFolder
	if archiveOriginals {
		if archiveFolder == "" {
			archiveFolder = filepath.Join(root, internal.DefaultArchiveFolderName)
		}
		if !f.opts.DryRun {
			if err := f.fs.MkdirAll(archiveFolder, 0755); err != nil {
				logger.Get().Error().Err(err).Msgf("无法创建归档目录 %s，本次运行停用归档原件", archiveFolder)
				archiveOriginals = false
			}
		}
	}

	ex := archive.NewExtractor(f.fs, root, f.opts.DuplicateMode, f.opts.DryRun, f.progress)

	for i, zipPath := range zips {
		if f.cancelled() {
			break
		}

		f.emit(internal.ProgressEvent{
			Phase:    internal.PhaseExtract,
			Zip:      zipPath,
			ZipIndex: i + 1,
			ZipTotal: stats.ArchivesFound,
			Message:  fmt.Sprintf("正在解压 %s", filepath.Base(zipPath)),
		})

		res, err := ex.Extract(zipPath)
		stats.ExtractedEntries += res.Entries
		stats.ArchiveBytesWritten += res.BytesWritten
		stats.Overwrites += res.Overwrites
		if err != nil {
			logger.Get().Error().Err(err).Msgf("损坏或无法读取的归档: %s", zipPath)
			f.emit(internal.ProgressEvent{
				Phase: internal.PhaseError,
				File:  zipPath,
				Error: fmt.Sprintf("无法解压归档: %v", err),
			})
			continue
		}

		if archiveOriginals {
			f.moveArchiveOriginal(zipPath, archiveFolder, stats)
		}
	}
}

// moveArchiveOriginal 解压成功后将原始归档移入归档目录，目标名冲突时自动改名
func (f *Flattener) moveArchiveOriginal(zipPath, folder string, stats *internal.FlattenStats) {
	target := fsutil.GenerateUniqueName(f.fs, filepath.Join(folder, filepath.Base(zipPath)))

	if !f.opts.DryRun {
		err := f.fs.MkdirAll(filepath.Dir(target), 0755)
		if err == nil {
			err = fsutil.MoveFile(f.fs, zipPath, target)
		}
		if err != nil {
			logger.Get().Error().Err(err).Msgf("移动归档失败: %s", zipPath)
			f.emit(internal.ProgressEvent{
				Phase: internal.PhaseError,
				File:  zipPath,
				Error: err.Error(),
			})
			return
		}
		if f.opts.RecordMoves {
			stats.Moves = append(stats.Moves, internal.MoveRecord{
				Source:      zipPath,
				Destination: target,
				Category:    internal.CategoryArchive,
			})
		}
	}

	stats.ArchivesMoved++
	f.emit(internal.ProgressEvent{
		Phase:  internal.PhaseArchiveMove,
		Source: zipPath,
		Dest:   target,
	})
}

// moveOne 处理单个待移动文件：应用重名策略后移动（或干跑模拟）。
// 任何文件系统错误只影响当前文件，计入错误后继续下一个。
func (f *Flattener) moveOne(root string, idx int, c internal.FileCandidate, stats *internal.FlattenStats) {
	dest := filepath.Join(root, filepath.Base(c.Source))
	action := "move"
	reason := ""

	if exists, _ := afero.Exists(f.fs, dest); exists {
		switch f.opts.DuplicateMode {
		case internal.ModeSkip:
			action = "skip"
			stats.Skipped++
		case internal.ModeOverwrite:
			action = "overwrite"
			stats.Overwrites++
			if !f.opts.DryRun {
				// 尽力删除已有目标，失败时仍尝试移动（两步各自可失败）
				if err := f.fs.Remove(dest); err != nil {
					logger.Get().Warn().Err(err).Msgf("删除已有目标失败: %s", dest)
				}
			}
		case internal.ModeRename:
			dest = fsutil.GenerateUniqueName(f.fs, dest)
		}
	}

	if action == "skip" {
		reason = "duplicate"
	} else if f.opts.DryRun {
		stats.Moved++
		stats.BytesMoved += c.Size
	} else {
		err := f.fs.MkdirAll(filepath.Dir(dest), 0755)
		if err == nil {
			err = fsutil.MoveFile(f.fs, c.Source, dest)
		}
		if err != nil {
			stats.Errors++
			logger.Get().Error().Err(err).Msgf("移动文件失败: %s", c.Source)
			f.emit(internal.ProgressEvent{
				Phase:      internal.PhaseError,
				Current:    idx,
				Total:      stats.TotalFiles,
				File:       c.Source,
				Error:      err.Error(),
				Moved:      stats.Moved,
				Skipped:    stats.Skipped,
				Errors:     stats.Errors,
				BytesMoved: stats.BytesMoved,
				BytesTotal: stats.TotalBytes,
			})
			return
		}
		stats.Moved++
		stats.BytesMoved += c.Size
		if f.opts.RecordMoves {
			stats.Moves = append(stats.Moves, internal.MoveRecord{
				Source:      c.Source,
				Destination: dest,
				Category:    internal.CategoryFile,
			})
		}
	}

	f.emit(internal.ProgressEvent{
		Phase:      internal.PhaseMove,
		Current:    idx,
		Total:      stats.TotalFiles,
		File:       c.Source,
		Dest:       dest,
		Action:     action,
		Reason:     reason,
		Moved:      stats.Moved,
		Skipped:    stats.Skipped,
		Errors:     stats.Errors,
		BytesMoved: stats.BytesMoved,
		BytesTotal: stats.TotalBytes,
	})
}
