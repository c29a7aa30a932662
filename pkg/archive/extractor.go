package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"path/filepath"

	"github.com/h2non/filetype"
	"github.com/spf13/afero"

	"github.com/Malcolmdotpeewhy/folderflatten/internal"
	"github.com/Malcolmdotpeewhy/folderflatten/pkg/fsutil"
	"github.com/Malcolmdotpeewhy/folderflatten/pkg/logger"
)

// zip 通用标志第 0 位表示条目已加密
const flagEncrypted = 0x1

// 魔数检测所需的头部长度（filetype 要求最多 262 字节）
const headerSize = 262

// Extractor 将 zip 归档的条目平铺解压到整理根目录
type Extractor struct {
	fs       afero.Fs
	root     string
	mode     internal.DuplicateMode
	dryRun   bool
	progress internal.ProgressFunc
}

// Result 单个归档的解压结果
type Result struct {
	Entries      int // 已处理的条目数（含按策略跳过的条目）
	BytesWritten int64
	Overwrites   int
}

func NewExtractor(fs afero.Fs, root string, mode internal.DuplicateMode, dryRun bool, progress internal.ProgressFunc) *Extractor {
	return &Extractor{
		fs:       fs,
		root:     root,
		mode:     mode,
		dryRun:   dryRun,
		progress: progress,
	}
}

func (e *Extractor) emit(ev internal.ProgressEvent) {
	if e.progress != nil {
		e.progress(ev)
	}
}

// Extract 解压单个归档。目录条目跳过，加密条目跳过并发出 error 事件，
// 其余条目丢弃内部目录结构后按重名策略写入根目录。
// 返回的 Result 永不为 nil；出错时包含出错前已累计的计数。
func (e *Extractor) Extract(zipPath string) (*Result, error) {
	res := &Result{}

	f, err := e.fs.Open(zipPath)
	if err != nil {
		return res, err
	}
	defer f.Close()

	fi, err := e.fs.Stat(zipPath)
	if err != nil {
		return res, err
	}

	if !isZipData(f) {
		return res, fmt.Errorf("文件不是有效的 zip 归档: %s", zipPath)
	}

	zr, err := zip.NewReader(f, fi.Size())
	if err != nil {
		return res, err
	}

	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() {
			continue
		}

		if e.dryRun {
			e.simulateEntry(zipPath, entry, res)
			continue
		}

		if entry.Flags&flagEncrypted != 0 {
			msg := fmt.Sprintf("加密条目已跳过: %s", entry.Name)
			logger.Get().Warn().Msgf("%s (归档: %s)", msg, zipPath)
			e.emit(internal.ProgressEvent{
				Phase: internal.PhaseError,
				File:  filepath.Base(zipPath) + ":" + entry.Name,
				Error: msg,
			})
			continue
		}

		if err := e.extractEntry(zipPath, entry, res); err != nil {
			return res, err
		}
	}

	return res, nil
}

// extractEntry 写入单个条目，目标为 root/条目文件名（丢弃归档内目录结构）
func (e *Extractor) extractEntry(zipPath string, entry *zip.File, res *Result) error {
	dest := filepath.Join(e.root, path.Base(entry.Name))
	action := "move"

	if exists, _ := afero.Exists(e.fs, dest); exists {
		switch e.mode {
		case internal.ModeSkip:
			action = "skip"
		case internal.ModeOverwrite:
			action = "overwrite"
			res.Overwrites++
			// 尽力删除，失败时仍按覆盖写入
			if err := e.fs.Remove(dest); err != nil {
				logger.Get().Debug().Err(err).Msgf("删除已有目标失败: %s", dest)
			}
		case internal.ModeRename:
			dest = fsutil.GenerateUniqueName(e.fs, dest)
		}
	}

	if action != "skip" {
		if err := e.fs.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}
		rc, err := entry.Open()
		if err != nil {
			return err
		}
		out, err := e.fs.Create(dest)
		if err != nil {
			rc.Close()
			return err
		}
		_, err = io.Copy(out, rc)
		rc.Close()
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		res.Entries++
		res.BytesWritten += int64(entry.UncompressedSize64)
	} else {
		// 按策略跳过的条目也计入已处理
		res.Entries++
	}

	e.emit(internal.ProgressEvent{
		Phase:  internal.PhaseExtractFile,
		Zip:    zipPath,
		File:   path.Base(entry.Name),
		Dest:   dest,
		Action: action,
	})
	return nil
}

// simulateEntry 干跑模式：只模拟重名决策与计数，不触碰文件系统
func (e *Extractor) simulateEntry(zipPath string, entry *zip.File, res *Result) {
	dest := filepath.Join(e.root, path.Base(entry.Name))
	action := "move"

	if exists, _ := afero.Exists(e.fs, dest); exists {
		switch e.mode {
		case internal.ModeSkip:
			action = "skip"
		case internal.ModeOverwrite:
			action = "overwrite"
			res.Overwrites++
		case internal.ModeRename:
			dest = fsutil.GenerateUniqueName(e.fs, dest)
		}
	}

	res.Entries++
	res.BytesWritten += int64(entry.UncompressedSize64)

	e.emit(internal.ProgressEvent{
		Phase:  internal.PhaseExtractFile,
		Zip:    zipPath,
		File:   path.Base(entry.Name),
		Action: action,
	})
}

// isZipData 读取文件头部并校验 zip 魔数，扩展名说谎的文件走损坏归档路径
func isZipData(r io.ReaderAt) bool {
	buf := make([]byte, headerSize)
	n, err := r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return false
	}
	return filetype.Is(buf[:n], "zip")
}
