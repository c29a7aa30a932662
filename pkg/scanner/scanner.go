package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/Malcolmdotpeewhy/folderflatten/internal"
	"github.com/Malcolmdotpeewhy/folderflatten/pkg/logger"
)

// FileWalker 枚举整理根目录下符合条件的文件与归档
type FileWalker struct {
	Fs            afero.Fs
	IncludeHidden bool
	ExcludeDirs   []string
}

func NewFileWalker(fs afero.Fs) *FileWalker {
	return &FileWalker{
		Fs: fs,
	}
}

// IsHidden 以约定的点前缀判断隐藏文件
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// IsArchivePath 按扩展名识别 zip 归档（不区分大小写）
func IsArchivePath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zip")
}

// excluded 判断 path 是否位于某个被排除目录的子树内。
// 匹配语义：相对根目录的各级目录名精确匹配排除名单。
func (w *FileWalker) excluded(root, path string) bool {
	if len(w.ExcludeDirs) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, filepath.Dir(path))
	if err != nil || rel == "." {
		return false
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		for _, name := range w.ExcludeDirs {
			if part == name {
				return true
			}
		}
	}
	return false
}

// eligible 判断一个文件条目是否属于整理范围：
// 必须位于子目录中（根目录下的文件不动），隐藏文件按开关过滤，排除子树跳过。
func (w *FileWalker) eligible(root, path string, info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if filepath.Dir(path) == root {
		return false
	}
	if !w.IncludeHidden && IsHidden(info.Name()) {
		return false
	}
	return !w.excluded(root, path)
}

// ListFiles 列出根目录所有子目录中的待移动文件。
// 单个条目的遍历或 stat 失败只跳过该条目，绝不中断整次扫描。
func (w *FileWalker) ListFiles(root string) ([]internal.FileCandidate, error) {
	var files []internal.FileCandidate
	err := afero.Walk(w.Fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logger.Get().Debug().Err(err).Msgf("跳过无法访问的条目: %s", path)
			return nil
		}
		if !w.eligible(root, path, info) {
			return nil
		}
		files = append(files, internal.FileCandidate{
			Source: path,
			Size:   info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// FindArchives 列出子目录中的 zip 归档，过滤规则与 ListFiles 一致。
// 只返回不在根目录本身的归档，避免重复处理已在目标位置的 zip。
func (w *FileWalker) FindArchives(root string) ([]string, error) {
	var zips []string
	err := afero.Walk(w.Fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !w.eligible(root, path, info) {
			return nil
		}
		if IsArchivePath(path) {
			zips = append(zips, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return zips, nil
}
