package flattener

import (
	"os"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/Malcolmdotpeewhy/folderflatten/pkg/logger"
)

// RemoveEmptyDirs 自底向上删除根目录下的空目录，返回删除数量。
// 先删子目录可使父目录在同一趟中变空。根目录本身永不删除，
// 单个目录的权限或非空错误直接跳过，不中断整个清理。
func RemoveEmptyDirs(fs afero.Fs, root string) int {
	var dirs []string
	_ = afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})

	// 按深度降序，保证先子后父
	sep := string(os.PathSeparator)
	sort.Slice(dirs, func(i, j int) bool {
		return strings.Count(dirs[i], sep) > strings.Count(dirs[j], sep)
	})

	count := 0
	for _, dir := range dirs {
		entries, err := afero.ReadDir(fs, dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := fs.Remove(dir); err != nil {
			continue
		}
		count++
		logger.Get().Debug().Msgf("已删除空目录: %s", dir)
	}
	return count
}
