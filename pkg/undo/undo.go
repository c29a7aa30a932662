package undo

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Malcolmdotpeewhy/folderflatten/pkg/database"
	"github.com/Malcolmdotpeewhy/folderflatten/pkg/fsutil"
	"github.com/Malcolmdotpeewhy/folderflatten/pkg/hasher"
	"github.com/Malcolmdotpeewhy/folderflatten/pkg/logger"
)

// Stats 一次撤销操作的结果
type Stats struct {
	Restored int
	Skipped  int
	Errors   int
}

// Apply 按记录的逆序将文件从目标位置移回原位置。
// 目标已消失、校验和不匹配或原位置被重新占用的记录跳过，
// 单条记录失败不影响其余记录。
func Apply(fs afero.Fs, entries []database.MoveEntry) *Stats {
	stats := &Stats{}

	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]

		if exists, _ := afero.Exists(fs, e.Destination); !exists {
			logger.Get().Warn().Msgf("目标文件已不存在，跳过: %s", e.Destination)
			stats.Skipped++
			continue
		}

		if e.Checksum != "" && !checksumMatches(e.Destination, e.Checksum) {
			logger.Get().Warn().Msgf("文件在整理后被修改，跳过恢复: %s", e.Destination)
			stats.Skipped++
			continue
		}

		if exists, _ := afero.Exists(fs, e.Source); exists {
			logger.Get().Warn().Msgf("原位置已被占用，跳过恢复: %s", e.Source)
			stats.Skipped++
			continue
		}

		err := fs.MkdirAll(filepath.Dir(e.Source), 0755)
		if err == nil {
			err = fsutil.MoveFile(fs, e.Destination, e.Source)
		}
		if err != nil {
			logger.Get().Error().Err(err).Msgf("恢复文件失败: %s", e.Destination)
			stats.Errors++
			continue
		}

		stats.Restored++
		logger.Get().Debug().Msgf("已恢复: %s -> %s", e.Destination, e.Source)
	}

	return stats
}

// ChecksumString 将哈希值编码为存入数据库的十六进制串
func ChecksumString(hash uint64) string {
	return fmt.Sprintf("%016x", hash)
}

func checksumMatches(path, want string) bool {
	h, err := hasher.CalculateHash(path)
	if err != nil {
		return false
	}
	return ChecksumString(h) == want
}
