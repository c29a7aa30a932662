package fsutil

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// GenerateUniqueName 通过在扩展名前追加自增序号生成不冲突的目标路径。
// 示例: file.txt -> file_1.txt, file_2.txt, ...
func GenerateUniqueName(fs afero.Fs, target string) string {
	if exists, _ := afero.Exists(fs, target); !exists {
		return target
	}

	ext := filepath.Ext(target)
	stem := strings.TrimSuffix(target, ext)

	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if exists, _ := afero.Exists(fs, candidate); !exists {
			return candidate
		}
	}
}

// MoveFile 移动文件，Rename 失败时（如跨设备）回退为复制后删除
func MoveFile(fs afero.Fs, src, dst string) error {
	if err := fs.Rename(src, dst); err == nil {
		return nil
	}
	if err := CopyFile(fs, src, dst); err != nil {
		return err
	}
	return fs.Remove(src)
}

// CopyFile 复制文件内容
func CopyFile(fs afero.Fs, src, dst string) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fs.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
