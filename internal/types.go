package internal

import (
	"fmt"
	"strings"
)

// 重名处理模式
type DuplicateMode string

const (
	ModeRename    DuplicateMode = "rename"
	ModeOverwrite DuplicateMode = "overwrite"
	ModeSkip      DuplicateMode = "skip"
)

// ParseDuplicateMode 解析并校验重名处理模式
func ParseDuplicateMode(s string) (DuplicateMode, error) {
	mode := DuplicateMode(strings.ToLower(s))
	switch mode {
	case ModeRename, ModeOverwrite, ModeSkip:
		return mode, nil
	}
	return "", fmt.Errorf("无效的重名处理模式: %q (可选: rename, overwrite, skip)", s)
}

// 移动记录类别
const (
	CategoryFile    = "file"
	CategoryArchive = "archive"
)

// 待移动文件
type FileCandidate struct {
	Source string
	Size   int64
}

// 文件移动记录，用于可选的撤销功能
type MoveRecord struct {
	Source      string
	Destination string
	Category    string
}

// 进度阶段
type Phase string

const (
	PhaseScan        Phase = "scan"
	PhaseExtractScan Phase = "extract_scan"
	PhaseExtract     Phase = "extract"
	PhaseExtractFile Phase = "extract_file"
	PhaseMove        Phase = "move"
	PhaseArchiveMove Phase = "archive_move"
	PhaseError       Phase = "error"
	PhaseDone        Phase = "done"
)

// 进度事件，按阶段携带不同字段。引擎只负责推送，不读取任何返回值。
type ProgressEvent struct {
	Phase      Phase
	Current    int
	Total      int
	File       string
	Dest       string
	Source     string
	Zip        string
	ZipIndex   int
	ZipTotal   int
	Action     string
	Reason     string
	Error      string
	Message    string
	Moved      int
	Skipped    int
	Errors     int
	BytesMoved int64
	BytesTotal int64
	Stats      *FlattenStats
}

// 进度回调
type ProgressFunc func(ProgressEvent)

// 整理操作统计
type FlattenStats struct {
	TotalFiles          int
	TotalBytes          int64
	Moved               int
	Skipped             int
	Errors              int
	BytesMoved          int64
	EmptyFoldersRemoved int
	Cancelled           bool

	ArchivesFound       int
	ExtractedEntries    int
	ArchiveBytesWritten int64
	ArchivesMoved       int

	Overwrites    int
	UndoSupported bool
	Moves         []MoveRecord
}

// Summary 返回人类可读的结果摘要
func (s *FlattenStats) Summary() string {
	msg := fmt.Sprintf("处理完成: 移动=%d, 跳过=%d, 错误=%d, 清理空目录=%d",
		s.Moved, s.Skipped, s.Errors, s.EmptyFoldersRemoved)
	if s.Cancelled {
		msg += ", 已取消"
	}
	return msg
}
