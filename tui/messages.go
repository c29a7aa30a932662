package tui

import "github.com/Malcolmdotpeewhy/folderflatten/internal"

// 引擎进度事件（逐条转发）
type progressEventMsg internal.ProgressEvent

// 引擎运行结束
type flattenFinishedMsg struct {
	stats *internal.FlattenStats
	err   error
}
