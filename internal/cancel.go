package internal

import "sync/atomic"

// Canceller 协作式取消标志。引擎在每个归档和每次文件移动前轮询，
// 绝不打断正在进行的单个文件操作。
type Canceller struct {
	flag atomic.Bool
}

func NewCanceller() *Canceller {
	return &Canceller{}
}

// Cancel 请求取消，可从任意 goroutine 调用
func (c *Canceller) Cancel() {
	c.flag.Store(true)
}

// Cancelled 报告是否已请求取消
func (c *Canceller) Cancelled() bool {
	return c.flag.Load()
}
