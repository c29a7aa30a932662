package flattener

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Malcolmdotpeewhy/folderflatten/internal"
	"github.com/Malcolmdotpeewhy/folderflatten/pkg/logger"
)

// SetupSignalHandler 将 SIGINT/SIGTERM 转为协作式取消请求。
// 引擎处理完当前文件后停止，保证已完成的单元都是完整的。
func SetupSignalHandler(c *internal.Canceller) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Get().Warn().Msgf("收到信号 %v，将在当前文件处理完后停止...", sig)
		c.Cancel()
	}()
}
