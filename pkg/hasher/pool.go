package hasher

import (
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/Malcolmdotpeewhy/folderflatten/pkg/logger"
)

// Result 单个文件的哈希结果
type Result struct {
	Path string
	Hash uint64
	Err  error
}

// HashFiles 用 goroutine 池并发计算一批文件的哈希，
// 结果顺序与输入一致。池创建失败时退化为顺序计算。
func HashFiles(paths []string, workers int) []Result {
	results := make([]Result, len(paths))

	pool, err := ants.NewPool(workers)
	if err != nil {
		logger.Get().Warn().Err(err).Msg("创建 goroutine 池失败，改为顺序计算")
		for i, p := range paths {
			h, err := CalculateHash(p)
			results[i] = Result{Path: p, Hash: h, Err: err}
		}
		return results
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, p := range paths {
		i, p := i, p
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			h, err := CalculateHash(p)
			results[i] = Result{Path: p, Hash: h, Err: err}
		})
		if submitErr != nil {
			wg.Done()
			h, err := CalculateHash(p)
			results[i] = Result{Path: p, Hash: h, Err: err}
		}
	}
	wg.Wait()

	return results
}
