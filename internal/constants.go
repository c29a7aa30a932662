package internal

const (
	// 撤销数据库默认路径
	DefaultDatabasePath = "~/.folderflatten/moves.db"

	// 配置文件默认路径
	DefaultConfigPath = "~/.folderflatten/config.yaml"

	// 归档原始 zip 的默认目录名（位于整理根目录之下）
	DefaultArchiveFolderName = "_archives"

	// 校验和计算的工作线程数
	DefaultWorkers = 4

	// 进度通道缓冲区大小
	DefaultBufferSize = 1000
)
