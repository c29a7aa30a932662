package database

import (
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Malcolmdotpeewhy/folderflatten/pkg/logger"
)

// FlattenRun 一次已记录的整理运行
type FlattenRun struct {
	ID        string    `gorm:"primaryKey"`
	Root      string    `gorm:"index;not null"`
	Mode      string    `gorm:"not null"`
	Moved     int       `gorm:"not null"`
	Undone    bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (FlattenRun) TableName() string {
	return "flatten_runs"
}

// MoveEntry 运行中的一条移动记录，Seq 保持引擎产生的顺序
type MoveEntry struct {
	ID          int64  `gorm:"primaryKey"`
	RunID       string `gorm:"index;not null"`
	Seq         int    `gorm:"not null"`
	Source      string `gorm:"not null"`
	Destination string `gorm:"not null"`
	Category    string `gorm:"not null"`
	Checksum    string
}

func (MoveEntry) TableName() string {
	return "move_entries"
}

// Database 整理运行的撤销日志存储
type Database struct {
	db *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	expandedPath, err := expandPath(dbPath)
	if err != nil {
		logger.Get().Error().Err(err).Msg("扩展数据库路径失败")
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(expandedPath), 0755); err != nil {
		logger.Get().Error().Err(err).Msgf("创建数据库目录失败: %s", filepath.Dir(expandedPath))
		return nil, err
	}

	dsn := expandedPath + "?_pragma=journal_mode(WAL)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Get().Error().Err(err).Msg("打开数据库连接失败")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(&FlattenRun{}, &MoveEntry{}); err != nil {
		logger.Get().Error().Err(err).Msg("创建数据库表失败")
		return nil, err
	}

	logger.Get().Debug().Msgf("撤销日志数据库就绪: %s", expandedPath)
	return &Database{db: db}, nil
}

func expandPath(path string) (string, error) {
	if len(path) >= 2 && path[0] == '~' && (path[1] == '/' || path[1] == '\\') {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// SaveRun 在一个事务中写入运行与全部移动记录
func (d *Database) SaveRun(run *FlattenRun, entries []MoveEntry) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(run).Error; err != nil {
			return err
		}
		for i := range entries {
			entries[i].RunID = run.ID
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

// LastRun 返回指定根目录最近一次未撤销的运行
func (d *Database) LastRun(root string) (*FlattenRun, error) {
	var run FlattenRun
	err := d.db.Where("root = ? AND undone = ?", root, false).
		Order("created_at DESC").
		First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Entries 按记录顺序返回一次运行的全部移动记录
func (d *Database) Entries(runID string) ([]MoveEntry, error) {
	var entries []MoveEntry
	err := d.db.Where("run_id = ?", runID).Order("seq ASC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// MarkUndone 将运行标记为已撤销
func (d *Database) MarkUndone(runID string) error {
	return d.db.Model(&FlattenRun{}).Where("id = ?", runID).Update("undone", true).Error
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
