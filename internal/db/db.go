package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options 描述数据库连接参数。
// Driver 为 postgres 时使用 DSN，否则使用 Path 打开 SQLite 文件。
type Options struct {
	Driver string
	Path   string
	DSN    string
}

// Init 初始化数据库连接并执行自动迁移。
// Path 为空时将回退到默认值 church.db。
func Init(opts Options) error {
	gdb, err := Open(opts)
	if err != nil {
		return err
	}

	if err := Migrate(gdb); err != nil {
		return err
	}

	DB = gdb
	return nil
}

// Open 根据驱动类型建立 gorm 连接，不执行迁移。
func Open(opts Options) (*gorm.DB, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case DriverPostgres:
		dsn := strings.TrimSpace(opts.DSN)
		if dsn == "" {
			return nil, errors.New("postgres dsn is required")
		}
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		path := strings.TrimSpace(opts.Path)
		if path == "" {
			path = "church.db"
		}
		if err := ensureParentDir(path); err != nil {
			return nil, err
		}
		return gorm.Open(sqlite.Open(path), &gorm.Config{})
	}
}

// Migrate 为核心模型创建或更新表结构。
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&User{},
		&Section{},
		&Page{},
		&GalleryCategory{},
		&GalleryEvent{},
		&GalleryPhoto{},
		&SystemSetting{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// 早期数据可能缺少 content，统一补为空对象
	if err := gdb.Model(&Section{}).
		Where("content IS NULL").
		Update("content", "{}").Error; err != nil {
		return fmt.Errorf("backfill section content: %w", err)
	}

	return nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
