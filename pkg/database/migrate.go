package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations 将排班库结构迁移到最新版本
// 迁移脚本随二进制内嵌，检测当前版本并应用所有未执行的迁移
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("加载内嵌迁移脚本失败: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("创建迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("初始化迁移实例失败: %w", err)
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("执行迁移失败: %w", upErr)
	}

	version, dirty, _ := m.Version()
	switch {
	case dirty:
		logger.Warn("排班库迁移处于 dirty 状态，需人工介入", zap.Uint("schema_version", version))
	case errors.Is(upErr, migrate.ErrNoChange):
		logger.Info("排班库结构已是最新", zap.Uint("schema_version", version))
	default:
		logger.Info("排班库迁移完成", zap.Uint("schema_version", version))
	}

	return nil
}
