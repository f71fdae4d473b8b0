package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/awieserg/Notes-Ibacy/config"
	"github.com/awieserg/Notes-Ibacy/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate 初始化表结构
//   - postgres：执行内嵌的 SQL 迁移
//   - sqlite：使用 GORM AutoMigrate（本地/测试场景）
func Migrate(db *gorm.DB, driver string, logger *zap.Logger) error {
	switch driver {
	case config.DriverPostgres:
		return runMigrations(db, logger)
	case config.DriverSQLite:
		if err := db.AutoMigrate(&model.Student{}, &model.Teacher{}, &model.Course{}, &model.Grade{}); err != nil {
			return fmt.Errorf("AutoMigrate 失败: %w", err)
		}
		logger.Info("数据库表结构已同步", zap.String("driver", driver))
		return nil
	default:
		return fmt.Errorf("不支持的数据库驱动: %s", driver)
	}
}

// runMigrations 执行数据库迁移
// 自动检测当前版本并应用所有未执行的迁移
func runMigrations(db *gorm.DB, logger *zap.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("加载迁移文件失败: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("创建迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("初始化迁移实例失败: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("执行迁移失败: %w", err)
	}

	version, dirty, _ := m.Version()
	if dirty {
		logger.Warn("数据库迁移处于 dirty 状态", zap.Uint("version", version))
	} else {
		logger.Info("数据库迁移完成", zap.Uint("version", version))
	}

	return nil
}
