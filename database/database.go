package database

import (
	"fmt"
	"log"

	"erp/config"
	"erp/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接
// 默认使用 SQLite 内存库：保持完整的关系型数据层，同时不产生任何
// 跨进程持久化，重启后回到种子数据
func Init(cfg *config.Config) error {
	dsn := cfg.Database.DSN
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 内存库连接池超过 1 个连接会各自持有独立数据，这里统一收紧
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	// 自动迁移数据库表
	if err := DB.AutoMigrate(
		&models.Revenue{},
		&models.Expense{},
		&models.Product{},
		&models.Employee{},
		&models.Customer{},
		&models.Appointment{},
		&models.Task{},
		&models.InsightReport{},
	); err != nil {
		return err
	}

	// 初始化种子数据（仅当表为空时）
	if err := Seed(DB); err != nil {
		return err
	}

	log.Println("数据库初始化成功")
	return nil
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
