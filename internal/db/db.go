package db

import (
	"deployer/internal/model"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const memoryDSN = ":memory:"

var DB *gorm.DB

// Init opens a fresh in-memory database. Its contents live only as long as
// the process.
func Init() error {
	conn, err := gorm.Open(sqlite.Open(memoryDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}

	// every pooled connection to :memory: would see its own empty database
	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := conn.AutoMigrate(&model.History{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	DB = conn
	return nil
}
