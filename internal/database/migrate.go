package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/model"
)

// AutoMigrate 自动迁移数据库表结构
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.CICDConfig{},
		&model.ToolCallLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}

	return nil
}
