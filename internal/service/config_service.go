package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/config"
	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/database"
	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/model"
)

// ConfigService 配置服务
type ConfigService struct {
	db *gorm.DB
}

// NewConfigService 创建配置服务
func NewConfigService() *ConfigService {
	return &ConfigService{
		db: database.GetDB(),
	}
}

// GetCICDConfig 获取指定平台的 CICD 配置,不存在时返回 nil
func (s *ConfigService) GetCICDConfig(platform string) (*model.CICDConfig, error) {
	var cfg model.CICDConfig
	err := s.db.Where("platform = ?", platform).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveCICDConfig 保存 CICD 配置,按平台名做 upsert
func (s *ConfigService) SaveCICDConfig(cfg *model.CICDConfig) error {
	existing, err := s.GetCICDConfig(cfg.Platform)
	if err != nil {
		return err
	}

	if existing != nil {
		cfg.ID = existing.ID
		return s.db.Save(cfg).Error
	}

	return s.db.Create(cfg).Error
}

// LoadJenkinsConfig 用数据库中的 Jenkins 配置覆盖内存配置
// 注入到 config.SetDBLoader 使用
func (s *ConfigService) LoadJenkinsConfig(cfg *config.Config) error {
	dbCfg, err := s.GetCICDConfig("jenkins")
	if err != nil {
		return fmt.Errorf("failed to load jenkins config: %w", err)
	}

	if dbCfg == nil || !dbCfg.Enabled {
		return fmt.Errorf("jenkins config not found in database")
	}

	cfg.CICD.Jenkins.URL = dbCfg.URL
	cfg.CICD.Jenkins.Username = dbCfg.Username
	cfg.CICD.Jenkins.Token = dbCfg.Token

	return nil
}

// MigrateJenkinsConfig 把 YAML/环境变量中的 Jenkins 配置写入数据库
// 注入到 config.SetDBMigrator 使用
func (s *ConfigService) MigrateJenkinsConfig(cfg *config.Config) error {
	// 没有配置过 Jenkins 地址时无需迁移
	if cfg.CICD.Jenkins.URL == "" {
		return nil
	}

	return s.SaveCICDConfig(&model.CICDConfig{
		Platform: "jenkins",
		Enabled:  true,
		URL:      cfg.CICD.Jenkins.URL,
		Username: cfg.CICD.Jenkins.Username,
		Token:    cfg.CICD.Jenkins.Token,
	})
}
