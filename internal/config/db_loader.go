package config

import (
	"log"
)

// DefaultConfigLoader 默认配置加载器
// 数据库侧的加载/迁移逻辑由 service 层在启动时注入,避免反向依赖
type DefaultConfigLoader struct {
	dbLoader   func(*Config) error
	dbMigrator func(*Config) error
}

var defaultLoader *DefaultConfigLoader

// SetDBLoader 设置数据库配置加载函数
func SetDBLoader(loader func(*Config) error) {
	if defaultLoader == nil {
		defaultLoader = &DefaultConfigLoader{}
	}
	defaultLoader.dbLoader = loader
}

// SetDBMigrator 设置数据库配置迁移函数
func SetDBMigrator(migrator func(*Config) error) {
	if defaultLoader == nil {
		defaultLoader = &DefaultConfigLoader{}
	}
	defaultLoader.dbMigrator = migrator
}

// LoadConfigWithDB 加载配置(支持数据库)
// 先加载 YAML/环境变量配置,再用数据库中保存的 Jenkins 配置覆盖;
// 数据库为空时把当前配置迁移进去
func LoadConfigWithDB(configFile string) (*Config, error) {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return nil, err
	}

	// 用数据库中的配置覆盖
	if defaultLoader != nil && defaultLoader.dbLoader != nil {
		if err := defaultLoader.dbLoader(cfg); err == nil {
			log.Println("✓ Configuration loaded from database")
			return cfg, nil
		}
	}

	// 尝试迁移到数据库
	if defaultLoader != nil && defaultLoader.dbMigrator != nil {
		if err := defaultLoader.dbMigrator(cfg); err != nil {
			log.Printf("Warning: failed to migrate config to database: %v", err)
		} else {
			log.Println("✓ Configuration migrated to database successfully")
		}
	}

	return cfg, nil
}
