package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig 加载配置文件
// 按 configFile 指定的路径加载,未指定时按默认搜索路径查找,
// 找不到配置文件时使用默认值(凭据仍可全部来自环境变量)
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 设置配置文件
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		// 默认配置文件搜索路径
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.jenkins-mcp")
		v.AddConfigPath("/etc/jenkins-mcp")
	}

	// 支持环境变量
	v.SetEnvPrefix("JENKINS_MCP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 设置默认值
	setDefaults(v)

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		// 如果是找不到配置文件,则使用默认配置
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析配置
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 替换环境变量
	expandEnvVars(&config)

	return &config, nil
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	// Server 默认配置
	v.SetDefault("server.http.enabled", true)
	v.SetDefault("server.http.port", 8080)
	v.SetDefault("server.mcp.enabled", false)
	v.SetDefault("server.mcp.port", 8081)

	// Auth 默认配置
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.type", "token")

	// Jenkins 凭据默认取自环境变量,与函数应用时期的变量名保持兼容
	v.SetDefault("cicd.jenkins.username", "${JENKINS_USER}")
	v.SetDefault("cicd.jenkins.token", "${Token}")
}

// expandEnvVars 展开环境变量
func expandEnvVars(config *Config) {
	// 展开 CICD 配置中的环境变量
	config.CICD.Jenkins.URL = os.ExpandEnv(config.CICD.Jenkins.URL)
	config.CICD.Jenkins.Username = os.ExpandEnv(config.CICD.Jenkins.Username)
	config.CICD.Jenkins.Token = os.ExpandEnv(config.CICD.Jenkins.Token)

	// 展开 Auth 配置中的环境变量
	for i, token := range config.Auth.Tokens {
		config.Auth.Tokens[i] = os.ExpandEnv(token)
	}
}
