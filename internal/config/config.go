package config

// Config 全局配置
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	CICD   CICDConfig   `mapstructure:"cicd"`
	Auth   AuthConfig   `mapstructure:"auth"`
}

// ServerConfig 服务端配置
type ServerConfig struct {
	HTTP HTTPConfig `mapstructure:"http"`
	MCP  MCPConfig  `mapstructure:"mcp"`
}

// HTTPConfig HTTP 服务配置
type HTTPConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
	Debug   bool `mapstructure:"debug"`
}

// MCPConfig MCP 服务配置
type MCPConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// CICDConfig CI/CD 工具配置
type CICDConfig struct {
	Jenkins JenkinsConfig `mapstructure:"jenkins"`
}

// JenkinsConfig Jenkins 连接配置
// URL 是默认服务地址, HTTP 触发器和 MCP 工具允许按请求传入 FQDN 覆盖它
type JenkinsConfig struct {
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
	Token    string `mapstructure:"token"`
}

// AuthConfig 接口鉴权配置
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Type    string   `mapstructure:"type"`
	Tokens  []string `mapstructure:"tokens"`
}
