package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	require.Nil(t, cfg)

	// 指定路径不存在时报错,不指定时回落到默认值
	cfg, err = LoadConfig("")
	require.NoError(t, err)
	require.True(t, cfg.Server.HTTP.Enabled)
	require.Equal(t, 8080, cfg.Server.HTTP.Port)
	require.False(t, cfg.Server.MCP.Enabled)
	require.Equal(t, 8081, cfg.Server.MCP.Port)
	require.False(t, cfg.Auth.Enabled)
	require.Equal(t, "token", cfg.Auth.Type)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  http:
    enabled: true
    port: 9090
    debug: true
  mcp:
    enabled: true
    port: 9091
cicd:
  jenkins:
    url: https://jenkins.example.com
    username: admin
    token: secret
auth:
  enabled: true
  type: token
  tokens:
    - alpha
    - beta
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.HTTP.Port)
	require.True(t, cfg.Server.HTTP.Debug)
	require.True(t, cfg.Server.MCP.Enabled)
	require.Equal(t, 9091, cfg.Server.MCP.Port)
	require.Equal(t, "https://jenkins.example.com", cfg.CICD.Jenkins.URL)
	require.Equal(t, "admin", cfg.CICD.Jenkins.Username)
	require.Equal(t, "secret", cfg.CICD.Jenkins.Token)
	require.True(t, cfg.Auth.Enabled)
	require.Equal(t, []string{"alpha", "beta"}, cfg.Auth.Tokens)
}

func TestLoadConfigExpandsEnvVars(t *testing.T) {
	t.Setenv("JENKINS_USER", "svc-account")
	t.Setenv("Token", "env-token")
	t.Setenv("TRIGGER_AUTH_TOKEN", "bearer-secret")

	path := writeConfigFile(t, `
cicd:
  jenkins:
    url: https://jenkins.example.com
auth:
  enabled: true
  tokens:
    - ${TRIGGER_AUTH_TOKEN}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// 凭据默认取自兼容的环境变量名
	require.Equal(t, "svc-account", cfg.CICD.Jenkins.Username)
	require.Equal(t, "env-token", cfg.CICD.Jenkins.Token)
	require.Equal(t, []string{"bearer-secret"}, cfg.Auth.Tokens)
}

func TestLoadConfigMissingEnvVarsExpandEmpty(t *testing.T) {
	t.Setenv("JENKINS_USER", "")
	t.Setenv("Token", "")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	require.Empty(t, cfg.CICD.Jenkins.Username)
	require.Empty(t, cfg.CICD.Jenkins.Token)
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := writeConfigFile(t, "server: [not: valid")

	_, err := LoadConfig(path)
	require.Error(t, err)
}
