package imcp

import (
	"fmt"

	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/provider"
	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/provider/jenkins"
)

// ==================== Provider 辅助函数 ====================

// getJenkinsProvider 获取 Jenkins Provider
// 使用配置中的默认 Jenkins 地址,按 Job/Build 详情类工具使用
func (s *MCPServer) getJenkinsProvider() (provider.CICDProvider, error) {
	p, err := provider.GetCICDProvider("jenkins")
	if err != nil {
		return nil, fmt.Errorf("failed to get jenkins provider: %w", err)
	}

	providerConfig := map[string]any{
		"url":      s.config.CICD.Jenkins.URL,
		"username": s.config.CICD.Jenkins.Username,
		"token":    s.config.CICD.Jenkins.Token,
	}

	if err := p.Initialize(providerConfig); err != nil {
		return nil, fmt.Errorf("failed to initialize jenkins provider: %w", err)
	}

	return p, nil
}

// newRawClient 用配置中的凭据创建直连客户端
// FQDN 由调用方按请求传入
func (s *MCPServer) newRawClient() *jenkins.RawClient {
	if s.rawClient != nil {
		return s.rawClient
	}
	return jenkins.NewRawClient(s.config.CICD.Jenkins.Username, s.config.CICD.Jenkins.Token)
}
