package jenkins

import (
	"context"
	"fmt"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/model"
	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/provider"
)

func init() {
	provider.RegisterCICD("jenkins", NewJenkinsProvider())
}

// JenkinsProvider Jenkins Provider
type JenkinsProvider struct {
	name   string
	client *Client
}

// NewJenkinsProvider 创建 Jenkins Provider
func NewJenkinsProvider() provider.CICDProvider {
	return &JenkinsProvider{
		name: "jenkins",
	}
}

// GetName 获取 Provider 名称
func (p *JenkinsProvider) GetName() string {
	return p.name
}

// Initialize 初始化 Provider
// username 允许为空,此时以纯 token 做 Basic 认证
func (p *JenkinsProvider) Initialize(config map[string]any) error {
	url, ok := config["url"].(string)
	if !ok || url == "" {
		return fmt.Errorf("url is required")
	}

	token, ok := config["token"].(string)
	if !ok || token == "" {
		return fmt.Errorf("token is required")
	}

	username, _ := config["username"].(string)

	// 连接参数未变化时复用已有客户端,避免重复握手
	if p.client != nil && p.client.URL == url &&
		p.client.Username == username && p.client.Token == token {
		return nil
	}

	p.client = NewClient(url, username, token)

	logx.Info("Jenkins Provider initialized, url %s, username %s", url, username)

	return nil
}

// GetJobBuilds 实现 CICDProvider 接口
func (p *JenkinsProvider) GetJobBuilds(ctx context.Context, jobName string, limit int) ([]*model.Build, error) {
	opts := &provider.QueryOptions{
		PageSize: limit,
		PageNum:  1,
	}
	return p.ListBuilds(ctx, jobName, opts)
}

// HealthCheck 健康检查
func (p *JenkinsProvider) HealthCheck(ctx context.Context) error {
	if p.client == nil {
		return fmt.Errorf("client not initialized")
	}

	if err := p.client.Connect(ctx); err != nil {
		return err
	}

	if p.client.GetJenkins() == nil {
		return fmt.Errorf("jenkins client is nil")
	}

	logx.Debug("Health check passed")
	return nil
}
