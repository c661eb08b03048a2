package provider

import (
	"context"

	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/model"
)

// CICDProvider 定义 CI/CD 工具的统一接口
type CICDProvider interface {
	// GetName 返回提供商名称 (如: jenkins, gitlab-ci)
	GetName() string

	// Initialize 初始化客户端
	Initialize(config map[string]any) error

	// ListJobs 列出所有任务
	ListJobs(ctx context.Context, opts *QueryOptions) ([]*model.Job, error)

	// GetJob 获取任务详情
	GetJob(ctx context.Context, jobName string) (*model.Job, error)

	// SearchJobs 按关键字搜索任务
	SearchJobs(ctx context.Context, keyword string) ([]*model.Job, error)

	// GetJobBuilds 获取任务的构建历史
	GetJobBuilds(ctx context.Context, jobName string, limit int) ([]*model.Build, error)

	// HealthCheck 健康检查
	HealthCheck(ctx context.Context) error
}

// QueryOptions 查询选项
type QueryOptions struct {
	PageSize int               // 分页大小
	PageNum  int               // 页码
	Filters  map[string]string // 过滤条件
}
