package jenkins

import (
	"context"
	"fmt"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/bndr/gojenkins"
	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/model"
	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/provider"
)

// ListBuilds 列出 Job 的构建历史
func (p *JenkinsProvider) ListBuilds(ctx context.Context, jobName string, opts *provider.QueryOptions) ([]*model.Build, error) {
	if err := p.client.Connect(ctx); err != nil {
		return nil, err
	}

	job, err := p.client.GetJenkins().GetJob(ctx, jobName)
	if err != nil {
		return nil, fmt.Errorf("failed to get job '%s': %w", jobName, err)
	}

	buildIds, err := job.GetAllBuildIds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get build ids: %w", err)
	}

	logx.Debug("Fetched build IDs, job %s, count %d", jobName, len(buildIds))

	// 默认只获取最近的构建
	limit := 10
	if opts != nil && opts.PageSize > 0 {
		limit = opts.PageSize
	}

	start := 0
	if opts != nil && opts.PageNum > 1 {
		start = (opts.PageNum - 1) * limit
	}

	var result []*model.Build
	for i := start; i < len(buildIds) && len(result) < limit; i++ {
		build, err := job.GetBuild(ctx, buildIds[i].Number)
		if err != nil {
			logx.Warn("Failed to get build, job %s, build %d, error %v", jobName, buildIds[i].Number, err)
			continue
		}
		result = append(result, convertBuildToModel(build))
	}

	return result, nil
}

// convertBuildToModel 将 Jenkins Build 转换为统一的 Build 模型
func convertBuildToModel(build *gojenkins.Build) *model.Build {
	modelBuild := &model.Build{
		Number:   int(build.Raw.Number),
		URL:      build.Raw.URL,
		Duration: int64(build.Raw.Duration), // 毫秒
	}

	switch {
	case build.Raw.Result != "":
		modelBuild.Status = build.Raw.Result
		modelBuild.Result = build.Raw.Result
	case build.Raw.Building:
		modelBuild.Status = "BUILDING"
	default:
		modelBuild.Status = "UNKNOWN"
	}

	if build.Raw.Timestamp > 0 {
		modelBuild.Timestamp = time.Unix(build.Raw.Timestamp/1000, 0)
	}

	return modelBuild
}
