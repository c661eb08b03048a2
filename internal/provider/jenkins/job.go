package jenkins

import (
	"context"
	"fmt"
	"strings"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/bndr/gojenkins"
	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/model"
	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/provider"
)

// folderClass Jenkins 文件夹类型的 Java 类名,列表时跳过
const folderClass = "com.cloudbees.hudson.plugins.folder.Folder"

// ListJobs 列出所有 Job
func (p *JenkinsProvider) ListJobs(ctx context.Context, opts *provider.QueryOptions) ([]*model.Job, error) {
	if err := p.client.Connect(ctx); err != nil {
		return nil, err
	}

	jobs, err := p.client.GetJenkins().GetAllJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all jobs: %w", err)
	}

	logx.Debug("Fetched Jenkins jobs, count %d", len(jobs))

	var result []*model.Job
	for _, job := range jobs {
		// 跳过文件夹类型
		if job.Raw.Class == folderClass {
			continue
		}
		result = append(result, convertJobToModel(job))
	}

	return paginateJobs(result, opts), nil
}

// GetJob 获取 Job 详情
// 支持文件夹路径,如 "folder/subfolder/job"
func (p *JenkinsProvider) GetJob(ctx context.Context, jobName string) (*model.Job, error) {
	if err := p.client.Connect(ctx); err != nil {
		return nil, err
	}

	job, err := p.client.GetJenkins().GetJob(ctx, jobName)
	if err != nil {
		return nil, fmt.Errorf("failed to get job '%s': %w", jobName, err)
	}

	logx.Info("Fetched Jenkins job, name %s", jobName)

	return convertJobToModel(job), nil
}

// SearchJobs 搜索 Job
// 按名称或描述做大小写不敏感的子串匹配
func (p *JenkinsProvider) SearchJobs(ctx context.Context, keyword string) ([]*model.Job, error) {
	if err := p.client.Connect(ctx); err != nil {
		return nil, err
	}

	jobs, err := p.client.GetJenkins().GetAllJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all jobs: %w", err)
	}

	keyword = strings.ToLower(keyword)

	var result []*model.Job
	for _, job := range jobs {
		if job.Raw.Class == folderClass {
			continue
		}

		if strings.Contains(strings.ToLower(job.GetName()), keyword) ||
			strings.Contains(strings.ToLower(job.GetDescription()), keyword) {
			result = append(result, convertJobToModel(job))
		}
	}

	logx.Info("Search completed, keyword %s, found %d", keyword, len(result))

	return result, nil
}

// paginateJobs 应用分页
func paginateJobs(jobs []*model.Job, opts *provider.QueryOptions) []*model.Job {
	if opts == nil || opts.PageSize <= 0 || opts.PageNum <= 0 {
		return jobs
	}

	start := (opts.PageNum - 1) * opts.PageSize
	if start >= len(jobs) {
		return []*model.Job{}
	}

	end := start + opts.PageSize
	if end > len(jobs) {
		end = len(jobs)
	}

	return jobs[start:end]
}

// convertJobToModel 将 Jenkins Job 转换为统一的 Job 模型
func convertJobToModel(job *gojenkins.Job) *model.Job {
	modelJob := &model.Job{
		Name:        job.GetName(),
		DisplayName: job.GetName(),
		Description: job.GetDescription(),
		URL:         job.Raw.URL,
		Buildable:   job.Raw.Buildable,
	}

	if job.Raw.LastBuild.Number > 0 {
		modelJob.LastBuild = &model.Build{
			Number: int(job.Raw.LastBuild.Number),
			URL:    job.Raw.LastBuild.URL,
		}
	}

	return modelJob
}
