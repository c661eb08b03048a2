package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/model"
	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/provider"
)

// ==================== Jenkins API ====================

// initJenkinsProvider 获取并初始化 Jenkins Provider
func (s *HTTPGinServer) initJenkinsProvider() (provider.CICDProvider, error) {
	p, err := provider.GetCICDProvider("jenkins")
	if err != nil {
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}

	providerConfig := map[string]any{
		"url":      s.config.CICD.Jenkins.URL,
		"username": s.config.CICD.Jenkins.Username,
		"token":    s.config.CICD.Jenkins.Token,
	}

	if err := p.Initialize(providerConfig); err != nil {
		return nil, fmt.Errorf("failed to initialize provider: %w", err)
	}

	return p, nil
}

// handleJenkinsHealth 检查默认 Jenkins 的连通性
func (s *HTTPGinServer) handleJenkinsHealth(c *gin.Context) {
	p, err := s.initJenkinsProvider()
	if err != nil {
		s.error(c, http.StatusServiceUnavailable, err.Error())
		return
	}

	if err := p.HealthCheck(c.Request.Context()); err != nil {
		s.error(c, http.StatusServiceUnavailable, fmt.Sprintf("Jenkins health check failed: %v", err))
		return
	}

	s.success(c, gin.H{
		"platform": p.GetName(),
		"status":   "healthy",
	})
}

func (s *HTTPGinServer) handleJenkinsJobList(c *gin.Context) {
	search := c.Query("search")
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "100"))
	pageNum, _ := strconv.Atoi(c.DefaultQuery("page_num", "1"))

	p, err := s.initJenkinsProvider()
	if err != nil {
		s.error(c, http.StatusInternalServerError, err.Error())
		return
	}

	// 带搜索词时走关键字搜索,否则按页列出
	if search != "" {
		jobs, err := p.SearchJobs(c.Request.Context(), search)
		if err != nil {
			s.error(c, http.StatusInternalServerError, fmt.Sprintf("Failed to search jobs: %v", err))
			return
		}

		s.success(c, gin.H{
			"total": len(jobs),
			"jobs":  jobs,
		})
		return
	}

	opts := &provider.QueryOptions{
		PageSize: pageSize,
		PageNum:  pageNum,
	}

	jobs, err := p.ListJobs(c.Request.Context(), opts)
	if err != nil {
		s.error(c, http.StatusInternalServerError, fmt.Sprintf("Failed to list jobs: %v", err))
		return
	}

	s.success(c, model.ListResponse{
		Items: jobs,
		PageInfo: &model.PageInfo{
			PageNum:  pageNum,
			PageSize: pageSize,
			Total:    len(jobs),
		},
	})
}

func (s *HTTPGinServer) handleJenkinsJobGet(c *gin.Context) {
	jobName := c.Query("job_name")
	if jobName == "" {
		s.error(c, http.StatusBadRequest, "job_name is required")
		return
	}

	p, err := s.initJenkinsProvider()
	if err != nil {
		s.error(c, http.StatusInternalServerError, err.Error())
		return
	}

	job, err := p.GetJob(c.Request.Context(), jobName)
	if err != nil {
		s.error(c, http.StatusNotFound, fmt.Sprintf("Failed to get job: %v", err))
		return
	}

	s.success(c, gin.H{
		"job": job,
	})
}

func (s *HTTPGinServer) handleJenkinsBuildList(c *gin.Context) {
	jobName := c.Query("job_name")
	if jobName == "" {
		s.error(c, http.StatusBadRequest, "job_name is required")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	p, err := s.initJenkinsProvider()
	if err != nil {
		s.error(c, http.StatusInternalServerError, err.Error())
		return
	}

	builds, err := p.GetJobBuilds(c.Request.Context(), jobName, limit)
	if err != nil {
		s.error(c, http.StatusInternalServerError, fmt.Sprintf("Failed to list builds: %v", err))
		return
	}

	s.success(c, gin.H{
		"total":    len(builds),
		"builds":   builds,
		"job_name": jobName,
	})
}
