package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/gin-gonic/gin"

	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/provider/jenkins"
	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/service"
)

// triggerRequest HTTP 触发器的请求体,字段名与查询参数同名
type triggerRequest struct {
	JenkinsServerFQDN string `json:"JenkinsServerFQDN"`
	SearchString      string `json:"SearchString"`
}

// defaultTriggerBody 两个参数都缺失时的兜底响应体
// 当前分支结构下两个分支都会覆盖它,保留是为了忠实维持既有行为
const defaultTriggerBody = "Provide JenkinsServerFQDN and SearchString to list Jenkins jobs."

// handleTriggerListJobs HTTP 触发器
// 提取两个可选参数并代理一次 Jenkins JSON API 调用:
//   - 两个参数都有: 返回按名称过滤后的 {"jobs": [...]}
//   - 任一参数缺失: 用解析到的 FQDN(可能为空)原样转发上游响应,不做过滤
//
// FQDN 为空产生的畸形 URL 会作为上游错误返回,这里不做补救
func (s *HTTPGinServer) handleTriggerListJobs(c *gin.Context) {
	start := time.Now()

	fqdn, searchString := extractTriggerParams(c)

	logx.Info("Trigger invoked, fqdn %s, search %s", fqdn, searchString)

	client := s.newRawClient()

	var body any = defaultTriggerBody

	if fqdn != "" && searchString != "" {
		payload, err := client.ListJobs(c.Request.Context(), fqdn)
		if err != nil {
			s.failTrigger(c, start, fqdn, searchString, err)
			return
		}
		body = jenkins.FilterJobsByName(payload, searchString)
	} else {
		payload, err := client.ListJobs(c.Request.Context(), fqdn)
		if err != nil {
			s.failTrigger(c, start, fqdn, searchString, err)
			return
		}
		body = payload
	}

	s.auditTrigger(start, fqdn, searchString, body, nil)
	c.JSON(http.StatusOK, body)
}

// extractTriggerParams 提取两个可选参数,查询参数优先于请求体字段
func extractTriggerParams(c *gin.Context) (fqdn, searchString string) {
	fqdn = c.Query("JenkinsServerFQDN")
	searchString = c.Query("SearchString")

	if fqdn != "" && searchString != "" {
		return fqdn, searchString
	}

	// 查询参数不全时读取请求体,非 JSON 或空请求体按无字段处理
	var req triggerRequest
	if c.Request.Body != nil {
		if data, err := io.ReadAll(c.Request.Body); err == nil && len(data) > 0 {
			_ = json.Unmarshal(data, &req)
		}
	}

	if fqdn == "" {
		fqdn = req.JenkinsServerFQDN
	}
	if searchString == "" {
		searchString = req.SearchString
	}

	return fqdn, searchString
}

// failTrigger 上游调用失败,记录日志并返回 502
func (s *HTTPGinServer) failTrigger(c *gin.Context, start time.Time, fqdn, searchString string, err error) {
	logx.Error("Trigger upstream call failed: %v", err)
	s.auditTrigger(start, fqdn, searchString, nil, err)
	s.error(c, http.StatusBadGateway, fmt.Sprintf("Failed to call jenkins: %v", err))
}

// auditTrigger 写触发器调用日志
func (s *HTTPGinServer) auditTrigger(start time.Time, fqdn, searchString string, response any, err error) {
	if s.logService == nil {
		return
	}

	params := &service.ToolCallLogParams{
		ToolName: "list_jenkins_jobs",
		Source:   "http",
		Request: map[string]any{
			"JenkinsServerFQDN": fqdn,
			"SearchString":      searchString,
		},
		Response: response,
		Latency:  time.Since(start).Milliseconds(),
		Success:  err == nil,
	}
	if err != nil {
		params.ErrorMessage = err.Error()
	}

	if _, logErr := s.logService.CreateLog(params); logErr != nil {
		logx.Warn("Failed to write trigger call log: %v", logErr)
	}
}
