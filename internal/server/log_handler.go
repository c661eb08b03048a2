package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// handleToolCallLogs 获取工具调用日志
func (s *HTTPGinServer) handleToolCallLogs(c *gin.Context) {
	if s.logService == nil {
		s.error(c, http.StatusServiceUnavailable, "call log service is not enabled")
		return
	}

	// 分页参数
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	toolName := c.Query("tool_name")
	source := c.Query("source")
	status := c.Query("status")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	logs, total, err := s.logService.ListLogs(toolName, source, status, pageSize, offset)
	if err != nil {
		s.error(c, http.StatusInternalServerError, err.Error())
		return
	}

	items := make([]gin.H, len(logs))
	for i, log := range logs {
		items[i] = gin.H{
			"id":            log.ID,
			"timestamp":     log.Timestamp.Format("2006-01-02 15:04:05"),
			"tool_name":     log.ToolName,
			"source":        log.Source,
			"status":        log.Status,
			"latency":       log.Latency,
			"request":       log.Request,
			"response":      log.Response,
			"error_message": log.ErrorMessage,
		}
	}

	s.success(c, gin.H{
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
		"items":    items,
	})
}

// handleToolCallLogStats 获取工具调用统计信息
func (s *HTTPGinServer) handleToolCallLogStats(c *gin.Context) {
	if s.logService == nil {
		s.error(c, http.StatusServiceUnavailable, "call log service is not enabled")
		return
	}

	stats, err := s.logService.GetLogStats()
	if err != nil {
		s.error(c, http.StatusInternalServerError, err.Error())
		return
	}

	s.success(c, stats)
}
