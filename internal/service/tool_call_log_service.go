package service

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/database"
	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/model"
)

// ToolCallLogService 工具调用日志服务
type ToolCallLogService struct {
	db *gorm.DB
}

// NewToolCallLogService 创建工具调用日志服务
func NewToolCallLogService() *ToolCallLogService {
	return &ToolCallLogService{
		db: database.GetDB(),
	}
}

// ToolCallLogParams 工具调用日志参数
type ToolCallLogParams struct {
	ToolName     string
	Source       string // "mcp", "http", "cli"
	Request      map[string]any
	Response     any
	ErrorMessage string
	Latency      int64 // 毫秒
	Success      bool
}

// CreateLog 创建调用日志
func (s *ToolCallLogService) CreateLog(params *ToolCallLogParams) (*model.ToolCallLog, error) {
	// 序列化请求参数
	requestJSON, err := json.Marshal(params.Request)
	if err != nil {
		requestJSON = []byte("{}")
	}

	// 序列化响应结果
	responseJSON, err := json.Marshal(params.Response)
	if err != nil {
		responseJSON = []byte("{}")
	}

	status := "success"
	if !params.Success {
		status = "error"
	}

	log := &model.ToolCallLog{
		ID:           uuid.NewString(),
		Timestamp:    time.Now(),
		ToolName:     params.ToolName,
		Source:       params.Source,
		Status:       status,
		Latency:      params.Latency,
		Request:      string(requestJSON),
		Response:     string(responseJSON),
		ErrorMessage: params.ErrorMessage,
	}

	if err := s.db.Create(log).Error; err != nil {
		return nil, err
	}

	return log, nil
}

// ListLogs 查询调用日志列表
func (s *ToolCallLogService) ListLogs(toolName, source, status string, limit, offset int) ([]model.ToolCallLog, int64, error) {
	var logs []model.ToolCallLog
	var total int64

	query := s.db.Model(&model.ToolCallLog{})

	// 过滤条件
	if toolName != "" {
		query = query.Where("tool_name = ?", toolName)
	}
	if source != "" {
		query = query.Where("source = ?", source)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	// 获取总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	if err := query.Order("timestamp DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// GetLogStats 获取统计信息
func (s *ToolCallLogService) GetLogStats() (map[string]any, error) {
	stats := make(map[string]any)

	// 总调用次数
	var total int64
	if err := s.db.Model(&model.ToolCallLog{}).Count(&total).Error; err != nil {
		return nil, err
	}
	stats["total"] = total

	// 成功次数
	var successCount int64
	if err := s.db.Model(&model.ToolCallLog{}).Where("status = ?", "success").Count(&successCount).Error; err != nil {
		return nil, err
	}
	stats["success_count"] = successCount

	// 失败次数
	var errorCount int64
	if err := s.db.Model(&model.ToolCallLog{}).Where("status = ?", "error").Count(&errorCount).Error; err != nil {
		return nil, err
	}
	stats["error_count"] = errorCount

	// 平均延迟
	var avgLatency float64
	if err := s.db.Model(&model.ToolCallLog{}).Select("COALESCE(AVG(latency), 0)").Scan(&avgLatency).Error; err != nil {
		return nil, err
	}
	stats["avg_latency"] = avgLatency

	return stats, nil
}
