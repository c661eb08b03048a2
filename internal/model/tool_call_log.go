package model

import "time"

// ToolCallLog 工具调用日志
// 同时覆盖 MCP 工具调用和 HTTP 触发器调用的审计记录
type ToolCallLog struct {
	ID           string    `gorm:"primaryKey;size:50" json:"id"`
	Timestamp    time.Time `json:"timestamp" gorm:"index"`
	ToolName     string    `json:"tool_name" gorm:"index;size:100"`
	Source       string    `json:"source" gorm:"index;size:20"` // "mcp" | "http" | "cli"
	Status       string    `json:"status" gorm:"size:20"`       // "success" | "error"
	Latency      int64     `json:"latency"`                     // 延迟(毫秒)
	Request      string    `json:"request" gorm:"type:text"`
	Response     string    `json:"response" gorm:"type:text"`
	ErrorMessage string    `json:"error_message" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName 指定表名
func (ToolCallLog) TableName() string {
	return "tool_call_logs"
}
