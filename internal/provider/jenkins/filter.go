package jenkins

import (
	"strings"
)

// FilterJobsByName 过滤 payload 中的 jobs 数组
// 保留 name 包含 search 的条目(大小写敏感的非锚定子串匹配),
// 保持上游返回的顺序与字段不变,结果重新包一层 {"jobs": ...}
func FilterJobsByName(payload map[string]any, search string) map[string]any {
	return filterJobs(payload, func(name string) bool {
		return strings.Contains(name, search)
	})
}

// FilterJobsByNameFold 大小写不敏感的过滤,MCP 工具使用
func FilterJobsByNameFold(payload map[string]any, search string) map[string]any {
	search = strings.ToLower(search)
	return filterJobs(payload, func(name string) bool {
		return strings.Contains(strings.ToLower(name), search)
	})
}

func filterJobs(payload map[string]any, match func(string) bool) map[string]any {
	jobs, _ := payload["jobs"].([]any)

	filtered := make([]any, 0, len(jobs))
	for _, item := range jobs {
		job, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, _ := job["name"].(string)
		if match(name) {
			filtered = append(filtered, item)
		}
	}

	return map[string]any{"jobs": filtered}
}
