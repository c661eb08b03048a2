package imcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/config"
	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/provider/jenkins"
)

const upstreamJobsBody = `{
	"_class": "hudson.model.Hudson",
	"jobs": [
		{"name": "build-api", "url": "https://j/job/build-api/"},
		{"name": "deploy-web", "url": "https://j/job/deploy-web/"},
		{"name": "build-web", "url": "https://j/job/build-web/"}
	]
}`

// newToolServer 组装一个接好伪造上游的 MCP 服务端
func newToolServer(t *testing.T, upstreamStatus int, upstreamBody string) (*MCPServer, string) {
	t.Helper()

	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(upstreamStatus)
		_, _ = w.Write([]byte(upstreamBody))
	}))
	t.Cleanup(ts.Close)

	cfg := &config.Config{}
	cfg.CICD.Jenkins.Username = "svc"
	cfg.CICD.Jenkins.Token = "secret"

	s := NewMCPServer(cfg, "test")
	s.SetRawClient(&jenkins.RawClient{
		Username:   "svc",
		Token:      "secret",
		HTTPClient: ts.Client(),
	})

	return s, strings.TrimPrefix(ts.URL, "https://")
}

func callToolRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleListJenkinsJobs(t *testing.T) {
	t.Parallel()

	s, fqdn := newToolServer(t, http.StatusOK, upstreamJobsBody)

	result, err := s.handleListJenkinsJobs(context.Background(), callToolRequest(map[string]any{
		"jenkinsServerFQDN": fqdn,
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &payload))

	jobs := payload["jobs"].([]any)
	require.Len(t, jobs, 3)
}

func TestHandleListJenkinsJobsFiltered(t *testing.T) {
	t.Parallel()

	s, fqdn := newToolServer(t, http.StatusOK, upstreamJobsBody)

	// MCP 工具的过滤大小写不敏感
	result, err := s.handleListJenkinsJobs(context.Background(), callToolRequest(map[string]any{
		"jenkinsServerFQDN": fqdn,
		"searchString":      "BUILD",
	}))
	require.NoError(t, err)

	var payload struct {
		Jobs []struct {
			Name string `json:"name"`
		} `json:"jobs"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &payload))

	names := make([]string, 0, len(payload.Jobs))
	for _, job := range payload.Jobs {
		names = append(names, job.Name)
	}
	require.Equal(t, []string{"build-api", "build-web"}, names)
}

func TestHandleListJenkinsJobsMissingFQDN(t *testing.T) {
	t.Parallel()

	s, _ := newToolServer(t, http.StatusOK, upstreamJobsBody)

	result, err := s.handleListJenkinsJobs(context.Background(), callToolRequest(map[string]any{}))
	require.NoError(t, err)
	require.True(t, result.IsError)
}

func TestHandleListJenkinsJobsUpstreamError(t *testing.T) {
	t.Parallel()

	s, fqdn := newToolServer(t, http.StatusForbidden, `denied`)

	result, err := s.handleListJenkinsJobs(context.Background(), callToolRequest(map[string]any{
		"jenkinsServerFQDN": fqdn,
	}))
	require.NoError(t, err)

	// 上游错误以 {"error": ...} 的 JSON 文本返回
	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &payload))
	require.Contains(t, payload["error"], "status 403")
}

func TestHandleListJenkinsJobsBadArgumentsType(t *testing.T) {
	t.Parallel()

	s, _ := newToolServer(t, http.StatusOK, upstreamJobsBody)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = "not-a-map"

	result, err := s.handleListJenkinsJobs(context.Background(), req)
	require.NoError(t, err)
	require.True(t, result.IsError)
}
