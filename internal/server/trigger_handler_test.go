package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

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

// newTriggerServer 组装一个接好伪造上游的 HTTP 服务器
func newTriggerServer(t *testing.T, upstreamStatus int, upstreamBody string) (*HTTPGinServer, string, *atomic.Int64) {
	t.Helper()

	var calls atomic.Int64
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(upstreamStatus)
		_, _ = w.Write([]byte(upstreamBody))
	}))
	t.Cleanup(ts.Close)

	cfg := &config.Config{}
	cfg.CICD.Jenkins.Username = "svc"
	cfg.CICD.Jenkins.Token = "secret"

	s := NewHTTPGinServer(cfg)
	s.SetRawClient(&jenkins.RawClient{
		Username:   "svc",
		Token:      "secret",
		HTTPClient: ts.Client(),
	})

	return s, strings.TrimPrefix(ts.URL, "https://"), &calls
}

func doTrigger(t *testing.T, s *HTTPGinServer, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func jobNames(t *testing.T, body []byte) []string {
	t.Helper()

	var payload struct {
		Jobs []struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"jobs"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))

	names := make([]string, 0, len(payload.Jobs))
	for _, job := range payload.Jobs {
		names = append(names, job.Name)
	}
	return names
}

func TestTriggerFilteredByQueryParams(t *testing.T) {
	t.Parallel()

	s, fqdn, _ := newTriggerServer(t, http.StatusOK, upstreamJobsBody)

	w := doTrigger(t, s, http.MethodGet,
		"/api/v1/trigger/list-jobs?JenkinsServerFQDN="+fqdn+"&SearchString=build", "")

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"build-api", "build-web"}, jobNames(t, w.Body.Bytes()))
}

func TestTriggerFilteredByJSONBody(t *testing.T) {
	t.Parallel()

	s, fqdn, _ := newTriggerServer(t, http.StatusOK, upstreamJobsBody)

	body := `{"JenkinsServerFQDN": "` + fqdn + `", "SearchString": "deploy"}`
	w := doTrigger(t, s, http.MethodPost, "/api/v1/trigger/list-jobs", body)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"deploy-web"}, jobNames(t, w.Body.Bytes()))
}

func TestTriggerQueryParamsOverrideBody(t *testing.T) {
	t.Parallel()

	s, fqdn, _ := newTriggerServer(t, http.StatusOK, upstreamJobsBody)

	// 请求体里的值和查询参数冲突时,查询参数生效
	body := `{"JenkinsServerFQDN": "ignored.example.com", "SearchString": "deploy"}`
	w := doTrigger(t, s, http.MethodPost,
		"/api/v1/trigger/list-jobs?JenkinsServerFQDN="+fqdn+"&SearchString=build", body)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"build-api", "build-web"}, jobNames(t, w.Body.Bytes()))
}

func TestTriggerBodyFillsMissingQueryParam(t *testing.T) {
	t.Parallel()

	s, fqdn, _ := newTriggerServer(t, http.StatusOK, upstreamJobsBody)

	// FQDN 来自查询参数,SearchString 来自请求体
	body := `{"SearchString": "build"}`
	w := doTrigger(t, s, http.MethodPost,
		"/api/v1/trigger/list-jobs?JenkinsServerFQDN="+fqdn, body)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"build-api", "build-web"}, jobNames(t, w.Body.Bytes()))
}

func TestTriggerFilterIsCaseSensitive(t *testing.T) {
	t.Parallel()

	s, fqdn, _ := newTriggerServer(t, http.StatusOK, upstreamJobsBody)

	w := doTrigger(t, s, http.MethodGet,
		"/api/v1/trigger/list-jobs?JenkinsServerFQDN="+fqdn+"&SearchString=Build", "")

	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, jobNames(t, w.Body.Bytes()))
}

func TestTriggerWithoutSearchStringPassesThrough(t *testing.T) {
	t.Parallel()

	s, fqdn, calls := newTriggerServer(t, http.StatusOK, upstreamJobsBody)

	w := doTrigger(t, s, http.MethodGet,
		"/api/v1/trigger/list-jobs?JenkinsServerFQDN="+fqdn, "")

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int64(1), calls.Load())

	// 不过滤时上游响应原样透传,包括顶层的额外字段
	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.Equal(t, "hudson.model.Hudson", payload["_class"])
	require.Equal(t, []string{"build-api", "deploy-web", "build-web"}, jobNames(t, w.Body.Bytes()))
}

func TestTriggerUpstreamFailureReturns502(t *testing.T) {
	t.Parallel()

	s, fqdn, _ := newTriggerServer(t, http.StatusInternalServerError, `boom`)

	w := doTrigger(t, s, http.MethodGet,
		"/api/v1/trigger/list-jobs?JenkinsServerFQDN="+fqdn+"&SearchString=build", "")

	require.Equal(t, http.StatusBadGateway, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, http.StatusBadGateway, resp.Code)
	require.Contains(t, resp.Message, "Failed to call jenkins")
}

func TestTriggerNoParamsCallsUpstreamWithEmptyFQDN(t *testing.T) {
	t.Parallel()

	s, _, calls := newTriggerServer(t, http.StatusOK, upstreamJobsBody)

	// 两个参数都缺失时仍会发起上游调用,空 FQDN 产生的畸形 URL 以 502 结束
	w := doTrigger(t, s, http.MethodGet, "/api/v1/trigger/list-jobs", "")

	require.Equal(t, http.StatusBadGateway, w.Code)
	require.Equal(t, int64(0), calls.Load())
	require.NotContains(t, w.Body.String(), "Provide JenkinsServerFQDN")
}

func TestTriggerMalformedBodyIgnored(t *testing.T) {
	t.Parallel()

	s, fqdn, _ := newTriggerServer(t, http.StatusOK, upstreamJobsBody)

	// 非 JSON 请求体按无字段处理,查询参数仍然生效
	w := doTrigger(t, s, http.MethodPost,
		"/api/v1/trigger/list-jobs?JenkinsServerFQDN="+fqdn+"&SearchString=build", "not-json{{")

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"build-api", "build-web"}, jobNames(t, w.Body.Bytes()))
}

func TestTriggerRepeatedCallsHitUpstreamEachTime(t *testing.T) {
	t.Parallel()

	s, fqdn, calls := newTriggerServer(t, http.StatusOK, upstreamJobsBody)
	target := "/api/v1/trigger/list-jobs?JenkinsServerFQDN=" + fqdn + "&SearchString=build"

	for i := 0; i < 3; i++ {
		w := doTrigger(t, s, http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, w.Code)
	}
	require.Equal(t, int64(3), calls.Load())
}
