package jenkins

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bndr/gojenkins"
)

// jobsAPIPath Jenkins JSON API 路径,tree 参数只取任务的 name 与 url
const jobsAPIPath = "/api/json?tree=jobs[name,url]&pretty=true"

// defaultTimeout 出站请求超时
const defaultTimeout = 10 * time.Second

// Client Jenkins 客户端,基于 gojenkins,懒连接
type Client struct {
	URL      string
	Username string
	Token    string
	jenkins  *gojenkins.Jenkins
}

// NewClient 创建 Jenkins 客户端
func NewClient(url, username, token string) *Client {
	return &Client{
		URL:      url,
		Username: username,
		Token:    token,
	}
}

// Connect 连接到 Jenkins
func (c *Client) Connect(ctx context.Context) error {
	if c.jenkins != nil {
		return nil
	}

	jenkins := gojenkins.CreateJenkins(nil, c.URL, c.Username, c.Token)
	if _, err := jenkins.Init(ctx); err != nil {
		return fmt.Errorf("failed to connect to Jenkins: %w", err)
	}

	c.jenkins = jenkins
	return nil
}

// GetJenkins 获取 Jenkins 客户端实例
func (c *Client) GetJenkins() *gojenkins.Jenkins {
	return c.jenkins
}

// RawClient 直连 Jenkins JSON API 的轻量客户端
// HTTP 触发器按请求传入 FQDN,不经过 gojenkins 的初始化握手
type RawClient struct {
	Username   string
	Token      string
	HTTPClient *http.Client
}

// NewRawClient 创建直连客户端
func NewRawClient(username, token string) *RawClient {
	return &RawClient{
		Username:   username,
		Token:      token,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

// BasicAuth 构造 Basic 认证头的值
// 配置了用户名时编码 username:token,否则退化为只编码 token
func (c *RawClient) BasicAuth() string {
	userpass := c.Token
	if c.Username != "" {
		userpass = c.Username + ":" + c.Token
	}
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(userpass))
}

// ListJobs 调用 https://{fqdn}/api/json 并解码响应
// fqdn 不做格式校验,为空时产生的畸形 URL 会作为请求错误返回
func (c *RawClient) ListJobs(ctx context.Context, fqdn string) (map[string]any, error) {
	url := fmt.Sprintf("https://%s%s", fqdn, jobsAPIPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build jenkins request: %w", err)
	}
	req.Header.Set("Authorization", c.BasicAuth())
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call jenkins api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("jenkins api returned status %d", resp.StatusCode)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode jenkins response: %w", err)
	}

	return payload, nil
}
