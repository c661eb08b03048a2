package imcp

import (
	"context"
	"fmt"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/config"
	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/provider/jenkins"
	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/service"
)

// MCPServer MCP 服务端,封装 mcp-go 的 server 并注册 Jenkins 工具
type MCPServer struct {
	config     *config.Config
	server     *server.MCPServer
	httpServer *server.StreamableHTTPServer
	logService *service.ToolCallLogService
	rawClient  *jenkins.RawClient
}

// NewMCPServer 创建 MCP 服务端
func NewMCPServer(cfg *config.Config, version string) *MCPServer {
	s := &MCPServer{
		config: cfg,
	}

	s.server = server.NewMCPServer(
		"jenkins-mcp-server",
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.registerTools()

	return s
}

// SetLogService 设置调用日志服务(可选,未设置时不落库)
func (s *MCPServer) SetLogService(logService *service.ToolCallLogService) {
	s.logService = logService
}

// SetRawClient 覆盖工具使用的直连客户端(测试用)
func (s *MCPServer) SetRawClient(client *jenkins.RawClient) {
	s.rawClient = client
}

// registerTools 注册 Jenkins 工具
func (s *MCPServer) registerTools() {
	// 列出 Job,工具名与参数名沿用函数应用时期的定义
	listJobsTool := mcp.NewTool("list_jenkins_jobs",
		mcp.WithDescription("List Jenkins jobs, optionally filtered by name."),
		mcp.WithString("jenkinsServerFQDN",
			mcp.Required(),
			mcp.Description("The FQDN of the Jenkins server."),
		),
		mcp.WithString("searchString",
			mcp.Description("Optional: Filter jobs by name containing this string."),
		),
	)
	s.server.AddTool(listJobsTool, s.withAudit("list_jenkins_jobs", s.handleListJenkinsJobs))

	// 获取 Job 详情
	getJobTool := mcp.NewTool("get_jenkins_job",
		mcp.WithDescription("Get detail of a Jenkins job by name."),
		mcp.WithString("job_name",
			mcp.Required(),
			mcp.Description("The name of the Jenkins job, folder paths like \"folder/job\" are supported."),
		),
	)
	s.server.AddTool(getJobTool, s.withAudit("get_jenkins_job", s.handleGetJenkinsJob))

	// 列出 Build 历史
	listBuildsTool := mcp.NewTool("list_jenkins_builds",
		mcp.WithDescription("List build history of a Jenkins job."),
		mcp.WithString("job_name",
			mcp.Required(),
			mcp.Description("The name of the Jenkins job."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max number of builds to return, default 10."),
		),
	)
	s.server.AddTool(listBuildsTool, s.withAudit("list_jenkins_builds", s.handleListJenkinsBuilds))
}

// withAudit 包装工具处理函数,记录调用日志
func (s *MCPServer) withAudit(toolName string, handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		result, err := handler(ctx, request)

		if s.logService == nil {
			return result, err
		}

		args, _ := request.Params.Arguments.(map[string]any)

		params := &service.ToolCallLogParams{
			ToolName: toolName,
			Source:   "mcp",
			Request:  args,
			Latency:  time.Since(start).Milliseconds(),
			Success:  err == nil && (result == nil || !result.IsError),
		}
		if err != nil {
			params.ErrorMessage = err.Error()
		} else if result != nil {
			params.Response = result.Content
		}

		if _, logErr := s.logService.CreateLog(params); logErr != nil {
			logx.Warn("Failed to write tool call log: %v", logErr)
		}

		return result, err
	}
}

// Start 启动 MCP 服务(Streamable HTTP)
func (s *MCPServer) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Server.MCP.Port)

	s.httpServer = server.NewStreamableHTTPServer(s.server)

	logx.Info("🔌 Starting MCP Server (Streamable HTTP), Addr %s", addr)
	return s.httpServer.Start(addr)
}

// Stop 停止 MCP 服务
func (s *MCPServer) Stop(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
