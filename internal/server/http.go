package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/gin-gonic/gin"

	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/config"
	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/provider"
	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/provider/jenkins"
	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/service"
)

// HTTPGinServer 基于 Gin 的 HTTP 服务器
type HTTPGinServer struct {
	config     *config.Config
	engine     *gin.Engine
	server     *http.Server
	logService *service.ToolCallLogService
	rawClient  *jenkins.RawClient
}

// NewHTTPGinServer 创建基于 Gin 的 HTTP 服务器
func NewHTTPGinServer(cfg *config.Config) *HTTPGinServer {
	// 设置 Gin 模式
	if cfg.Server.HTTP.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &HTTPGinServer{
		config: cfg,
		engine: gin.New(),
	}

	// 注册中间件
	s.registerMiddlewares()

	// 注册路由
	s.registerRoutes()

	return s
}

// SetLogService 设置调用日志服务(可选,未设置时触发器调用不落库)
func (s *HTTPGinServer) SetLogService(logService *service.ToolCallLogService) {
	s.logService = logService
}

// SetRawClient 覆盖触发器使用的直连客户端(测试用)
func (s *HTTPGinServer) SetRawClient(client *jenkins.RawClient) {
	s.rawClient = client
}

// newRawClient 返回触发器使用的直连客户端
// 凭据每次调用时从配置取,未被覆盖时新建
func (s *HTTPGinServer) newRawClient() *jenkins.RawClient {
	if s.rawClient != nil {
		return s.rawClient
	}
	return jenkins.NewRawClient(s.config.CICD.Jenkins.Username, s.config.CICD.Jenkins.Token)
}

// Handler 暴露底层 handler,测试时直接驱动
func (s *HTTPGinServer) Handler() http.Handler {
	return s.engine
}

// registerMiddlewares 注册中间件
func (s *HTTPGinServer) registerMiddlewares() {
	// 恢复中间件 - 从 panic 恢复
	s.engine.Use(gin.Recovery())

	// 自定义日志中间件
	s.engine.Use(s.loggingMiddleware())

	// CORS 中间件
	s.engine.Use(s.corsMiddleware())

	// 静态 Token 鉴权中间件(可选)
	if s.config.Auth.Enabled {
		s.engine.Use(s.authMiddleware())
	}
}

// loggingMiddleware 自定义日志中间件
func (s *HTTPGinServer) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		logx.Info("HTTP request, method %s, path %s, remote_addr %s", method, path, c.ClientIP())

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		logx.Info("HTTP response, method %s, path %s, status %d, duration %s",
			method, path, status, duration)
	}
}

// corsMiddleware CORS 中间件
func (s *HTTPGinServer) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// authMiddleware 静态 Token 鉴权中间件
// 校验 Authorization: Bearer <token> 是否在配置的 token 列表里,健康检查豁免
func (s *HTTPGinServer) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/api/v1/health" {
			c.Next()
			return
		}

		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		for _, allowed := range s.config.Auth.Tokens {
			if allowed != "" && token == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
			Code:    http.StatusUnauthorized,
			Message: "invalid or missing token",
		})
	}
}

// registerRoutes 注册路由
func (s *HTTPGinServer) registerRoutes() {
	// API v1 路由组
	v1 := s.engine.Group("/api/v1")
	{
		// 健康检查与版本信息
		v1.GET("/health", s.handleHealth)
		v1.GET("/version", GetVersionInfo)

		// HTTP 触发器,兼容函数应用时期的调用方式(GET 查询参数或 POST 请求体)
		trigger := v1.Group("/trigger")
		{
			trigger.GET("/list-jobs", s.handleTriggerListJobs)
			trigger.POST("/list-jobs", s.handleTriggerListJobs)
		}

		// Jenkins 路由
		jenkins := v1.Group("/jenkins")
		{
			jenkins.GET("/health", s.handleJenkinsHealth)
			jenkins.GET("/job/list", s.handleJenkinsJobList)
			jenkins.GET("/job/get", s.handleJenkinsJobGet)
			jenkins.GET("/build/list", s.handleJenkinsBuildList)
		}

		// 调用日志路由
		logs := v1.Group("/logs")
		{
			logs.GET("/tools", s.handleToolCallLogs)
			logs.GET("/tools/stats", s.handleToolCallLogStats)
		}
	}
}

// Start 启动 HTTP 服务器
func (s *HTTPGinServer) Start() error {
	addr := fmt.Sprintf("0.0.0.0:%d", s.config.Server.HTTP.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logx.Info("🛜 Starting HTTP Server (Gin), Addr %s", addr)
	return s.server.ListenAndServe()
}

// Stop 停止 HTTP 服务器
func (s *HTTPGinServer) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Response 统一响应结构
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// success 返回成功响应
func (s *HTTPGinServer) success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: "Success",
		Data:    data,
	})
}

// error 返回错误响应
func (s *HTTPGinServer) error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// ==================== 健康检查 ====================

func (s *HTTPGinServer) handleHealth(c *gin.Context) {
	s.success(c, gin.H{
		"status":    "healthy",
		"providers": provider.ListCICDProviders(),
	})
}
