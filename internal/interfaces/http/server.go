package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/supportbrain/backend/docs" // Swagger docs
	"github.com/supportbrain/backend/internal/infrastructure/config"
	"github.com/supportbrain/backend/internal/infrastructure/log"
	"github.com/supportbrain/backend/internal/interfaces/http/handler"
	"github.com/supportbrain/backend/internal/interfaces/http/middleware"
	"github.com/supportbrain/backend/internal/interfaces/mcp"
)

// HTTPServer HTTP server
type HTTPServer struct {
	router          *gin.Engine
	handler         http.Handler
	httpPort        string
	shutdownTimeout time.Duration
	server          *http.Server
	logger          *slog.Logger
}

// NewServer builds the router
func NewServer(
	cfg *config.ServerConfig,
	inferenceHandler *handler.InferenceHandler,
	ingestHandler *handler.IngestHandler,
	auditHandler *handler.AuditHandler,
	healthHandler *handler.HealthHandler,
	mcpServer *mcp.MCPServer,
) *HTTPServer {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.EnsureUTF8Body())

	logger := log.NewModuleLogger("http", "server")
	requireKey := middleware.RequireAPIKey(cfg.AdminAPIKey)

	router.GET("/", healthHandler.Root)
	router.GET("/health", healthHandler.Health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1", requireKey)
	{
		v1.POST("/suggest", inferenceHandler.Suggest)
		v1.GET("/gorgias-widget", inferenceHandler.GorgiasWidget)
		v1.POST("/gorgias-widget", inferenceHandler.GorgiasWidget)
	}

	ingest := router.Group("/ingest", requireKey)
	{
		ingest.POST("/historical", ingestHandler.Historical)
		ingest.POST("/web", ingestHandler.Web)
		ingest.POST("/web/batch", ingestHandler.WebBatch)
	}

	audit := router.Group("/audit", requireKey)
	{
		audit.POST("/log", auditHandler.Log)
		audit.GET("/log", auditHandler.List)
	}

	if mcpServer != nil {
		router.Any("/mcp/sse", requireKey, gin.WrapH(mcpServer.GetHandler()))
	}

	return &HTTPServer{
		router:          router,
		handler:         middleware.CORS(cfg.CORSOrigins, router),
		httpPort:        cfg.HTTPPort,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}
}

// Handler root handler including CORS
func (s *HTTPServer) Handler() http.Handler {
	return s.handler
}

// Start blocks serving HTTP until Shutdown
func (s *HTTPServer) Start() error {
	s.server = &http.Server{
		Addr:              s.httpPort,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("HTTP server starting",
		"port", s.httpPort,
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown graceful shutdown
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Stop shuts down within the configured timeout
func (s *HTTPServer) Stop() error {
	timeout := s.shutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.Shutdown(ctx)
}
