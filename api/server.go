package api

import (
	"log/slog"
	"net/http"

	"github.com/banachtech/swaptions/config"
	"github.com/gin-gonic/gin"
)

// Server serves HTTP requests for the swaption pricer.
type Server struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics *Metrics
	limiter *clientLimiter
	router  *gin.Engine
}

// NewServer creates a new HTTP server and sets up routing.
func NewServer(cfg config.Config, logger *slog.Logger) *Server {
	server := &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: NewMetrics(),
		limiter: newClientLimiter(cfg.Server.RateLimit, cfg.Server.Burst),
	}

	server.setupRouter()
	return server
}

func (server *Server) setupRouter() {
	router := gin.New()
	router.Use(gin.Recovery(), server.requestLogger, server.instrument)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": http.StatusOK})
	})
	router.GET("/metrics", gin.WrapH(server.metrics.Handler()))

	v1 := router.Group("/v1").Use(server.rateLimit)
	v1.POST("/pricer", server.pricer)
	v1.POST("/portfolio", server.portfolio)
	server.router = router
}

// Handler exposes the router, mainly for tests.
func (server *Server) Handler() http.Handler {
	return server.router
}

// Start runs the HTTP server on a specific address.
func (server *Server) Start(address string) error {
	server.logger.Info("pricing service listening", "addr", address)
	return server.router.Run(address)
}

func errorResponse(err error) gin.H {
	return gin.H{"error": err.Error()}
}
