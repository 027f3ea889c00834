package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Styner2026/OSINTCafe-main-sub001/internal/config"
	"github.com/Styner2026/OSINTCafe-main-sub001/internal/handlers"
	"github.com/Styner2026/OSINTCafe-main-sub001/internal/middleware"
	"github.com/Styner2026/OSINTCafe-main-sub001/internal/services"
	"github.com/Styner2026/OSINTCafe-main-sub001/pkg/logger"
	"github.com/Styner2026/OSINTCafe-main-sub001/pkg/ratelimiter"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const version = "1.0.0"

// Server represents the main application server.
type Server struct {
	httpServer *http.Server
	config     *config.Config
	services   *services.Services
	limiter    *ratelimiter.RateLimiter
	router     *handlers.Router
}

func main() {
	// A missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	loggerConfig := &logger.Config{
		Level:       cfg.Logging.Level,
		Environment: cfg.Logging.Environment,
		OutputPaths: cfg.Logging.OutputPaths,
	}

	if err := logger.Initialize(loggerConfig); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log := logger.GetLogger()

	log.Info("Starting intelligence aggregation server",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.Duration("cache_ttl", cfg.Cache.TTL),
		zap.Int("rate_limit_rpm", cfg.RateLimit.RequestsPerMinute),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("environment", cfg.Logging.Environment),
	)

	server := NewServer(cfg)

	if err := server.Start(); err != nil {
		log.Fatal("Server failed to start", zap.Error(err))
	}
}

// NewServer creates a new server instance with all dependencies.
func NewServer(cfg *config.Config) *Server {
	log := logger.GetLogger()

	log.Info("Initializing server components")

	svc := services.New(cfg, log)

	mock := svc.Registry.MockMode()
	log.Info("Provider configuration resolved",
		zap.Int("configured_providers", len(svc.Registry.ConfiguredProviders())),
		zap.Bool("mock_ai", mock.AIAssistant),
		zap.Bool("mock_threat_intel", mock.ThreatIntel),
		zap.Bool("mock_blockchain", mock.Blockchain),
		zap.Bool("mock_image_analysis", mock.ImageAnalysis),
		zap.Bool("mock_verification", mock.Verification),
	)

	statusHandler := handlers.NewStatusHandler(svc.Registry, svc.Collector, version)
	router := handlers.NewRouter(svc.Assistant, svc.Threats, svc.Blockchain, svc.Intel, statusHandler)

	log.Info("Server components initialized successfully")

	return &Server{
		config:   cfg,
		services: svc,
		limiter:  ratelimiter.New(),
		router:   router,
	}
}

// Start starts the HTTP server with graceful shutdown handling.
func (s *Server) Start() error {
	log := logger.GetLogger()

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	s.setupMiddleware(engine)
	s.router.SetupHealthRoutes(engine)
	s.router.SetupRoutes(engine)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%s", s.config.Server.Host, s.config.Server.Port),
		Handler:           engine,
		ReadTimeout:       s.config.Server.ReadTimeout,
		WriteTimeout:      s.config.Server.WriteTimeout,
		IdleTimeout:       s.config.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	log.Info("HTTP server configured",
		zap.String("address", s.httpServer.Addr),
		zap.Duration("read_timeout", s.config.Server.ReadTimeout),
		zap.Duration("write_timeout", s.config.Server.WriteTimeout),
		zap.Duration("idle_timeout", s.config.Server.IdleTimeout),
	)

	// Periodically prune expired rate-limit windows.
	go func() {
		ticker := time.NewTicker(s.config.RateLimit.CleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			s.limiter.Cleanup(s.config.RateLimit.WindowSize)
		}
	}()

	go func() {
		log.Info("Starting HTTP server", zap.String("address", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	return s.waitForShutdown()
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware(engine *gin.Engine) {
	engine.Use(logger.RecoveryMiddleware())
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.MetricsMiddleware(s.services.Collector))
	engine.Use(s.corsMiddleware())
	engine.Use(s.limiter.Middleware(s.config.RateLimit.RequestsPerMinute, s.config.RateLimit.WindowSize))
}

// corsMiddleware adds CORS headers for browser clients.
func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// waitForShutdown blocks until an interrupt arrives and then drains the
// server.
func (s *Server) waitForShutdown() error {
	log := logger.GetLogger()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Info("Shutdown signal received", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	s.services.Close()

	log.Info("Server exited gracefully")
	_ = log.Sync()
	return nil
}
