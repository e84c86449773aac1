package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/taylorkchan/japan-trip-planner/api/pkg/config"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/log"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/planner"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/store"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/utils"
)

const userIDHeader = "X-User-Id"

// Server represents the HTTP server
type Server struct {
	config     *config.Config
	backend    store.Backend
	allocator  *planner.Allocator
	workspace  *planner.Workspace
	logger     *log.Logger
	router     *gin.Engine
	httpServer *http.Server
	validator  *utils.Validator
}

// New creates a new HTTP server instance
func New(cfg *config.Config, backend store.Backend, workspace *planner.Workspace, logger *log.Logger) (*Server, error) {
	if backend == nil {
		return nil, fmt.Errorf("storage backend is required")
	}
	if logger == nil {
		logger = log.NewNop()
	}
	if workspace == nil {
		workspace = planner.NewWorkspace(cfg.Planner.HistoryDepth)
	}

	// Set Gin mode
	switch cfg.Server.Mode {
	case gin.DebugMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()

	// Create server
	server := &Server{
		config:    cfg,
		backend:   backend,
		allocator: planner.NewAllocator(planner.DefaultCatalog(), planner.WithIDGenerator(utils.NewID)),
		workspace: workspace,
		logger:    logger,
		router:    router,
		validator: utils.NewValidator(),
	}

	workspace.OnChange(func(id string, it planner.ItineraryData) {
		logger.LogItinerary(id, "changed", len(it.Days), it.ActivityCount(), it.TotalEstimatedCost)
	})

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes()

	// Create HTTP server
	server.httpServer = &http.Server{
		Addr:         cfg.Server.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	return server, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		s.logger.WithField("panic", recovered).Error("Panic recovered")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Internal server error"))
		c.Abort()
	}))

	// Logging middleware
	s.router.Use(s.loggingMiddleware())

	// CORS middleware
	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With", userIDHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Session middleware
	sessionStore := cookie.NewStore([]byte(s.config.Security.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.config.Security.SessionMaxAge,
		HttpOnly: true,
		Secure:   s.config.Security.SessionCookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	s.router.Use(sessions.Sessions(s.config.Security.SessionCookieName, sessionStore))

	// Rate limiting middleware
	if s.config.Security.RateLimitEnabled {
		s.router.Use(s.rateLimitMiddleware())
	}

	// Security headers middleware
	s.router.Use(s.securityHeadersMiddleware())
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// Process request
		c.Next()

		// Calculate latency
		latency := time.Since(start)

		s.logger.LogRequest(
			c.Request.Method,
			path,
			c.Request.UserAgent(),
			c.ClientIP(),
			c.GetString("user_id"),
			c.Writer.Status(),
			latency.Milliseconds(),
		)

		// Log slow requests
		if latency > 1*time.Second {
			s.logger.LogPerformance("http_request", latency.Milliseconds(), map[string]interface{}{
				"method": c.Request.Method,
				"path":   path,
				"query":  raw,
				"status": c.Writer.Status(),
			})
		}
	}
}

// rateLimitMiddleware implements rate limiting
func (s *Server) rateLimitMiddleware() gin.HandlerFunc {
	limiter := rate.NewLimiter(
		rate.Limit(s.config.Security.RateLimitPerMinute)/60, // per second
		s.config.Security.RateLimitBurstSize,
	)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			s.logger.LogSecurity("rate_limit_exceeded", c.GetHeader(userIDHeader), c.ClientIP(), map[string]interface{}{
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			})
			c.JSON(http.StatusTooManyRequests, utils.NewErrorResponse("Rate limit exceeded"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// securityHeadersMiddleware adds security headers
func (s *Server) securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'")
		c.Next()
	}
}

// userMiddleware resolves the acting user. There is no authentication: the
// X-User-Id header names the user and requests without it act as the demo
// user.
func (s *Server) userMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(userIDHeader)
		if userID == "" {
			userID = s.config.Security.DemoUserID
		}

		if !s.validator.ValidateUserID(userID) {
			s.logger.LogSecurity("invalid_user_id", "", c.ClientIP(), map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid X-User-Id header"))
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// currentUserID returns the user resolved by userMiddleware
func (s *Server) currentUserID(c *gin.Context) string {
	if id := c.GetString("user_id"); id != "" {
		return id
	}
	return s.config.Security.DemoUserID
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info(fmt.Sprintf("Starting server on %s", s.config.Server.GetServerAddr()))

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	s.logger.Info("Server stopped")
	return nil
}

// Health check endpoint
func (s *Server) healthCheck(c *gin.Context) {
	data := map[string]interface{}{
		"status":       "healthy",
		"timestamp":    time.Now().UTC(),
		"backend_mode": s.backend.Mode(),
	}

	if err := s.backend.HealthCheck(c.Request.Context()); err != nil {
		s.logger.WithError(err).Warn("Storage health check failed")
		data["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, &utils.APIResponse{
			Success: false,
			Error:   "Storage unavailable",
			Data:    data,
		})
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(data, "Service is healthy"))
}
