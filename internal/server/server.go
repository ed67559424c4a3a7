// Package server exposes the /api/v1 proxy surface of the Tutera LMS
// front end. Each route handler maps one inbound request to exactly one
// upstream API call; the upstream backend owns all durable data.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/tutera-org/tutera-frontend-sub001/internal/config"
	"github.com/tutera-org/tutera-frontend-sub001/internal/session"
	"github.com/tutera-org/tutera-frontend-sub001/internal/upstream"
)

// Server represents the HTTP gateway
type Server struct {
	router    *gin.Engine
	config    *config.Config
	logger    zerolog.Logger
	validator *validator.Validate
	upstream  *upstream.Client
	uploads   *upstream.Client
	tokens    *session.Store
	version   string
}

// New creates a new gateway instance
func New(cfg *config.Config, zlog zerolog.Logger, version string) (*Server, error) {
	// Initialize validator
	validate := validator.New()

	// Token mirror for cookie-less callers; cookies stay authoritative
	tokens := session.NewStore(cfg.Session.SnapshotPath)
	if err := tokens.Hydrate(); err != nil {
		zlog.Warn().Err(err).Msg("Failed to hydrate session snapshot - starting with empty token mirror")
	}

	server := &Server{
		config:    cfg,
		logger:    zlog,
		validator: validate,
		upstream:  upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout),
		// Separate client with an extended budget for large media transfers
		uploads: upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.UploadTimeout),
		tokens:  tokens,
		version: version,
	}

	// Setup router
	server.setupRouter()

	return server, nil
}

// setupRouter configures the Gin router with routes and middleware
func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()

	// Add middleware
	s.router.Use(gin.Recovery())
	s.router.Use(requestIDMiddleware())
	s.router.Use(tenantMiddleware(s.config.Tenant.RootDomain))
	s.router.Use(s.loggingMiddleware())

	// CORS middleware; credentials must be allowed for cookie auth
	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint (no auth required)
	s.router.GET("/health", s.healthCheck)

	api := s.router.Group("/api/v1")
	{
		// Auth
		api.POST("/signIn", s.signIn)
		api.POST("/tenantLogout", s.tenantLogout)
		api.POST("/tenantSignUp", s.tenantSignUp)

		// Courses (creator side)
		api.GET("/courses", s.listCourses)
		api.POST("/courses", s.createCourse)
		api.PATCH("/courses/:id/publish", s.publishCourse)
		api.GET("/coursesDetails/:id", s.courseDetails)
		api.GET("/dashboard", s.creatorDashboard)

		// Enrollments (student side)
		api.POST("/enrollment", s.enroll)
		api.PATCH("/markAsCompleted", s.markLessonCompleted)
		api.GET("/studentsCourses", s.studentCourses)
		api.GET("/studentCourseDetails/:id", s.studentCourseDetails)

		// Media
		api.GET("/media/:id", s.getMedia)
		api.POST("/media/upload", s.uploadMedia)
	}
}

// client builds the per-request upstream client: the inbound cookie jar
// is copied onto outgoing calls, with the mirrored token as a bearer
// fallback for cookie-less callers.
func (s *Server) client(c *gin.Context) *upstream.Client {
	return s.upstream.WithCookies(c.Request.Cookies()).WithBearer(s.tokens.Get())
}

// uploadClient is the media-upload variant of client with the extended
// request budget.
func (s *Server) uploadClient(c *gin.Context) *upstream.Client {
	return s.uploads.WithCookies(c.Request.Cookies()).WithBearer(s.tokens.Get())
}

// forward relays the inbound body to the upstream path and mirrors the
// upstream status and JSON body verbatim. Errors are normalized into
// {"error": message} and never leak raw upstream payloads.
func (s *Server) forward(c *gin.Context, method, path string) {
	resp, err := s.client(c).Do(c.Request.Context(), method, path, c.Request.Body, c.ContentType())
	if err != nil {
		s.respondError(c, err, path)
		return
	}

	c.Data(resp.StatusCode, "application/json", resp.Body)
}

// respondError funnels any handler error through the normalizer
func (s *Server) respondError(c *gin.Context, err error, path string) {
	status, message := upstream.Normalize(err)
	s.logger.Error().
		Err(err).
		Str("upstream_path", path).
		Int("status", status).
		Msg("Upstream call failed")
	c.JSON(status, gin.H{"error": message})
}

// @Router /health [get]
// @Success 200 {object} map[string]interface{}
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"timestamp": time.Now().UTC(),
		"service":   "tutera-gateway",
		"version":   s.version,
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	port := ":" + s.config.Server.Port

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Write timeout must cover the extended media-upload budget
	srv := &http.Server{
		Addr:              port,
		Handler:           s.router,
		ReadTimeout:       s.config.Upstream.UploadTimeout + 30*time.Second,
		WriteTimeout:      s.config.Upstream.UploadTimeout + 30*time.Second,
		ReadHeaderTimeout: 30 * time.Second,
		IdleTimeout:       300 * time.Second,
	}

	// Start server in goroutine
	go func() {
		s.logger.Info().Str("port", port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	s.logger.Info().Msg("Received shutdown signal, shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("Error shutting down HTTP server")
		return err
	}

	s.logger.Info().Msg("Server shutdown complete")

	return nil
}
