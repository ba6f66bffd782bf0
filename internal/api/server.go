package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martijn/usersvc/internal/api/dto"
	"github.com/martijn/usersvc/internal/api/handler"
	"github.com/martijn/usersvc/internal/api/middleware"
	"github.com/martijn/usersvc/internal/core/service"
	"github.com/martijn/usersvc/internal/logging"
	"github.com/martijn/usersvc/pkg/config"
)

const MsgRouteNotFound = "Route not found"

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
	logger logging.Logger
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, userService *service.UserService, logger logging.Logger) *Server {
	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.ErrorHandlerMiddleware(logger))
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	userHandler := handler.NewUserHandler(userService, logger)

	users := router.Group(cfg.BasePath)
	{
		users.POST("/addUser", userHandler.AddUser)
		users.PUT("/updateUser/:id", userHandler.UpdateUser)
		users.GET("/getUsers", userHandler.GetUsers)
		users.GET("/getUser/:id", userHandler.GetUser)
		users.POST("/clearUsers", userHandler.ClearUsers)
		users.DELETE("/deleteUser/:id", userHandler.DeleteUser)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewEnvelope(http.StatusNotFound, nil, MsgRouteNotFound))
	})

	return &Server{
		router: router,
		config: cfg,
		logger: logger,
		srv: &http.Server{
			Addr:           cfg.Addr(),
			Handler:        router,
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	addr := s.srv.Addr
	ctx := context.Background()
	if s.config.SSLCert != "" && s.config.SSLKey != "" {
		s.logger.Info(ctx, "starting HTTPS server", "addr", addr, "base_path", s.config.BasePath)
		return s.srv.ListenAndServeTLS(s.config.SSLCert, s.config.SSLKey)
	}

	s.logger.Info(ctx, "starting HTTP server", "addr", addr, "base_path", s.config.BasePath)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
