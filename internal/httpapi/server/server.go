package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/opentracing-contrib/go-stdlib/nethttp"
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"

	"github.com/classboard/classboard/internal/httpapi/handlers"
	"github.com/classboard/classboard/internal/httpapi/middleware"
	"github.com/classboard/classboard/pkg/config"
)

type APIServer struct {
	config   *config.AppConfig
	router   *gin.Engine
	handlers *handlers.Handlers
	server   *http.Server
}

func NewAPIServer(cfg *config.AppConfig, h *handlers.Handlers) *APIServer {
	if cfg.App.Environment == "local" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(&cfg.APIServer))

	s := &APIServer{
		config:   cfg,
		router:   router,
		handlers: h,
	}

	s.setupRoutes()
	return s
}

func (s *APIServer) setupRoutes() {
	s.router.GET("/", s.handlers.Homepage)

	s.router.GET("/teacher", s.handlers.GetTeacher)
	s.router.PUT("/teacher", s.handlers.SetTeacher)

	s.router.GET("/students", s.handlers.ListStudents)
	s.router.POST("/students", s.handlers.AddStudent)
	s.router.GET("/students/:id", s.handlers.GetStudent)

	s.router.GET("/classrooms", s.handlers.ListClassrooms)

	s.router.GET("/audit/last", s.handlers.LastAudit)

	s.router.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": s.config.App.Name,
			"status":  "running",
		})
	})
}

func (s *APIServer) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.config.APIServer.Host, s.config.APIServer.Port),
		Handler: nethttp.Middleware(opentracing.GlobalTracer(), s.router),
	}

	go s.StopServer()
	logrus.WithField("address", s.server.Addr).Info("starting http API server")
	if err := s.server.ListenAndServe(); err != nil {
		if err == http.ErrServerClosed {
			logrus.Info("http API server stopped")
			return nil
		}
		return fmt.Errorf("failed to start http API server : %w", err)
	}
	return nil
}

func (s *APIServer) StopServer() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("turning down http API server")

	if err := s.server.Shutdown(context.Background()); err != nil {
		logrus.WithError(err).Error("Error during HTTP API server shutdown")
	}
}
