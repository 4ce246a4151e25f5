package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/feedchain/backend/config"
	"github.com/feedchain/backend/services/logging"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	echo   *echo.Echo
	cfg    *config.Config
	logger *logging.Service
}

func New(cfg *config.Config, logger *logging.Service) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	v, err := NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to build request validator: %w", err)
	}
	e.Validator = v
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)

	origins, err := regexp.Compile(cfg.CORS.AllowOriginPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid CORS origin pattern: %w", err)
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger(logger, "/health"))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc: func(origin string) (bool, error) {
			return origins.MatchString(origin), nil
		},
		AllowMethods:     cfg.CORS.AllowMethods,
		AllowHeaders:     cfg.CORS.AllowHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return &Server{
		echo:   e,
		cfg:    cfg,
		logger: logger,
	}, nil
}

func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%s", s.cfg.Server.Host, s.cfg.Server.Port)
}

// Start blocks until the listener stops. A graceful shutdown is not an error.
func (s *Server) Start() error {
	addr := s.Addr()
	s.logger.Info("starting HTTP server", zap.String("addr", addr))

	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("HTTP server stopped", zap.Error(err))
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}

func (s *Server) Get(path string, handler echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.echo.GET(path, handler, m...)
}

func (s *Server) Post(path string, handler echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.echo.POST(path, handler, m...)
}

func (s *Server) Group(prefix string, m ...echo.MiddlewareFunc) *echo.Group {
	return s.echo.Group(prefix, m...)
}

func (s *Server) Echo() *echo.Echo {
	return s.echo
}
