// Package server exposes the citation graph over HTTP: record submission,
// batch uploads, search queries and graph export.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/matsen/citetrack/internal/config"
	"github.com/matsen/citetrack/internal/graph"
	"github.com/matsen/citetrack/internal/ingest"
	"github.com/matsen/citetrack/internal/query"
)

// CustomValidator adapts go-playground/validator to echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates a bound request struct.
func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}

// Server wires the HTTP routes to one graph store.
type Server struct {
	echo     *echo.Echo
	cfg      *config.Config
	store    *graph.Store
	ingestor *ingest.Ingestor
	engine   *query.Engine
	logger   *log.Logger
}

// New builds a server around store. The store may already hold seeded data.
func New(cfg *config.Config, store *graph.Store, logger *log.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &CustomValidator{validator: validator.New()}

	s := &Server{
		echo:     e,
		cfg:      cfg,
		store:    store,
		ingestor: ingest.New(store, logger),
		engine:   query.New(store),
		logger:   logger,
	}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	e.Use(requestLogger(logger))
	if cfg.RateLimit > 0 {
		e.Use(rateLimit(rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)))
	}
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dB", cfg.MaxUploadBytes)))

	s.registerRoutes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves on cfg.Addr until ctx is cancelled, then shuts down gracefully
// within cfg.ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", "addr", s.cfg.Addr)
		errCh <- s.echo.Start(s.cfg.Addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// requestLogger logs each request through the structured logger.
func requestLogger(logger *log.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			keyvals := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.Round(time.Microsecond),
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				logger.Warn("request failed", append(keyvals, "err", v.Error)...)
				return nil
			}
			logger.Debug("request", keyvals...)
			return nil
		},
	})
}

// rateLimit rejects requests beyond the limiter's token bucket with 429.
func rateLimit(limiter *rate.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow() {
				return c.JSON(http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
			}
			return next(c)
		}
	}
}
