// Package httpapi exposes the recommender over HTTP with echo.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"UploadTimeAdvisor/internal/config"
	"UploadTimeAdvisor/internal/domain"
	"UploadTimeAdvisor/internal/metrics"
)

// Service is the slice of the recommender the HTTP layer drives.
type Service interface {
	RecommendForDate(ctx context.Context, date domain.Date, category domain.Category) (domain.DailyRecommendation, error)
	RecommendForWeek(ctx context.Context, start domain.Date, category domain.Category) (domain.WeeklyRecommendation, error)
	StatsForCategory(category domain.Category) domain.CategoryStats
	Generate(ctx context.Context, req domain.GenerationRequest) (domain.Completion, error)
}

// Deps wires the server.
type Deps struct {
	Service            Service
	Metrics            *metrics.Metrics
	Server             config.ServerConfig
	DefaultTemperature float32
	Location           *time.Location
	Now                func() time.Time
	Logger             *slog.Logger
}

// Server owns the echo instance.
type Server struct {
	echo     *echo.Echo
	addr     string
	handlers *handlers
	logger   *slog.Logger
}

// New builds the router and middleware chain.
func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http")

	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	h := &handlers{
		service:            deps.Service,
		server:             deps.Server,
		defaultTemperature: deps.DefaultTemperature,
		location:           loc,
		now:                now,
		logger:             logger,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = deps.Server.Debug
	e.HTTPErrorHandler = h.errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     allowedOrigins(deps.Server.FrontendURL),
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path == "/health" || path == "/metrics"
		},
		LogStatus:    true,
		LogURI:       true,
		LogError:     true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error == nil {
				logger.Info("request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"request_id", v.RequestID,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				logger.Error("request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"request_id", v.RequestID,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))

	e.GET("/", h.root)
	e.GET("/health", h.health)

	upload := e.Group("/api/upload-time")
	upload.GET("/recommend", h.recommend)
	upload.GET("/weekly-recommend", h.weeklyRecommend)
	upload.GET("/stats", h.stats)

	e.POST("/api/chat/message", h.chatMessage)

	if deps.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(deps.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	return &Server{
		echo:     e,
		addr:     deps.Server.Addr(),
		handlers: h,
		logger:   logger,
	}
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting http server", "address", s.addr)
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func allowedOrigins(frontendURL string) []string {
	origins := []string{"http://localhost:3000", "http://localhost:3001"}
	if frontendURL != "" && frontendURL != origins[0] && frontendURL != origins[1] {
		origins = append([]string{frontendURL}, origins...)
	}
	return origins
}
