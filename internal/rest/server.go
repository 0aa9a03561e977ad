package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"techpulse/internal/domain"
	"techpulse/internal/usecase"
)

// Ingester runs one ingestion batch.
type Ingester interface {
	Ingest(ctx context.Context) (domain.IngestOutcome, error)
}

// FeedLister serves the paginated listing.
type FeedLister interface {
	List(ctx context.Context, q domain.FeedQuery) (domain.FeedPage, error)
}

// Searcher answers semantic queries.
type Searcher interface {
	Query(ctx context.Context, query string) ([]domain.SearchResult, error)
}

// Subscriber registers digest subscribers.
type Subscriber interface {
	Subscribe(ctx context.Context, email string) (bool, error)
}

// Chatter streams chat answers.
type Chatter interface {
	Stream(ctx context.Context, req usecase.ChatRequest, onDelta func(string) error) error
}

// Deps wires use cases into HTTP handlers. Nil use cases leave their routes
// answering 503.
type Deps struct {
	Ingester   Ingester
	Feed       FeedLister
	Search     Searcher
	Subscribe  Subscriber
	Chat       Chatter
	Health     func(ctx context.Context) error
	CronSecret string
	Logger     *slog.Logger
	Now        func() time.Time
}

// Server is the echo-based HTTP surface.
type Server struct {
	echo   *echo.Echo
	addr   string
	logger *slog.Logger
}

// NewServer builds the router with all routes registered.
func NewServer(addr string, deps Deps) *Server {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(requestLogger(deps.Logger))

	h := &handlers{deps: deps}
	registerRoutes(e, h)

	return &Server{echo: e, addr: addr, logger: deps.Logger}
}

// registerRoutes attaches every TechPulse route to e.
func registerRoutes(e *echo.Echo, h *handlers) {
	e.GET("/healthz", h.health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.GET("/cron/ingest", h.ingest, bearerAuth(h.deps.CronSecret))
	api.POST("/refresh", h.ingest)
	api.GET("/news", h.listNews)
	api.GET("/search", h.search)
	api.POST("/subscribe", h.subscribe)
	api.POST("/chat", h.chat)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens until Shutdown is called.
func (s *Server) Start() error {
	if s.logger != nil {
		s.logger.Info("http server listening", "addr", s.addr)
	}
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
