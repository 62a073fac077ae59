// Package web serves the portfolio page, the contact widget's HTMX fragments
// and the admin area.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/RahulKumar035/portfolio/internal/analytics"
	"github.com/RahulKumar035/portfolio/internal/config"
	"github.com/RahulKumar035/portfolio/internal/contact"
	"github.com/RahulKumar035/portfolio/internal/observability"
	"github.com/RahulKumar035/portfolio/internal/portfolio"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Analytics is the visitor and contact statistics store.
type Analytics interface {
	HashIP(ip string) string
	RecordVisit(ctx context.Context, ip, userAgent, path string) error
	RecordContact(ctx context.Context, status string) error
	Stats(ctx context.Context) (*analytics.Stats, error)
	RecentVisitors(ctx context.Context, limit int) ([]analytics.VisitorMetric, error)
	Cleanup(ctx context.Context, retention time.Duration) (int64, error)
}

// Dependencies are the collaborators a Server needs.
type Dependencies struct {
	Config    config.Config
	Logger    zerolog.Logger
	Provider  contact.Provider
	Analytics Analytics
	// StaticDir and ImagesDir are served as-is when set.
	StaticDir string
	ImagesDir string
}

// Server is the portfolio HTTP server.
type Server struct {
	cfg       config.Config
	logger    zerolog.Logger
	engine    *gin.Engine
	page      portfolio.Page
	sessions  *contact.Sessions
	analytics Analytics
	provider  contact.Provider
	gate      *contact.Gate

	adminToken string

	background sync.WaitGroup
}

// New builds the server and registers its routes.
func New(deps Dependencies) (*Server, error) {
	if deps.Provider == nil {
		return nil, errors.New("web: contact provider is required")
	}
	if deps.Analytics == nil {
		return nil, errors.New("web: analytics store is required")
	}

	gate, err := contact.NewGate()
	if err != nil {
		return nil, err
	}

	token, err := randomToken()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:        deps.Config,
		logger:     deps.Logger.With().Str("component", "web").Logger(),
		page:       portfolio.Build(),
		analytics:  deps.Analytics,
		provider:   deps.Provider,
		gate:       gate,
		adminToken: token,
	}
	s.sessions = contact.NewSessions(s.newForm, deps.Config.SessionTTL)

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	if !deps.Config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery(), observability.RequestID(), observability.Requests(deps.Logger), s.trackVisitors())

	if deps.StaticDir != "" {
		r.Static("/static", deps.StaticDir)
	}
	if deps.ImagesDir != "" {
		r.Static("/images", deps.ImagesDir)
	}

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", observability.MetricsHandler())

	s.registerPageRoutes(r)
	s.registerContactRoutes(r)
	s.registerAdminRoutes(r)

	s.engine = r
	return s, nil
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Sessions exposes the contact session store.
func (s *Server) Sessions() *contact.Sessions {
	return s.sessions
}

// Run serves on the configured address until ctx ends, then shuts down,
// letting in-flight contact submissions and analytics writes finish.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddress(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	bgCtx, stopBackground := context.WithCancel(ctx)
	defer stopBackground()
	go s.sessions.Run(bgCtx, time.Minute)
	go s.runCleanup(bgCtx, 24*time.Hour)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	s.Wait()
	s.logger.Info().Msg("server stopped")
	return nil
}

// Wait blocks until in-flight submissions and background writes finish.
func (s *Server) Wait() {
	s.sessions.Wait()
	s.background.Wait()
}

func (s *Server) runCleanup(ctx context.Context, interval time.Duration) {
	s.cleanup(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanup(ctx)
		}
	}
}

func (s *Server) cleanup(ctx context.Context) {
	if s.cfg.AnalyticsRetention <= 0 {
		return
	}
	if _, err := s.analytics.Cleanup(ctx, s.cfg.AnalyticsRetention); err != nil {
		s.logger.Error().Err(err).Msg("privacy cleanup failed")
	}
}

// goBackground runs fn detached from the request, tracked for shutdown.
func (s *Server) goBackground(fn func(ctx context.Context)) {
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		fn(context.Background())
	}()
}
