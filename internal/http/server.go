// Package http serves the dashboard: the page with the month dropdown, the
// htmx chart partial and a JSON rendering of the same view.
package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"cashflow/internal/dashboard"
	"cashflow/internal/log"
	"cashflow/internal/middleware/ratelimit"
	"cashflow/internal/middleware/security"
	"cashflow/internal/middleware/trace"
	appweb "cashflow/web"
)

const staticMaxAge = 3600

// Options tunes the server middleware.
type Options struct {
	// RequestsPerMinute bounds chart requests per client address.
	RequestsPerMinute int
	Headers           security.HeadersConfig
}

// DefaultOptions returns the settings used by the dashboard binary.
func DefaultOptions() Options {
	return Options{
		RequestsPerMinute: ratelimit.DefaultConfig().RequestsPerMinute,
		Headers:           security.DefaultHeadersConfig(),
	}
}

type Server struct {
	http.Server
	templates *template.Template
	presenter *dashboard.Presenter
	limiter   *ratelimit.Limiter
	detector  *security.Detector
	tracer    *trace.Middleware
	logger    *log.Logger

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, presenter *dashboard.Presenter, logger *log.Logger, opts Options) (*Server, error) {
	if presenter == nil {
		return nil, fmt.Errorf("http: presenter is required")
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}

	t, err := template.New("").Funcs(templateFuncs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	static, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("mount static assets: %w", err)
	}

	detector := security.NewDetector()
	s := &Server{
		templates: t,
		presenter: presenter,
		limiter:   ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RequestsPerMinute}),
		detector:  detector,
		tracer:    trace.NewMiddleware(logger, detector.ExtractClientIP),
		logger:    logger.WithComponent(log.ComponentHTTP),
	}

	limited := s.limiter.Middleware(detector.ExtractClientIP)

	mux := http.NewServeMux()
	mux.Handle("/static/", security.StaticAssetMiddleware(staticMaxAge)(
		http.StripPrefix("/static/", http.FileServer(http.FS(static)))))
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/", s.handleIndex)
	mux.Handle("/ui/charts", limited(http.HandlerFunc(s.handleCharts)))
	mux.Handle("/api/render", limited(http.HandlerFunc(s.handleRender)))

	headers := security.NewHeadersMiddleware(opts.Headers)
	s.Server = http.Server{
		Addr:              addr,
		Handler:           headers.Middleware(s.tracer.Middleware(detector.Middleware(mux))),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Shutdown stops the rate limiter and gracefully shuts down the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

var templateFuncs = template.FuncMap{
	// selected marks the dropdown option that is currently rendered.
	"selected": func(option, current string) bool { return option == current },
}
