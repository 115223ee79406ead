// Package server serves the gitego lookup pages and JSON API.
package server

import (
	"context"
	"embed"
	stderrors "errors"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gitego/pkg/tags"
)

//go:embed templates/*.html
var templateFS embed.FS

const shutdownTimeout = 10 * time.Second

// Server renders pages through a [tags.Library] and answers API calls
// directly from a [tags.Fetcher].
type Server struct {
	fetcher tags.Fetcher
	lib     *tags.Library
	logger  *log.Logger
	pages   *template.Template
}

// New creates a Server. A nil logger falls back to log.Default().
func New(f tags.Fetcher, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	lib := tags.New(f, 0)

	// Functions are rebound per request; these only satisfy the parser.
	pages, err := template.New("pages").
		Funcs(lib.FuncMap(context.Background())).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Server{fetcher: f, lib: lib, logger: logger, pages: pages}, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api/users/{username}", func(r chi.Router) {
		r.Get("/", s.handleAPIUser)
		r.Get("/stargazers", s.handleAPIStargazers)
		r.Get("/stargazers/recent", s.handleAPIRecent)
		r.Get("/repos/{repo}", s.handleAPIRepository)
	})

	r.Get("/{username}/{repo}", s.handleRepository)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		// Upstream calls may take the full client timeout.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
