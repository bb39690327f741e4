// Package web serves the catalog as a server-rendered HTML page.
package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"epubshelf/internal/catalog"
	"epubshelf/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Options configures the server
type Options struct {
	Addr           string
	About          template.HTML
	RequestTimeout time.Duration
}

// Server renders catalog pages over records fetched once at startup
type Server struct {
	opts    Options
	books   []domain.Book
	loadErr error
	tmpl    *template.Template
	router  chi.Router
}

// New fetches the catalog and builds the router. A fetch failure is not
// fatal: every page then shows the load error.
func New(ctx context.Context, provider catalog.Provider, opts Options) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}

	s := &Server{opts: opts, tmpl: tmpl}
	s.books, s.loadErr = provider.Fetch(ctx)
	if s.loadErr != nil {
		slog.Error("Could not fetch books", "error", s.loadErr)
	} else {
		slog.Info("Catalog loaded", "books", len(s.books))
	}

	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(s.opts.RequestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/", s.handlePage)
	r.Get("/data/books.json", s.handleBooks)
	return r
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      s.opts.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Web server listening", "addr", s.opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		slog.Info("Shutting down web server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down: %w", err)
		}
		return nil
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = domain.AllCategories
	}
	searchTerm := r.URL.Query().Get("q")

	presenter := newPagePresenter(searchTerm, s.opts.About)
	controller := catalog.NewController(presenter, nil, 0)
	// Filters recorded before the load are applied by its single render
	controller.SetActiveCategory(category)
	controller.SetSearchTerm(searchTerm)
	controller.Resolve(s.books, s.loadErr)

	status := http.StatusOK
	if presenter.page.LoadError {
		status = http.StatusServiceUnavailable
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "page.html.tmpl", presenter.page); err != nil {
		slog.Error("Failed to render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if s.loadErr != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": catalog.LoadErrorMessage})
		return
	}
	books := s.books
	if books == nil {
		books = []domain.Book{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(books)
}

// requestLogger logs one line per request with the chi request id
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
