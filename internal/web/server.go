// Package web serves the Encrypty page and runs form submissions through
// the controller on the server side.
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"Encrypty/internal/api"
	"Encrypty/internal/errors"
	"Encrypty/internal/log"
)

//go:embed templates/index.html
var templateFS embed.FS

// maxUploadMemory is how much of a multipart body is kept in memory;
// larger parts spill to temporary files.
const maxUploadMemory = 32 << 20

// Server is the web host.
type Server struct {
	client *api.Client
	logger log.Logger
	page   *template.Template
}

// NewServer creates a web host submitting to client.
func NewServer(client *api.Client, logger log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Nop()
	}
	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse page template")
	}
	return &Server{client: client, logger: logger, page: page}, nil
}

// Handler returns the routed and wrapped handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /submit/upload", s.handleUpload)
	mux.HandleFunc("POST /submit/directory", s.handleDirectory)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return s.requestLogger(securityHeaders(mux))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			log.String("addr", addr),
			log.String("backend", s.client.BaseURL()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutdown initiated", log.String("timeout", "10s"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("shutdown error", log.Err(err))
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// responseCapture wraps http.ResponseWriter to capture the status code.
type responseCapture struct {
	http.ResponseWriter
	status int
}

func (rc *responseCapture) WriteHeader(code int) {
	rc.status = code
	rc.ResponseWriter.WriteHeader(code)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rc := &responseCapture{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rc, r)
		s.logger.Info("http request",
			log.String("method", r.Method),
			log.String("path", r.URL.Path),
			log.Int("status", rc.status),
			log.Duration("duration", time.Since(start)),
			log.String("remote", r.RemoteAddr),
		)
	})
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}
