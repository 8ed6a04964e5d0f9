package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/waddle/internal/records"
)

// Server is the remote session endpoint that mirrors post to.
type Server struct {
	book    *records.Book
	logger  *slog.Logger
	maxTop  int
	router  *chi.Mux
	started time.Time
}

// NewServer creates a new API server backed by book. maxTop bounds the
// leaderboard query size.
func NewServer(book *records.Book, logger *slog.Logger, maxTop int) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		book:    book,
		logger:  logger,
		maxTop:  maxTop,
		started: time.Now(),
	}
	s.setupRouter()
	return s
}

// Router returns the configured router.
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware.
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// The game client may be served from any origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", s.handleAppendSession)
		r.Get("/sessions", s.handleListSessions)
		r.Get("/sessions.csv", s.handleExportSessions)
		r.Get("/leaderboard", s.handleLeaderboard)
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
