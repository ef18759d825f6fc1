// Package http exposes the ledger as a local JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"financetracker/internal/ledger"
	"financetracker/internal/log"
)

type Server struct {
	http.Server
	ledger  *ledger.Store
	logger  *log.Logger
	limiter *rateLimiter

	shutdownOnce sync.Once
}

// Option configures optional server behaviour.
type Option func(*Server)

// WithRateLimit limits each client IP to perMinute API requests. Zero or a
// negative value leaves the API unlimited.
func WithRateLimit(perMinute int) Option {
	return func(s *Server) {
		if perMinute > 0 {
			s.limiter = newRateLimiter(perMinute, nil)
		}
	}
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, store *ledger.Store, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Wrap(nil, log.ComponentHTTP)
	}

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		ledger: store,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.limiter != nil {
		go s.limiter.run()
	}
	s.Handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.traceRequests)
	r.Use(securityHeaders)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.limiter.middleware)
		}
		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", s.handleListExpenses)
			r.Post("/", s.handleCreateExpense)
			r.Get("/{id}", s.handleGetExpense)
			r.Put("/{id}", s.handleUpdateExpense)
			r.Delete("/{id}", s.handleDeleteExpense)
		})
		r.Route("/incomes", func(r chi.Router) {
			r.Get("/", s.handleListIncomes)
			r.Post("/", s.handleCreateIncome)
			r.Get("/{id}", s.handleGetIncome)
			r.Put("/{id}", s.handleUpdateIncome)
			r.Delete("/{id}", s.handleDeleteIncome)
		})
		r.Get("/dashboard", s.handleDashboard)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

// Shutdown gracefully shuts down the server. It is safe to call more than
// once.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.logger.InfoContext(ctx, "HTTP server shutting down", log.FieldOperation, log.OpShutdown)
		if s.limiter != nil {
			s.limiter.close()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ledger == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("ledger not loaded"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
