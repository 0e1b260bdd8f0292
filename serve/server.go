package serve

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/everydev1618/quizgen/dsl"
	"github.com/everydev1618/quizgen/executor"
)

// MaxRequestBytes bounds the size of a request body.
const MaxRequestBytes = 1 << 20

// Config holds server configuration.
type Config struct {
	Addr string

	// AllowedOrigins lists the origins granted CORS access. "*" allows any.
	AllowedOrigins []string

	// XLSX adds quiz.xlsx to generated bundles.
	XLSX bool

	// Seed, when set, makes every request reproducible unless the request
	// carries its own seed.
	Seed *int64

	Runner executor.Runner
	Logger *slog.Logger
}

// Server is the HTTP surface for quiz generation.
type Server struct {
	cfg       Config
	logger    *slog.Logger
	startedAt time.Time

	generated atomic.Int64
	failed    atomic.Int64
}

// New creates a new Server.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:       cfg,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// Handler returns the routed handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return corsMiddleware(s.cfg.AllowedOrigins, mux)
}

// Start listens for HTTP requests. It blocks until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.startedAt = time.Now()

	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine.
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("quizgen serve started", "addr", s.cfg.Addr)
		fmt.Printf("API: http://%s/quiz/output\n", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error.
	select {
	case <-ctx.Done():
		s.logger.Info("shutting down server")
	case err := <-errCh:
		return err
	}

	// Graceful shutdown with 5s timeout.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("server shutdown error", "error", err)
	}
	return nil
}

// registerRoutes adds all API routes to the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /quiz/output", s.handleOutput)
	mux.HandleFunc("POST /quiz/generate", s.handleGenerate)
	mux.HandleFunc("POST /quiz/validate", s.handleValidate)
	mux.HandleFunc("GET /api/stats", s.handleStats)
}

// interpreter builds the interpreter for one request.
func (s *Server) interpreter(req QuizRequest) *dsl.Interpreter {
	opts := []dsl.InterpreterOption{dsl.WithLogger(s.logger)}
	if s.cfg.Runner != nil {
		opts = append(opts, dsl.WithRunner(s.cfg.Runner))
	}
	switch {
	case req.Seed != nil:
		opts = append(opts, dsl.WithSeed(*req.Seed))
	case s.cfg.Seed != nil:
		opts = append(opts, dsl.WithSeed(*s.cfg.Seed))
	}
	return dsl.NewInterpreter(opts...)
}

// corsMiddleware adds CORS headers for allowed origins.
func corsMiddleware(allowed []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && originAllowed(allowed, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func originAllowed(allowed []string, origin string) bool {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}
