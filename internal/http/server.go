// Package http serves the JSON API and the embedded browser client.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"finsight/internal/cache"
	"finsight/internal/core"
	appweb "finsight/web"
)

// TransactionAPI is the service surface behind the CRUD routes.
type TransactionAPI interface {
	List(ctx context.Context) ([]core.Transaction, error)
	Create(ctx context.Context, in core.TransactionInput) (core.Transaction, error)
	Delete(ctx context.Context, id int64) error
}

// InsightAPI is the service surface behind the insight route.
type InsightAPI interface {
	GenerateInsight(ctx context.Context) (string, error)
}

type Server struct {
	http.Server
	transactions TransactionAPI
	insights     InsightAPI
	rateLimiter  *rateLimiter

	// Single-key cache for the full list, invalidated on every mutation so
	// reads always reflect the store.
	listCache    *cache.LRUCache[[]core.Transaction]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

const listCacheKey = "transactions"

// Mutation rate limit applied to POST requests per client IP.
const (
	postRateLimit  = 60
	postRateWindow = time.Minute
)

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, transactions TransactionAPI, insights InsightAPI) *Server {
	mux := http.NewServeMux()

	s := &Server{
		transactions: transactions,
		insights:     insights,
		rateLimiter:  newRateLimiter(postRateLimit, postRateWindow),
		listCache:    cache.NewLRUCache[[]core.Transaction](1, 5*time.Minute),
		cacheManager: cache.NewManager(),
	}
	s.cacheManager.Register(s.listCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /transactions", s.handleListTransactions)
	mux.HandleFunc("POST /transactions", s.handleCreateTransaction)
	mux.HandleFunc("DELETE /transactions/{id}", s.handleDeleteTransaction)
	mux.HandleFunc("GET /ai-insight", s.handleInsight)
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	// Static assets from the embedded FS.
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}
	mux.HandleFunc("GET /{$}", s.handleIndex)

	s.Server = http.Server{
		Addr:    addr,
		Handler: s.withCommon(mux),
	}
	return s
}

// withCommon adds request-ID logging, CORS, security headers, and POST rate
// limiting around the whole mux. Preflight requests are answered here.
func (s *Server) withCommon(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := r.Context()

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		// The browser client may be served from anywhere.
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				"request_id", requestID, "client_ip", clientIP, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// Shutdown stops the cleanup goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) cachedList(ctx context.Context) ([]core.Transaction, error) {
	if txs, ok := s.listCache.Get(listCacheKey); ok {
		slog.DebugContext(ctx, "Transaction list cache hit", "count", len(txs))
		out := make([]core.Transaction, len(txs))
		copy(out, txs)
		return out, nil
	}

	txs, err := s.transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	s.listCache.Set(listCacheKey, txs)
	return txs, nil
}

func (s *Server) invalidateList() {
	s.listCache.Delete(listCacheKey)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := appweb.TemplatesFS.ReadFile("templates/index.html")
	if err != nil {
		slog.ErrorContext(r.Context(), "Index page not available", "error", err)
		http.Error(w, "page not available", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}
