package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	domainerrors "github.com/Yassin1-prog/cooking-competition-DBMS/internal/errors"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/metrics"
)

// requestLogger logs one line per request with the chi request ID.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			logger.Log(r.Context(), level, "HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
				"remote", r.RemoteAddr,
			)
		})
	}
}

// requestMetrics records request counts and latency by chi route pattern, so
// /api/v1/cooks/1 and /api/v1/cooks/2 share a series.
func requestMetrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			var route string
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}
			m.RecordRequest(r.Method, route, status, time.Since(start))
		})
	}
}

// requireAdmin checks the admin key against the configured bcrypt hash.
// With no hash configured every caller is treated as admin.
func (s *Server) requireAdmin(key string) error {
	if len(s.adminKeyHash) == 0 {
		return nil
	}
	if key == "" {
		return domainerrors.Unauthorized("missing " + adminKeyHeader + " header")
	}
	if err := bcrypt.CompareHashAndPassword(s.adminKeyHash, []byte(key)); err != nil {
		return domainerrors.Unauthorized("invalid admin key")
	}
	return nil
}
