package api

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/Yassin1-prog/cooking-competition-DBMS/internal/errors"
)

// rateLimited returns an operation middleware that throttles requests per
// client IP. Refused requests get 429 with a Retry-After header.
func (s *Server) rateLimited() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if s.limiter == nil {
			next(ctx)
			return
		}

		key := clientIP(ctx.Header, ctx.RemoteAddr())
		ok, wait := s.limiter.Reserve(key)
		if ok {
			next(ctx)
			return
		}

		s.logger.Warn("Rate limit exceeded",
			"ip", key,
			"path", ctx.URL().Path,
			"retry_after", wait,
		)
		if s.metrics != nil {
			s.metrics.RateLimited.Inc()
		}

		ctx.SetHeader("Retry-After", strconv.Itoa(retryAfterSeconds(wait)))
		msg := "Too many requests. Please try again later."
		_ = huma.WriteErr(s.api, ctx, http.StatusTooManyRequests, msg, domainerrors.RateLimited(msg))
	}
}

// retryAfterSeconds rounds a delay up to whole seconds, never below one.
func retryAfterSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

// clientIP extracts the client IP from request headers.
// Checks X-Forwarded-For and X-Real-IP headers before falling back to the remote address.
func clientIP(header func(string) string, remoteAddr string) string {
	// X-Forwarded-For may contain multiple IPs, first is client.
	if xff := header("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := header("X-Real-IP"); xri != "" {
		return xri
	}

	// Strip the port.
	if i := strings.LastIndexByte(remoteAddr, ':'); i >= 0 {
		return remoteAddr[:i]
	}
	return remoteAddr
}
