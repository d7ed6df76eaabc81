// Package metadata copies client details from the HTTP request into
// requestcontext, where the audit service reads them.
package metadata

import (
	"net"
	"net/http"
	"strings"

	"mealcare/pkg/requestcontext"
)

// RequestIDHeader is echoed back on every response.
const RequestIDHeader = "X-Request-Id"

// ClientMetadata records the client IP, User-Agent and request ID. Apply it
// before any handler that writes audit entries.
func ClientMetadata(requestID func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithClientMetadata(r.Context(), ClientIPFromRequest(r), r.UserAgent())
			if requestID != nil {
				if id := requestID(r); id != "" {
					ctx = requestcontext.WithRequestID(ctx, id)
					w.Header().Set(RequestIDHeader, id)
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientIPFromRequest prefers the first X-Forwarded-For hop, then X-Real-IP,
// then the connection's remote address without its port.
func ClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
