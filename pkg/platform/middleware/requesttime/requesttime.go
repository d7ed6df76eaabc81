// Package requesttime pins one "now" per request so every timestamp written
// while serving it, audit entries included, agrees.
package requesttime

import (
	"net/http"
	"time"

	"mealcare/pkg/requestcontext"
)

// Middleware stores the arrival time in the request context. clock may be nil.
func Middleware(clock func() time.Time) func(http.Handler) http.Handler {
	if clock == nil {
		clock = time.Now
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), clock().UTC())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
