// Package requestcontext provides transport-independent accessors for the
// acting principal and request metadata.
//
// The surrounding service layer (HTTP middleware, CLI) sets these values; the
// audit recorder reads them when it builds an entry. Keeping this package free
// of net/http lets services import it without pulling in transport code.
//
// Usage in callers (set values):
//
//	ctx = requestcontext.WithActor(ctx, userID, tenantID)
//	ctx = requestcontext.WithClientMetadata(ctx, "10.0.0.7", "kiosk/2.1")
//
// Usage in services (read values):
//
//	userID, ok := requestcontext.UserID(ctx)
//	now := requestcontext.Now(ctx)
package requestcontext

import (
	"context"
	"time"

	"mealcare/pkg/domain"
)

type (
	userIDKey      struct{}
	tenantIDKey    struct{}
	clientIPKey    struct{}
	userAgentKey   struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// UserID returns the acting user, if one was set.
func UserID(ctx context.Context) (domain.UserID, bool) {
	v, ok := ctx.Value(userIDKey{}).(domain.UserID)
	if !ok || v.IsNil() {
		return domain.UserID{}, false
	}
	return v, true
}

func WithUserID(ctx context.Context, userID domain.UserID) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// TenantID returns the tenant the actor is operating in, if one was set.
// Super admins act without a tenant.
func TenantID(ctx context.Context) (domain.TenantID, bool) {
	v, ok := ctx.Value(tenantIDKey{}).(domain.TenantID)
	if !ok || v.IsNil() {
		return domain.TenantID{}, false
	}
	return v, true
}

func WithTenantID(ctx context.Context, tenantID domain.TenantID) context.Context {
	return context.WithValue(ctx, tenantIDKey{}, tenantID)
}

// WithActor sets both the acting user and its tenant.
func WithActor(ctx context.Context, userID domain.UserID, tenantID domain.TenantID) context.Context {
	return WithTenantID(WithUserID(ctx, userID), tenantID)
}

// ClientIP returns the caller's address as reported by the transport.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}

func UserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(userAgentKey{}).(string); ok {
		return ua
	}
	return ""
}

// WithClientMetadata injects client IP and User-Agent into a context.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, clientIPKey{}, clientIP)
	return context.WithValue(ctx, userAgentKey{}, userAgent)
}

func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}
	return ""
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Now returns the request-scoped time, falling back to the wall clock.
// Timestamps are always UTC.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t.UTC()
	}
	return time.Now().UTC()
}

// WithTime pins the request time. Tests and batch CLI commands use it to get
// consistent timestamps.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
