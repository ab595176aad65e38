package http

import (
	"context"
	"fmt"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"infinitech-web/common"
	"infinitech-web/common/constant"
	"infinitech-web/common/session"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"
)

func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, "request timeout")
	}
}

// CorsMiddleware allows every origin when none are configured. Credentials
// are only allowed for an explicit origin list.
func CorsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowCredentials := len(allowedOrigins) > 0
	if !allowCredentials {
		allowedOrigins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: allowCredentials,
		MaxAge:           300,
	})
}

// AuthMiddleware admits requests carrying a valid admin session as a Bearer
// token or the session cookie.
func AuthMiddleware(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := session.TokenFromRequest(r)
			if token == "" {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := sessions.Validate(r.Context(), token)
			if err != nil {
				slog.DebugContext(r.Context(), "rejected admin session", common.ExtractTraceIDFromCtx(r.Context()), slog.Any(constant.LogFieldErr, err))
				writeMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithClaims(r.Context(), claims)))
		})
	}
}

// RateLimiter is a fixed-window counter per client address and path kept in
// redis. Requests are let through when redis fails.
type RateLimiter struct {
	Cache   *redis.Client
	Limit   int
	Window  time.Duration
	TimeNow func() time.Time
}

func NewRateLimiter(cache *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{Cache: cache, Limit: limit, Window: window, TimeNow: time.Now}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		allowed, remaining, reset, err := rl.allow(ctx, r.URL.Path, clientAddr(r))
		if err != nil {
			slog.WarnContext(ctx, "rate limit check failed", common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if !allowed {
			retryAfter := int(reset.Sub(rl.TimeNow()).Seconds())
			w.Header().Set("Retry-After", strconv.Itoa(max(retryAfter, 1)))
			writeMessage(w, http.StatusTooManyRequests, "Too many requests, please try again later")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ctx context.Context, scope, client string) (bool, int, time.Time, error) {
	windowStart := rl.TimeNow().Truncate(rl.Window)
	key := fmt.Sprintf(constant.RateLimitKey, scope, client, windowStart.Unix())

	pipe := rl.Cache.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incr.Val())
	remaining := max(rl.Limit-count, 0)

	return count <= rl.Limit, remaining, windowStart.Add(rl.Window), nil
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Guards wraps routes that need an admin session or public rate limiting.
// A nil guard leaves the route open.
type Guards struct {
	Admin  func(http.Handler) http.Handler
	Public func(http.Handler) http.Handler
}

func (g Guards) admin(h http.HandlerFunc) http.Handler {
	if g.Admin == nil {
		return h
	}
	return g.Admin(h)
}

func (g Guards) public(h http.HandlerFunc) http.Handler {
	if g.Public == nil {
		return h
	}
	return g.Public(h)
}
