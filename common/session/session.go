package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"infinitech-web/common/constant"
	"net/http"
	"strings"
	"time"
)

const (
	Subject      = "admin"
	CookieName   = "adminToken"
	CookieMaxAge = 7 * 24 * time.Hour
)

var (
	ErrInvalidToken = errors.New("session: invalid token")
	ErrRevoked      = errors.New("session: token revoked")
)

type Claims struct {
	jwt.RegisteredClaims
}

// Manager issues and checks signed admin session tokens. Revocation is only
// tracked when Cache is set.
type Manager struct {
	Secret  []byte
	TTL     time.Duration
	Cache   *redis.Client
	TimeNow func() time.Time
}

func NewManager(secret []byte, ttl time.Duration, cache *redis.Client) *Manager {
	return &Manager{
		Secret:  secret,
		TTL:     ttl,
		Cache:   cache,
		TimeNow: time.Now,
	}
}

func (m *Manager) Issue(now time.Time) (string, *Claims, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        ulid.Make().String(),
			Subject:   Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.TTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session: %w", err)
	}

	return token, claims, nil
}

func (m *Manager) Validate(ctx context.Context, token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithSubject(Subject),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.TimeNow),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if m.Cache == nil {
		return claims, nil
	}

	n, err := m.Cache.Exists(ctx, fmt.Sprintf(constant.AdminSessionRevokedKey, claims.ID)).Result()
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if n > 0 {
		return nil, ErrRevoked
	}

	return claims, nil
}

// Revoke blocks the token until it would have expired anyway.
func (m *Manager) Revoke(ctx context.Context, claims *Claims) error {
	if m.Cache == nil || claims == nil || claims.ExpiresAt == nil {
		return nil
	}

	ttl := claims.ExpiresAt.Time.Sub(m.TimeNow())
	if ttl <= 0 {
		return nil
	}

	return m.Cache.Set(ctx, fmt.Sprintf(constant.AdminSessionRevokedKey, claims.ID), "1", ttl).Err()
}

// CheckPassword compares against the bcrypt hash when one is configured and
// falls back to a constant-time compare with the plain password.
func CheckPassword(given, plain, hash string) bool {
	if hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(given)) == nil
	}
	if plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(plain)) == 1
}

// TokenFromRequest reads a Bearer token, then the session cookie.
func TokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}

	return ""
}

func NewCookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func ClearCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

type claimsKey struct{}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

func FromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok
}
