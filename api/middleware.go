package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.uber.org/zap"

	"github.com/havenapp/haven-api/databases"
)

var authenticator auth.Authenticator
var cache store.Cache

// SetupGuardian configures the bearer-token cache for victim sessions.
// Tokens are created on OTP verification and revoked on logout; the
// strategy itself never authenticates anything.
func SetupGuardian() {
	authenticator = auth.New()
	cache = store.NewFIFO(context.Background(), time.Hour*24)
	tokenStrategy := bearer.New(bearer.NoOpAuthenticate, cache)
	authenticator.EnableStrategy(bearer.CachedStrategyKey, tokenStrategy)
}

// IssueVictimToken mints a bearer token for a verified phone number and
// caches it so VictimMiddleware accepts it
func IssueVictimToken(phone string, r *http.Request) string {
	token := uuid.New().String()
	victim := auth.NewDefaultUser(phone, phone, nil, nil)
	tokenStrategy := authenticator.Strategy(bearer.CachedStrategyKey)
	auth.Append(tokenStrategy, token, victim, r)
	return token
}

// RevokeVictimToken drops the request's bearer token from the cache
func RevokeVictimToken(r *http.Request) error {
	reqToken := r.Header.Get("Authorization")
	splitToken := strings.Split(reqToken, "Bearer ")
	if len(splitToken) < 2 {
		return fmt.Errorf("no bearer token in request")
	}
	tokenStrategy := authenticator.Strategy(bearer.CachedStrategyKey)
	return auth.Revoke(tokenStrategy, splitToken[1], r)
}

// VictimMiddleware gates victim-only routes behind the bearer cache
func VictimMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		victim, err := authenticator.Authenticate(r)
		if err != nil {
			zap.S().Errorw("unauthorized",
				"url", r.URL)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}
		zap.S().Debugf("victim %s authenticated\n", victim.UserName())
		next.ServeHTTP(w, r)
	})
}

// AdminAuth gates authority routes. A request needs a valid authority
// JWT and the adminLoggedIn session flag still set: logging out
// invalidates outstanding tokens immediately.
type AdminAuth struct {
	Secret []byte
	SDB    databases.SessionDatabase
}

// Middleware validates the authority token and session flag
func (a AdminAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		reqToken := r.Header.Get("Authorization")
		splitToken := strings.Split(reqToken, "Bearer ")
		if len(splitToken) < 2 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}

		token, err := jwt.Parse(splitToken[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return a.Secret, nil
		})
		if err != nil || !token.Valid {
			zap.S().Errorw("invalid authority token", "url", r.URL, "error", err)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["scope"] != "authority" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}

		state, err := a.SDB.Get(r.Context())
		if err != nil || !state.AdminLoggedIn {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
