package middleware

import (
	"context"
	"net/http"
	"strings"

	jwtinfra "github.com/shop-access-core/internal/infrastructure/jwt"
	"github.com/shop-access-core/internal/pkg/secrets"
)

type contextKey string

const ClaimsKey contextKey = "claims"

// AdminSecretHeader is the legacy shared-secret header still sent by older
// internal tooling.
const AdminSecretHeader = "X-Admin-Secret"

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*jwtinfra.Claims, error)
}

// Admin authenticates a request as an administrator. Credential precedence
// is strict: when an Authorization header is present, only the bearer path
// is evaluated — an invalid bearer never falls through to the legacy secret,
// so garbage tokens cannot downgrade to the weaker method. The legacy header
// is compared in constant time.
func Admin(verifier TokenVerifier, adminSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authHeader := r.Header.Get("Authorization"); authHeader != "" {
				tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
				if !ok {
					writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
					return
				}
				claims, err := verifier.Verify(tokenStr)
				if err != nil {
					writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
					return
				}
				if !claims.IsAdmin {
					writeJSONError(w, http.StatusForbidden, "forbidden")
					return
				}
				ctx := context.WithValue(r.Context(), ClaimsKey, claims)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if legacy := r.Header.Get(AdminSecretHeader); legacy != "" {
				if !secrets.Equal(legacy, adminSecret) {
					writeJSONError(w, http.StatusUnauthorized, "unauthorized")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			writeJSONError(w, http.StatusUnauthorized, "no authentication provided")
		})
	}
}

// ClaimsFromContext extracts JWT claims from the request context. Requests
// authenticated via the legacy header carry no claims.
func ClaimsFromContext(ctx context.Context) (*jwtinfra.Claims, bool) {
	c, ok := ctx.Value(ClaimsKey).(*jwtinfra.Claims)
	return c, ok
}
