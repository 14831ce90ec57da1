package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/auth"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/cache"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/response"
)

type claimsKey struct{}

// RevokedKey is the cache key prefix for tokens invalidated by logout.
const RevokedKey = "chapaquente:revoked:"

// Auth validates the Bearer token, rejects revoked sessions, and stores
// the parsed claims in the request context.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" || token == r.Header.Get("Authorization") {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		if cache.Has(RevokedKey + token) {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromCtx returns the authenticated claims, or nil outside Auth.
func ClaimsFromCtx(ctx context.Context) *auth.Claims {
	c, _ := ctx.Value(claimsKey{}).(*auth.Claims)
	return c
}
